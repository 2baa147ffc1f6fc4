package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/rummy/cache"
	"github.com/domino14/rummy/config"
	"github.com/domino14/rummy/position"
	"github.com/domino14/rummy/solver"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoPosition        = errors.New("no position; set one with `position`, `board` or `load`")
)

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

type CmdOptions map[string]string

func (c CmdOptions) String(key string) string {
	return c[key]
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v, ok := c[key]
	if !ok {
		return defaultI, nil
	}
	return strconv.Atoi(v)
}

func (c CmdOptions) Bool(key string) bool {
	return strings.ToLower(c[key]) == "true"
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

type ShellController struct {
	l          *readline.Instance
	out        io.Writer
	config     *config.Config
	execPath   string
	gitVersion string

	pos          *position.Position
	fixtures     []*position.Position
	curFixture   int
	lastSolution *solver.Solution
	solutions    *cache.SolutionCache

	autoplayCancel context.CancelFunc
	autoplayDone   chan error
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func newController(cfg *config.Config, execPath, gitVersion string, out io.Writer) *ShellController {
	return &ShellController{out: out, config: cfg, execPath: execPath, gitVersion: gitVersion}
}

func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	sc := newController(cfg, execPath, gitVersion, os.Stderr)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mrummy>\033[0m ",
		HistoryFile:     "/tmp/rummy-readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	var args []string
	options := CmdOptions{}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		// A lone dash is an empty board or rack, not an option.
		if len(f) > 1 && strings.HasPrefix(f, "-") {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[f[1:]] = fields[i+1]
			i++
			continue
		}
		args = append(args, f)
	}
	return &shellcmd{cmd: fields[0], args: args, options: options}, nil
}

func (sc *ShellController) standardModeSwitch(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "help":
		return sc.help(cmd)
	case "position", "pos":
		return sc.setPosition(cmd)
	case "board":
		return sc.board(cmd)
	case "rack":
		return sc.rack(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "solve":
		return sc.solve(cmd)
	case "check":
		return sc.check(cmd)
	case "load":
		return sc.load(cmd)
	case "list":
		return sc.list(cmd)
	case "next", "n":
		return sc.next(cmd)
	case "prev", "p":
		return sc.prev(cmd)
	case "deal":
		return sc.deal(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "analyze":
		return sc.analyze(cmd)
	case "setconfig":
		return sc.setConfig(cmd)
	case "script":
		return sc.script(cmd)
	default:
		msg := fmt.Sprintf("command %v not found", strconv.Quote(cmd.cmd))
		log.Info().Msg(msg)
		return nil, errors.New(msg)
	}
}

// Execute runs a single command line, as if it were typed into the shell.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	if strings.TrimSpace(line) == "exit" {
		sig <- syscall.SIGINT
		return
	}
	resp, err := sc.standardModeSwitch(line)
	if err != nil {
		sc.showError(err)
	} else if resp != nil {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			sig <- syscall.SIGINT
			break
		}
		sc.Execute(sig, line)
	}
	log.Debug().Msg("exiting-readline-loop")
}

func (sc *ShellController) stopAutoplay() {
	if sc.autoplayCancel == nil {
		return
	}
	sc.autoplayCancel()
	if err := <-sc.autoplayDone; err != nil {
		log.Err(err).Msg("autoplay-error")
	}
	sc.autoplayCancel = nil
}

// Cleanup stops anything still running in the background and closes the
// solution cache.
func (sc *ShellController) Cleanup() {
	sc.stopAutoplay()
	if sc.solutions != nil {
		if err := sc.solutions.Close(); err != nil {
			log.Err(err).Msg("cache-close-error")
		}
		sc.solutions = nil
	}
}
