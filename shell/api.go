package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/rummy/automatic"
	"github.com/domino14/rummy/cache"
	"github.com/domino14/rummy/config"
	"github.com/domino14/rummy/meld"
	"github.com/domino14/rummy/position"
	"github.com/domino14/rummy/solver"
	"github.com/domino14/rummy/tiles"
	"github.com/domino14/rummy/worker"
)

const defaultAutoplayLog = "/tmp/rummy-autoplay.csv"

func positionDisplay(p *position.Position) string {
	var sb strings.Builder
	if id := p.ID(); id != "" {
		fmt.Fprintf(&sb, "Position %s\n", id)
	}
	sb.WriteString("Board:\n")
	if len(p.Board) == 0 {
		sb.WriteString("  (empty)\n")
	}
	boardValue := 0
	for i, m := range p.Board {
		boardValue += m.Value()
		note := ""
		if !m.IsLegal() {
			note = "  (not a legal meld)"
		}
		fmt.Fprintf(&sb, "  %2d: %s%s\n", i+1, m, note)
	}
	fmt.Fprintf(&sb, "Board value: %d\n", boardValue)
	fmt.Fprintf(&sb, "Rack: %s\n", tiles.ListString(p.Rack))
	if sc, ok := p.ExpectedScore(); ok {
		fmt.Fprintf(&sb, "Expected score: %d\n", sc)
	}
	if note, ok := p.Opcodes[position.OpNote]; ok {
		fmt.Fprintf(&sb, "Note: %s\n", note)
	}
	return sb.String()
}

func meldList(melds []meld.Meld) string {
	var sb strings.Builder
	for i, m := range melds {
		fmt.Fprintf(&sb, "  %2d: %s\n", i+1, m)
	}
	return sb.String()
}

func solutionDisplay(sol *solver.Solution) string {
	var sb strings.Builder
	if sol.Score == 0 {
		sb.WriteString("No play adds to the board.\n")
	} else {
		fmt.Fprintf(&sb, "Score: %d\n", sol.Score)
		fmt.Fprintf(&sb, "Played: %s\n", tiles.ListString(sol.Played))
		sb.WriteString("Board:\n")
		sb.WriteString(meldList(sol.Melds))
	}
	fmt.Fprintf(&sb, "States: %d  Memo hits: %d  Time: %v\n",
		sol.Stats.States, sol.Stats.MemoHits, sol.Stats.Elapsed)
	return sb.String()
}

func (sc *ShellController) currentPosition() *position.Position {
	if sc.pos == nil {
		sc.pos = &position.Position{Board: []meld.Meld{}, Rack: []tiles.Tile{}, Opcodes: map[string]string{}}
	}
	return sc.pos
}

func (sc *ShellController) setPosition(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: position <board> <rack> [opcodes]")
	}
	p, err := position.Parse(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	sc.pos = p
	sc.lastSolution = nil
	return msg(positionDisplay(p)), nil
}

func (sc *ShellController) board(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: board <meld/meld/...>, or board - for an empty board")
	}
	b, err := position.ParseBoard(cmd.args[0])
	if err != nil {
		return nil, err
	}
	sc.currentPosition().Board = b
	sc.lastSolution = nil
	return msg(positionDisplay(sc.pos)), nil
}

func (sc *ShellController) rack(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: rack <tiles>, or rack - for an empty rack")
	}
	r, err := tiles.ParseList(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	sc.currentPosition().Rack = r
	sc.lastSolution = nil
	return msg(positionDisplay(sc.pos)), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.pos == nil {
		return nil, errNoPosition
	}
	out := positionDisplay(sc.pos)
	if len(cmd.args) > 0 && cmd.args[0] == "solution" {
		if sc.lastSolution == nil {
			return nil, errors.New("no solution yet; use `solve`")
		}
		out += solutionDisplay(sc.lastSolution)
	}
	return msg(out), nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if sc.pos == nil {
		return nil, errNoPosition
	}
	timeout := sc.config.GetDuration(config.ConfigSolveTimeout)
	if t := cmd.options.String("timeout"); t != "" {
		var err error
		timeout, err = time.ParseDuration(t)
		if err != nil {
			return nil, err
		}
	}
	ctx, cancel := solver.WithTimeLimit(context.Background(), timeout)
	defer cancel()

	var sol *solver.Solution
	var err error
	switch {
	case cmd.options.Bool("remote"):
		sol, err = sc.solveRemote(ctx)
	case cmd.options.Bool("lambda"):
		var invoker *worker.LambdaInvoker
		invoker, err = worker.NewLambdaInvoker(ctx, sc.config.GetString(config.ConfigLambdaFunction))
		if err != nil {
			return nil, err
		}
		sol, err = invoker.Solve(ctx, sc.pos)
	case cmd.options.Bool("cache"):
		sc.solutions, err = cache.Solutions(sc.config)
		if err != nil {
			return nil, err
		}
		sol, err = sc.solutions.Solve(ctx, sc.pos)
	default:
		sol, err = solver.SolveContext(ctx, sc.pos.Board, sc.pos.Rack)
	}
	if err != nil {
		return nil, err
	}
	sc.lastSolution = sol
	out := solutionDisplay(sol)
	if expected, ok := sc.pos.ExpectedScore(); ok && expected != sol.Score {
		out += fmt.Sprintf("Expected a score of %d!\n", expected)
	}
	return msg(out), nil
}

// solveRemote sends the position to a solve worker over NATS.
func (sc *ShellController) solveRemote(ctx context.Context) (*solver.Solution, error) {
	nc, err := nats.Connect(sc.config.GetString(config.ConfigNatsURL))
	if err != nil {
		return nil, err
	}
	defer nc.Close()
	return worker.NewClient(nc, sc.config.GetString(config.ConfigNatsSubject)).Solve(ctx, sc.pos)
}

func (sc *ShellController) check(cmd *shellcmd) (*Response, error) {
	var ts []tiles.Tile
	if len(cmd.args) > 0 {
		var err error
		ts, err = tiles.ParseList(strings.Join(cmd.args, " "))
		if err != nil {
			return nil, err
		}
	} else {
		if sc.pos == nil {
			return nil, errNoPosition
		}
		ts = lo.FlatMap(sc.pos.Board, func(m meld.Meld, _ int) []tiles.Tile { return m.Tiles })
	}
	melds, err := solver.ValidArrangement(ts)
	if err != nil {
		return nil, err
	}
	if melds == nil {
		return msg("These tiles cannot all be arranged into melds."), nil
	}
	return msg("Arrangement:\n" + meldList(melds)), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <fixtures.yaml>")
	}
	fixtures, err := position.LoadFixtures(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if len(fixtures) == 0 {
		return nil, errors.New("no positions in " + cmd.args[0])
	}
	sc.fixtures = fixtures
	sc.curFixture = 0
	sc.pos = fixtures[0]
	sc.lastSolution = nil
	log.Debug().Int("positions", len(fixtures)).Str("path", cmd.args[0]).Msg("loaded-fixtures")
	return msg(fmt.Sprintf("Loaded %d positions.\n%s", len(fixtures), positionDisplay(sc.pos))), nil
}

func (sc *ShellController) list(cmd *shellcmd) (*Response, error) {
	if len(sc.fixtures) == 0 {
		return nil, errors.New("no positions loaded; use `load`")
	}
	var sb strings.Builder
	for i, p := range sc.fixtures {
		marker := " "
		if i == sc.curFixture {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%s%3d: %-12s %s\n", marker, i+1, p.ID(), p.String())
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) goToFixture(i int) (*Response, error) {
	if len(sc.fixtures) == 0 {
		return nil, errors.New("no positions loaded; use `load`")
	}
	if i < 0 || i >= len(sc.fixtures) {
		return nil, errors.New("no more positions")
	}
	sc.curFixture = i
	sc.pos = sc.fixtures[i]
	sc.lastSolution = nil
	return msg(positionDisplay(sc.pos)), nil
}

func (sc *ShellController) next(cmd *shellcmd) (*Response, error) {
	return sc.goToFixture(sc.curFixture + 1)
}

func (sc *ShellController) prev(cmd *shellcmd) (*Response, error) {
	return sc.goToFixture(sc.curFixture - 1)
}

func (sc *ShellController) deal(cmd *shellcmd) (*Response, error) {
	d := automatic.NewDealer(nil)
	var err error
	if d.BoardMelds, err = cmd.options.IntDefault("melds", automatic.DefaultBoardMelds); err != nil {
		return nil, err
	}
	if d.RackSize, err = cmd.options.IntDefault("rack", automatic.DefaultRackSize); err != nil {
		return nil, err
	}
	sc.pos = d.Deal()
	sc.lastSolution = nil
	return msg(positionDisplay(sc.pos)), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if sc.autoplayCancel != nil {
		select {
		case err := <-sc.autoplayDone:
			sc.autoplayCancel()
			sc.autoplayCancel = nil
			if err != nil {
				log.Err(err).Msg("previous-autoplay-error")
			}
		default:
			if len(cmd.args) > 0 && cmd.args[0] == "stop" {
				sc.stopAutoplay()
				return msg("Stopped."), nil
			}
			return nil, fmt.Errorf("autoplay is running (%d solved); use `autoplay stop`",
				automatic.SolveCounter.Value())
		}
	}
	if len(cmd.args) > 0 && cmd.args[0] == "stop" {
		return nil, errors.New("autoplay is not running")
	}

	opts := automatic.BatchOptions{
		OutputFilename: cmd.options.String("file"),
		UseCache:       cmd.options.Bool("cache"),
	}
	if opts.OutputFilename == "" {
		opts.OutputFilename = defaultAutoplayLog
	}
	var err error
	if opts.NumPositions, err = cmd.options.IntDefault("n", 100); err != nil {
		return nil, err
	}
	if opts.Threads, err = cmd.options.IntDefault("threads", 0); err != nil {
		return nil, err
	}
	if opts.BoardMelds, err = cmd.options.IntDefault("melds", 0); err != nil {
		return nil, err
	}
	if opts.RackSize, err = cmd.options.IntDefault("rack", 0); err != nil {
		return nil, err
	}
	if seedFile := cmd.options.String("seeds"); seedFile != "" {
		if opts.Seeds, err = automatic.LoadSeeds(seedFile); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	sc.autoplayCancel = cancel
	sc.autoplayDone = make(chan error, 1)
	go func() {
		sc.autoplayDone <- automatic.StartSolveRuns(ctx, sc.config, opts)
	}()
	return msg(fmt.Sprintf("Solving positions in the background, logging to %s.\n"+
		"Use `autoplay stop` to stop and `analyze %s` when done.",
		opts.OutputFilename, opts.OutputFilename)), nil
}

func (sc *ShellController) analyze(cmd *shellcmd) (*Response, error) {
	path := defaultAutoplayLog
	if len(cmd.args) > 0 {
		path = cmd.args[0]
	}
	summary, err := automatic.AnalyzeLogFile(path)
	if err != nil {
		return nil, err
	}
	return msg(summary), nil
}

func (sc *ShellController) setConfig(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: setconfig <key> <value>")
	}
	key, value := cmd.args[0], cmd.args[1]
	sc.config.Set(key, value)
	if err := sc.config.Write(); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}
	return msg(fmt.Sprintf("set config %s to %s and saved to file", key, value)), nil
}
