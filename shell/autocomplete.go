package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides context-aware autocomplete for shell commands.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command.
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"solve": {
		Options: []string{"-timeout", "-cache", "-remote", "-lambda"},
	},
	"show": {
		Args: []string{"solution"},
	},
	"deal": {
		Options: []string{"-melds", "-rack"},
	},
	"autoplay": {
		Options: []string{"-n", "-threads", "-file", "-seeds", "-cache", "-melds", "-rack"},
		Args:    []string{"stop"},
	},
	"setconfig": {
		Args: []string{
			"data-path", "nats-url", "nats-subject", "nats-queue",
			"cache-db-path", "cache-memory-fraction", "threads", "solve-timeout",
			"lambda-function",
		},
	},
	"help": {
		Args: helpTopics,
	},
}

var commandNames = []string{
	"help", "position", "board", "rack", "show", "solve", "check", "load",
	"list", "next", "prev", "deal", "autoplay", "analyze", "setconfig",
	"script", "exit",
}

var boolValues = []string{"true", "false"}

// Do implements the readline.AutoCompleter interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// Probably an unterminated quote.
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch lastCompleteField {
		case "-cache", "-remote", "-lambda":
			completions = boolValues
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
