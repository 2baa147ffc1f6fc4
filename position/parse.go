// Package position reads and writes rummy positions: a board, a rack, and
// optional opcodes. The format is
//
//	R4,R5,R6/B7,O7,K7 R7,J id p1; score 32;
//
// with melds separated by slashes, tiles by commas, and "-" standing for an
// empty board or rack.
package position

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/rummy/meld"
	"github.com/domino14/rummy/tiles"
)

var ErrBadPosition = errors.New("bad position")

// Known opcodes.
const (
	OpID    = "id"
	OpScore = "score"
	OpNote  = "note"
)

type Position struct {
	Board   []meld.Meld
	Rack    []tiles.Tile
	Opcodes map[string]string
}

// Parse parses a position string.
func Parse(s string) (*Position, error) {
	fields := strings.SplitN(strings.TrimSpace(s), " ", 3)
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: must have at least 2 space-separated fields", ErrBadPosition)
	}
	board, err := ParseBoard(fields[0])
	if err != nil {
		return nil, err
	}
	rack, err := tiles.ParseList(fields[1])
	if err != nil {
		return nil, err
	}
	opcodes := map[string]string{}
	if len(fields) == 3 {
		for _, op := range strings.Split(fields[2], ";") {
			op := strings.TrimSpace(op)
			if len(op) == 0 {
				continue
			}
			opWithParams := strings.SplitN(op, " ", 2)
			if len(opWithParams) != 2 {
				return nil, fmt.Errorf("%w: wrong number of arguments for %s operation",
					ErrBadPosition, opWithParams[0])
			}
			switch opWithParams[0] {
			case OpScore:
				if _, err := strconv.Atoi(opWithParams[1]); err != nil {
					return nil, fmt.Errorf("%w: bad score %q", ErrBadPosition, opWithParams[1])
				}
			case OpID, OpNote:
			default:
				log.Debug().Str("op", opWithParams[0]).Msg("unknown-opcode")
			}
			opcodes[opWithParams[0]] = opWithParams[1]
		}
	}
	return &Position{Board: board, Rack: rack, Opcodes: opcodes}, nil
}

// ParseBoard parses a slash-separated list of melds, or "-" for none.
func ParseBoard(s string) ([]meld.Meld, error) {
	if s == "-" {
		return []meld.Meld{}, nil
	}
	parts := strings.Split(s, "/")
	board := make([]meld.Meld, 0, len(parts))
	for _, p := range parts {
		m, err := meld.Parse(p)
		if err != nil {
			return nil, err
		}
		if m.Len() == 0 {
			return nil, fmt.Errorf("%w: empty meld", ErrBadPosition)
		}
		board = append(board, m)
	}
	return board, nil
}

// ID returns the id opcode, if any.
func (p *Position) ID() string {
	return p.Opcodes[OpID]
}

// ExpectedScore returns the score opcode, if any.
func (p *Position) ExpectedScore() (int, bool) {
	s, ok := p.Opcodes[OpScore]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// BoardString returns the board in slash-separated notation.
func BoardString(board []meld.Meld) string {
	if len(board) == 0 {
		return "-"
	}
	return strings.Join(lo.Map(board, func(m meld.Meld, _ int) string { return m.String() }), "/")
}

func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString(BoardString(p.Board))
	sb.WriteString(" ")
	sb.WriteString(tiles.ListString(p.Rack))
	keys := lo.Keys(p.Opcodes)
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(" " + k + " " + p.Opcodes[k] + ";")
	}
	return sb.String()
}

// Key is a stable hash of the tiles on the board and in the rack. The
// arrangement of the board and the order of the tiles don't affect it, and
// neither do the opcodes, so positions with the same best play share a key.
func (p *Position) Key() uint64 {
	onBoard := lo.FlatMap(p.Board, func(m meld.Meld, _ int) []tiles.Tile { return m.Tiles })
	bc := tiles.CountsFrom(onBoard)
	rc := tiles.CountsFrom(p.Rack)
	return xxhash.Sum64String(bc.String() + " " + rc.String())
}
