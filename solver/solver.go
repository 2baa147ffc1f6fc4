// Package solver finds the highest-value way to extend a rummy board with
// tiles from a rack.
//
// The search walks the face values from 1 to 13. At every value it decides,
// for each suit, which of at most two runs in progress take a tile of that
// value, how the remaining tiles form groups, and which suits the jokers
// stand in for. Every tile already on the board must remain in a meld. The
// state is the value, the lengths of the runs in progress and the number
// of jokers placed so far, which keeps the memo small.
package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/rummy/meld"
	"github.com/domino14/rummy/tiles"
)

var (
	ErrTooManyJokers = errors.New("too many jokers")
	ErrTooManyCopies = errors.New("too many copies of a tile")
)

// Stats describe the work done by one solve.
type Stats struct {
	States   int           `json:"states" yaml:"states"`
	MemoHits int           `json:"memo_hits" yaml:"memo_hits"`
	Elapsed  time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Solution is the best play found. Melds is the full new board, and Played
// lists the rack tiles it uses; jokers in Played are unassigned. Both are
// empty if there is no play that adds to the board.
type Solution struct {
	Melds  []meld.Meld  `json:"melds"`
	Played []tiles.Tile `json:"played"`
	// Score is the value of the played tiles: their face values, plus
	// tiles.JokerValue for every joker.
	Score int   `json:"score"`
	Stats Stats `json:"stats"`
}

// Solve returns the highest-scoring rearrangement of the board that uses
// tiles from the rack.
func Solve(board []meld.Meld, rack []tiles.Tile) (*Solution, error) {
	return SolveContext(context.Background(), board, rack)
}

// SolveContext is Solve with cancellation.
func SolveContext(ctx context.Context, board []meld.Meld, rack []tiles.Tile) (*Solution, error) {
	onBoard := lo.FlatMap(board, func(m meld.Meld, _ int) []tiles.Tile { return m.Tiles })
	if err := validate(onBoard, rack); err != nil {
		return nil, err
	}
	bc := tiles.CountsFrom(onBoard)
	rc := tiles.CountsFrom(rack)

	start := time.Now()
	s := newSearch(ctx, bc, rc)
	total, err := s.run()
	s.stats.Elapsed = time.Since(start)
	if err != nil {
		return nil, err
	}
	sol := &Solution{
		Melds:  []meld.Meld{},
		Played: []tiles.Tile{},
		Stats:  s.stats,
	}
	score := total - bc.Score()
	log.Debug().Int("states", s.stats.States).Int("memo-hits", s.stats.MemoHits).
		Dur("elapsed", s.stats.Elapsed).Int("total", total).Int("score", score).
		Msg("search-complete")
	if total == invalid || score <= 0 {
		return sol, nil
	}
	path := s.path()
	removePartialRuns(path)
	sol.Melds, sol.Played = assemble(path, bc.Tiles, bc.Jokers)
	sol.Score = score
	return sol, nil
}

// WithTimeLimit bounds ctx by limit. A limit that isn't positive means no
// limit.
func WithTimeLimit(ctx context.Context, limit time.Duration) (context.Context, context.CancelFunc) {
	if limit <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, limit)
}

// ValidArrangement arranges the given tiles, all of which are treated as
// board tiles, into legal melds. It returns nil if they cannot all be
// placed.
func ValidArrangement(ts []tiles.Tile) ([]meld.Meld, error) {
	if err := validate(ts, nil); err != nil {
		return nil, err
	}
	bc := tiles.CountsFrom(ts)
	s := newSearch(context.Background(), bc, tiles.Counts{})
	total, err := s.run()
	if err != nil {
		return nil, err
	}
	if total <= 0 {
		return nil, nil
	}
	path := s.path()
	removePartialRuns(path)
	melds, _ := assemble(path, bc.Tiles, bc.Jokers)
	return melds, nil
}

// Validate checks that the tiles could come from a standard set: legal
// values and suits, at most two copies of each tile and at most two jokers.
func Validate(board []meld.Meld, rack []tiles.Tile) error {
	return validate(lo.FlatMap(board, func(m meld.Meld, _ int) []tiles.Tile { return m.Tiles }), rack)
}

func validate(board, rack []tiles.Tile) error {
	all := append(append([]tiles.Tile{}, board...), rack...)
	for _, t := range all {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	c := tiles.CountsFrom(all)
	if c.Jokers > tiles.MaxJokers {
		return fmt.Errorf("%w: %d in play, at most %d allowed", ErrTooManyJokers, c.Jokers, tiles.MaxJokers)
	}
	for k := range c.Tiles {
		for v, ct := range c.Tiles[k] {
			if ct > tiles.Copies {
				return fmt.Errorf("%w: %d copies of %v", ErrTooManyCopies, ct, tiles.New(v+1, tiles.Suit(k)))
			}
		}
	}
	return nil
}
