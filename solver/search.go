package solver

import (
	"context"

	"github.com/domino14/rummy/tiles"
)

// ctxCheckInterval is how many new states are expanded between checks for
// cancellation.
const ctxCheckInterval = 4096

// search holds the state for one solve. Nothing in it is shared between
// calls.
type search struct {
	ctx context.Context
	err error

	// board is the count of tiles that must stay on the board. It is
	// temporarily inflated at the current value by the jokers being tried.
	board [numSuits][maxValue]int
	// avail is board plus rack, inflated the same way.
	avail [numSuits][maxValue]int

	boardJokers int
	totalJokers int

	memo   map[stateKey]*record
	groups groupSizer
	stats  Stats
}

func newSearch(ctx context.Context, board, rack tiles.Counts) *search {
	s := &search{
		ctx:         ctx,
		board:       board.Tiles,
		boardJokers: board.Jokers,
		totalJokers: board.Jokers + rack.Jokers,
		memo:        make(map[stateKey]*record, 1<<12),
	}
	all := board.Merge(rack)
	s.avail = all.Tiles
	return s
}

// run returns the highest total board value reachable, or invalid if the
// board tiles cannot all be placed.
func (s *search) run() (int, error) {
	if err := s.ctx.Err(); err != nil {
		return invalid, err
	}
	score := s.best(1, runState{}, 0, window{})
	if s.err != nil {
		return invalid, s.err
	}
	return score, nil
}

// covers reports whether the tiles of value v placed in runs and groups
// cover every board tile of that value.
func (s *search) covers(v int, inRuns, inGroups [numSuits]int) bool {
	for k := 0; k < numSuits; k++ {
		if inRuns[k]+inGroups[k] < s.board[k][v-1] {
			return false
		}
	}
	return true
}

// groupCounts returns how many tiles of each suit at value v are left for
// groups after the runs take theirs.
func (s *search) groupCounts(v int, runs runState) [numSuits]int {
	var counts [numSuits]int
	for k := 0; k < numSuits; k++ {
		counts[k] = s.avail[k][v-1]
		for _, n := range runs[k] {
			if n != 0 {
				counts[k]--
			}
		}
	}
	return counts
}

// best returns the highest score from value v onwards, given the runs in
// progress and the jokers already placed. The window is not part of the
// memo key; the first window to reach a state decides its value.
func (s *search) best(v int, runs runState, jokersUsed int, win window) int {
	if v > maxValue {
		if jokersUsed < s.boardJokers {
			return invalid
		}
		return 0
	}
	key := stateKey{value: int8(v), runs: runs, jokersUsed: int8(jokersUsed)}
	if rec, ok := s.memo[key]; ok {
		s.stats.MemoHits++
		return rec.score
	}
	if s.err != nil {
		return invalid
	}
	s.stats.States++
	if s.stats.States%ctxCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return invalid
		}
	}
	rec := &record{score: invalid}
	s.memo[key] = rec

	available := s.totalJokers - jokersUsed
	for n := 0; n <= available; n++ {
		spare := available - n
		for _, js := range jokerChoices[n] {
			s.placeJokers(v, js, 1)
			for _, ext := range s.extendRuns(v, runs, win, spare) {
				g := s.groups.size(s.groupCounts(v, ext.runs))
				inGroups := g.groups.bySuit()
				if !s.covers(v, ext.inRuns, inGroups) {
					continue
				}
				var child window
				for k := 0; k < numSuits; k++ {
					child[k] = [2]int{ext.inRuns[k] + inGroups[k], ext.window[k]}
				}
				step := g.total*v + ext.score + jokerScore(js.n, v)
				result := step + s.best(v+1, ext.runs, jokersUsed+n, child)
				if result > rec.score {
					*rec = record{
						score:      result,
						found:      true,
						nextRuns:   ext.runs,
						nextJokers: int8(jokersUsed + n),
						jokers:     js,
						groups:     g.groups,
					}
				}
			}
			s.placeJokers(v, js, -1)
		}
	}
	if rec.score < 0 {
		rec.score = invalid
	}
	return rec.score
}
