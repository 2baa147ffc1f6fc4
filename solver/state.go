package solver

import (
	"github.com/domino14/rummy/tiles"
)

const (
	numSuits = tiles.NumSuits
	maxValue = tiles.MaxValue
	// maxGroups is the most groups that can be formed at a single face
	// value: two copies of every tile plus two jokers make ten tiles.
	maxGroups = (tiles.Copies*tiles.NumSuits + tiles.MaxJokers) / 3
	// maxRun is the cap on a tracked run length. Anything of length 3 or
	// more is a legal run and behaves the same from then on.
	maxRun = 3

	// invalid is the score of a state from which no legal board can be
	// reached. It is low enough that adding any step score keeps it negative.
	invalid = -1000000
)

// A runPair holds the lengths of the (at most two) runs of one suit that
// end at the previous face value. Two copies of every tile means a suit can
// never have more than two runs going through the same value.
type runPair [2]int8

func (p runPair) sorted() runPair {
	if p[0] > p[1] {
		return runPair{p[1], p[0]}
	}
	return p
}

// runState is a runPair for every suit.
type runState [numSuits]runPair

// canonical sorts each pair, so that symmetric states share a memo entry.
func (r runState) canonical() runState {
	for k := range r {
		r[k] = r[k].sorted()
	}
	return r
}

// window is the sliding window used to decide whether a run may end. For
// every suit, [0] is how many tiles went into melds at the previous value and
// [1] is the count for the value before that, less any tiles in runs that
// were dropped since.
type window [numSuits][2]int

// jokerSet lists the suits the jokers stand in for at one face value.
type jokerSet struct {
	n     int8
	suits [tiles.MaxJokers]int8
}

// groupSet lists the groups formed at one face value. Each entry is the suit
// the group leaves out, or allSuits for a group of four.
type groupSet struct {
	n    int8
	omit [maxGroups]int8
}

const allSuits = -1

// prepend returns a copy of the set with a group added at the front.
func (g groupSet) prepend(omit int8) groupSet {
	out := groupSet{n: g.n + 1}
	out.omit[0] = omit
	copy(out.omit[1:], g.omit[:g.n])
	return out
}

// bySuit returns how many tiles of each suit the groups use.
func (g groupSet) bySuit() [numSuits]int {
	var ct [numSuits]int
	for _, omit := range g.omit[:g.n] {
		for k := 0; k < numSuits; k++ {
			if int8(k) != omit {
				ct[k]++
			}
		}
	}
	return ct
}

type stateKey struct {
	value      int8
	runs       runState
	jokersUsed int8
}

// record is the memo entry for one state: its best score and the transition
// that achieves it.
type record struct {
	score int
	found bool

	nextRuns   runState
	nextJokers int8
	jokers     jokerSet
	groups     groupSet
}
