package solver

import (
	"gonum.org/v1/gonum/stat/combin"

	"github.com/domino14/rummy/tiles"
)

// jokerChoices[n] lists every multiset of n suits, in lexicographic order.
// Two jokers may stand in for the same suit at one value, one in each of the
// suit's two copies.
var jokerChoices [tiles.MaxJokers + 1][]jokerSet

func init() {
	jokerChoices[0] = []jokerSet{{}}
	for n := 1; n <= tiles.MaxJokers; n++ {
		// A multiset of n items from k kinds maps to a plain combination of n
		// items from k+n-1, by subtracting each element's index.
		for _, c := range combin.Combinations(numSuits+n-1, n) {
			js := jokerSet{n: int8(n)}
			for i, x := range c {
				js.suits[i] = int8(x - i)
			}
			jokerChoices[n] = append(jokerChoices[n], js)
		}
	}
}

// placeJokers adds (delta = 1) or removes (delta = -1) the jokers in js to
// both the board and the availability counts at value v. Counting a joker
// as a board tile makes it illegal for any option to leave it out.
func (s *search) placeJokers(v int, js jokerSet, delta int) {
	for _, k := range js.suits[:js.n] {
		s.board[k][v-1] += delta
		s.avail[k][v-1] += delta
	}
}

// jokerScore is the correction for n jokers at value v: the groups and runs
// count them at face value, but they are worth tiles.JokerValue.
func jokerScore(n int8, v int) int {
	return int(n) * (tiles.JokerValue - v)
}
