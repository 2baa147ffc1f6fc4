package solver

import (
	"github.com/domino14/rummy/meld"
	"github.com/domino14/rummy/tiles"
)

// assembler turns a reconstructed path into melds. It tracks which tiles
// still have to come from the board, so that everything else is recorded as
// played from the rack.
type assembler struct {
	board       [numSuits][maxValue]int
	boardJokers int
	jokers      []jokerSet
	played      []tiles.Tile
}

// tile returns the tile for suit k at value v in a meld formed at path
// index i. A joker assigned to that suit at that value is used first.
func (a *assembler) tile(i, k, v int) tiles.Tile {
	js := &a.jokers[i]
	for j := int8(0); j < js.n; j++ {
		if js.suits[j] != int8(k) {
			continue
		}
		// Consume it.
		js.suits[j] = js.suits[js.n-1]
		js.n--
		t := tiles.AssignedJoker(v, tiles.Suit(k))
		if a.boardJokers > 0 {
			a.boardJokers--
		} else {
			a.played = append(a.played, t.Bare())
		}
		return t
	}
	t := tiles.New(v, tiles.Suit(k))
	if a.board[k][v-1] > 0 {
		a.board[k][v-1]--
	} else {
		a.played = append(a.played, t)
	}
	return t
}

// assemble builds runs (by suit, then by slot) and then groups (by value).
// board is consumed in the process, so pass a copy.
func assemble(path []step, board [numSuits][maxValue]int, boardJokers int) ([]meld.Meld, []tiles.Tile) {
	a := &assembler{
		board:       board,
		boardJokers: boardJokers,
		jokers:      make([]jokerSet, len(path)),
		played:      []tiles.Tile{},
	}
	for i := range path {
		a.jokers[i] = path[i].jokers
	}
	melds := []meld.Meld{}

	for k := 0; k < numSuits; k++ {
		for slot := 0; slot < 2; slot++ {
			var run []tiles.Tile
			for i, st := range path {
				if st.runs[k][slot] {
					run = append(run, a.tile(i, k, st.value))
					continue
				}
				if len(run) > 0 {
					melds = append(melds, meld.Meld{Tiles: run})
					run = nil
				}
			}
			if len(run) > 0 {
				melds = append(melds, meld.Meld{Tiles: run})
			}
		}
	}

	for i, st := range path {
		for _, omit := range st.groups.omit[:st.groups.n] {
			group := make([]tiles.Tile, 0, numSuits)
			for k := 0; k < numSuits; k++ {
				if int8(k) == omit {
					continue
				}
				group = append(group, a.tile(i, k, st.value))
			}
			melds = append(melds, meld.Meld{Tiles: group})
		}
	}
	return melds, a.played
}
