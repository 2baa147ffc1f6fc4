package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/rummy/tiles"
)

const bignum = 1<<63 - 2

// the count of any one tile goes from 0 to tiles.Copies, and so does the
// count of jokers.
const numCounts = tiles.Copies + 1

// Zobrist generates a hash for a rummy position: the multiset of tiles on
// the board plus the multiset in the rack. Keys are only meaningful within
// one process, since the tables are random.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	boardTable [tiles.NumSuits][tiles.MaxValue][numCounts]uint64
	rackTable  [tiles.NumSuits][tiles.MaxValue][numCounts]uint64

	boardJokers [numCounts]uint64
	rackJokers  [numCounts]uint64
}

func (z *Zobrist) Initialize() {
	for s := 0; s < tiles.NumSuits; s++ {
		for v := 0; v < tiles.MaxValue; v++ {
			for c := 0; c < numCounts; c++ {
				z.boardTable[s][v][c] = frand.Uint64n(bignum) + 1
				z.rackTable[s][v][c] = frand.Uint64n(bignum) + 1
			}
		}
	}
	for c := 0; c < numCounts; c++ {
		z.boardJokers[c] = frand.Uint64n(bignum) + 1
		z.rackJokers[c] = frand.Uint64n(bignum) + 1
	}
}

// Hash hashes a position. Counts must not exceed tiles.Copies.
func (z *Zobrist) Hash(board, rack *tiles.Counts) uint64 {
	key := uint64(0)
	for s := range board.Tiles {
		for v := range board.Tiles[s] {
			key ^= z.boardTable[s][v][board.Tiles[s][v]]
			key ^= z.rackTable[s][v][rack.Tiles[s][v]]
		}
	}
	key ^= z.boardJokers[board.Jokers]
	key ^= z.rackJokers[rack.Jokers]
	return key
}
