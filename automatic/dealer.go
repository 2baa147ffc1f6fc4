package automatic

import (
	"sort"

	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/domino14/rummy/meld"
	"github.com/domino14/rummy/position"
	"github.com/domino14/rummy/tiles"
)

const (
	DefaultBoardMelds = 4
	DefaultRackSize   = 14

	defaultJokerOdds = 0.1
	// Give up on filling the board after this many failed draws per meld.
	maxDrawsPerMeld = 50
)

// A Dealer deals random positions from a standard set: a legal board made
// of random runs and groups, then a rack drawn from what is left in the bag.
type Dealer struct {
	rng *frand.RNG

	BoardMelds int
	RackSize   int
	// JokerOdds is the chance that a board meld gives up one of its tiles
	// to a joker, as long as there are jokers left in the bag.
	JokerOdds float64
}

// NewDealer returns a dealer with default sizes. A nil rng means the
// dealer draws from fresh entropy.
func NewDealer(rng *frand.RNG) *Dealer {
	if rng == nil {
		rng = frand.New()
	}
	return &Dealer{
		rng:        rng,
		BoardMelds: DefaultBoardMelds,
		RackSize:   DefaultRackSize,
		JokerOdds:  defaultJokerOdds,
	}
}

// Seeded returns a copy of the dealer that deals deterministically from
// the given seed.
func (d *Dealer) Seeded(seed [32]byte) *Dealer {
	cp := *d
	cp.rng = frand.NewCustom(seed[:], 1024, 12)
	return &cp
}

// Deal deals a new position. The board may hold fewer than BoardMelds melds
// if the bag runs dry.
func (d *Dealer) Deal() *position.Position {
	bag := tiles.FullSet()
	board := make([]meld.Meld, 0, d.BoardMelds)
	for draws := 0; len(board) < d.BoardMelds && draws < d.BoardMelds*maxDrawsPerMeld; draws++ {
		var ts []tiles.Tile
		if d.rng.Intn(2) == 0 {
			ts = d.run()
		} else {
			ts = d.group()
		}
		if !lo.EveryBy(ts, func(t tiles.Tile) bool { return bag.Has(t) }) {
			continue
		}
		for _, t := range ts {
			bag.Take(t)
		}
		if bag.Jokers > 0 && d.rng.Float64() < d.JokerOdds {
			i := d.rng.Intn(len(ts))
			bag.Add(ts[i])
			bag.Take(tiles.NewJoker())
			ts[i] = tiles.NewJoker()
		}
		board = append(board, meld.New(ts))
	}
	return &position.Position{
		Board:   board,
		Rack:    d.draw(&bag, d.RackSize),
		Opcodes: map[string]string{},
	}
}

// run returns the tiles of a random run of 3 to 5 tiles.
func (d *Dealer) run() []tiles.Tile {
	suit := tiles.Suit(d.rng.Intn(tiles.NumSuits))
	length := 3 + d.rng.Intn(3)
	start := 1 + d.rng.Intn(tiles.MaxValue-length+1)
	ts := make([]tiles.Tile, length)
	for i := range ts {
		ts[i] = tiles.New(start+i, suit)
	}
	return ts
}

// group returns the tiles of a random group of 3 or 4 tiles.
func (d *Dealer) group() []tiles.Tile {
	value := 1 + d.rng.Intn(tiles.MaxValue)
	suits := d.rng.Perm(tiles.NumSuits)[:3+d.rng.Intn(2)]
	sort.Ints(suits)
	return lo.Map(suits, func(s int, _ int) tiles.Tile { return tiles.New(value, tiles.Suit(s)) })
}

func (d *Dealer) draw(bag *tiles.Counts, n int) []tiles.Tile {
	pool := bag.TilesOn()
	d.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	rack := append([]tiles.Tile{}, pool[:min(n, len(pool))]...)
	for _, t := range rack {
		bag.Take(t)
	}
	return rack
}
