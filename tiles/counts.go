package tiles

// Counts is a machine-friendly multiset of regular tiles, indexed by suit
// and then by face value minus one. Jokers are counted separately.
type Counts struct {
	Tiles  [NumSuits][MaxValue]int
	Jokers int
}

// CountsFrom builds a Counts from a list of tiles. Joker assignments are
// ignored; every joker is simply counted.
func CountsFrom(ts []Tile) Counts {
	var c Counts
	for _, t := range ts {
		c.Add(t)
	}
	return c
}

// Add adds a tile. It does not validate the tile.
func (c *Counts) Add(t Tile) {
	if t.Joker {
		c.Jokers++
		return
	}
	c.Tiles[t.Suit][t.Value-1]++
}

// Take removes a tile. It should only be called if the tile is there; it
// doesn't check.
func (c *Counts) Take(t Tile) {
	if t.Joker {
		c.Jokers--
		return
	}
	c.Tiles[t.Suit][t.Value-1]--
}

// Has returns true if the tile is in the multiset.
func (c *Counts) Has(t Tile) bool {
	if t.Joker {
		return c.Jokers > 0
	}
	return c.Tiles[t.Suit][t.Value-1] > 0
}

// CountOf returns the multiplicity of the given suit and face value.
func (c *Counts) CountOf(suit Suit, value int) int {
	if value < 1 || value > MaxValue {
		return 0
	}
	return c.Tiles[suit][value-1]
}

// NumTiles returns the total number of tiles, jokers included.
func (c *Counts) NumTiles() int {
	n := c.Jokers
	for s := range c.Tiles {
		for _, ct := range c.Tiles[s] {
			n += ct
		}
	}
	return n
}

// Merge returns the sum of two multisets.
func (c Counts) Merge(other Counts) Counts {
	for s := range c.Tiles {
		for v := range c.Tiles[s] {
			c.Tiles[s][v] += other.Tiles[s][v]
		}
	}
	c.Jokers += other.Jokers
	return c
}

// Score is the board value of every tile in the multiset.
func (c *Counts) Score() int {
	sc := c.Jokers * JokerValue
	for s := range c.Tiles {
		for v, ct := range c.Tiles[s] {
			sc += ct * (v + 1)
		}
	}
	return sc
}

// TilesOn returns the tiles in the multiset, ordered by suit then value,
// with jokers last.
func (c *Counts) TilesOn() []Tile {
	ts := make([]Tile, 0, c.NumTiles())
	for s := range c.Tiles {
		for v, ct := range c.Tiles[s] {
			for i := 0; i < ct; i++ {
				ts = append(ts, New(v+1, Suit(s)))
			}
		}
	}
	for i := 0; i < c.Jokers; i++ {
		ts = append(ts, NewJoker())
	}
	return ts
}

func (c *Counts) String() string {
	return ListString(c.TilesOn())
}
