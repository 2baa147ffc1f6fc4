package tiles

// SetSize is the number of tiles in a standard set.
const SetSize = NumSuits*MaxValue*Copies + MaxJokers

// FullSet returns the multiset of every tile in a standard set.
func FullSet() Counts {
	var c Counts
	for s := range c.Tiles {
		for v := range c.Tiles[s] {
			c.Tiles[s][v] = Copies
		}
	}
	c.Jokers = MaxJokers
	return c
}
