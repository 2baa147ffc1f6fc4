package meld

import (
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/rummy/tiles"
)

// MaxGroupSize is the largest group possible: one tile of each suit.
const MaxGroupSize = tiles.NumSuits

// MinSize is the minimum number of tiles in any meld.
const MinSize = 3

// A Meld is an ordered set of tiles that sits on the board. Order matters for
// runs, since a joker's position determines the tile it stands in for.
type Meld struct {
	Tiles []tiles.Tile
}

// New creates a meld with a copy of the given tiles.
func New(ts []tiles.Tile) Meld {
	cp := make([]tiles.Tile, len(ts))
	copy(cp, ts)
	return Meld{Tiles: cp}
}

// Parse parses a meld in tile-list notation, i.e. R4,R5,J
func Parse(s string) (Meld, error) {
	ts, err := tiles.ParseList(s)
	if err != nil {
		return Meld{}, err
	}
	return Meld{Tiles: ts}, nil
}

func (m Meld) Len() int {
	return len(m.Tiles)
}

// Value is the total board value of the meld; every joker counts for
// tiles.JokerValue.
func (m Meld) Value() int {
	return lo.SumBy(m.Tiles, func(t tiles.Tile) int { return t.Score() })
}

// NumJokers returns how many jokers are in the meld.
func (m Meld) NumJokers() int {
	return lo.CountBy(m.Tiles, func(t tiles.Tile) bool { return t.Joker })
}

func (m Meld) String() string {
	return tiles.ListString(m.Tiles)
}

// MarshalText encodes the meld as a comma-separated tile list.
func (m Meld) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Meld) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// IsGroup returns true if the meld is 3 or 4 tiles of the same value and
// pairwise distinct suits. Jokers may stand in for any missing suit.
func (m Meld) IsGroup() bool {
	if len(m.Tiles) < MinSize || len(m.Tiles) > MaxGroupSize {
		return false
	}
	var seen [tiles.NumSuits]bool
	value := 0
	for _, t := range m.Tiles {
		if t.Joker {
			continue
		}
		if value == 0 {
			value = t.Value
		} else if t.Value != value {
			return false
		}
		if int(t.Suit) >= tiles.NumSuits || seen[t.Suit] {
			return false
		}
		seen[t.Suit] = true
	}
	return true
}

// IsRun returns true if the tiles, in order, are 3 or more consecutive
// values of one suit. Jokers fill the position they occupy, and the
// positions they imply must stay within 1 and tiles.MaxValue.
func (m Meld) IsRun() bool {
	if len(m.Tiles) < MinSize || len(m.Tiles) > tiles.MaxValue {
		return false
	}
	start := 0
	var suit tiles.Suit
	for i, t := range m.Tiles {
		if t.Joker {
			continue
		}
		if start == 0 {
			start = t.Value - i
			suit = t.Suit
			if start < 1 || start+len(m.Tiles)-1 > tiles.MaxValue {
				return false
			}
			continue
		}
		if t.Suit != suit || t.Value != start+i {
			return false
		}
	}
	return true
}

// IsLegal returns true if the meld may sit on the board.
func (m Meld) IsLegal() bool {
	return m.IsGroup() || m.IsRun()
}

// Sort returns a copy of the meld in display order: groups by suit, runs by
// value. Unassigned jokers are given the face they most plausibly stand in
// for. In a run they fill gaps first, then the values after the highest
// tile, then the values before the lowest.
func Sort(m Meld) Meld {
	out := New(m.Tiles)
	if lo.SomeBy(out.Tiles, func(t tiles.Tile) bool { return t.Joker && t.Value == 0 }) {
		assignJokers(out.Tiles)
	}
	sort.SliceStable(out.Tiles, func(i, j int) bool {
		a, b := out.Tiles[i], out.Tiles[j]
		// Unassigned jokers go last.
		if a.Value == 0 || b.Value == 0 {
			return b.Value == 0 && a.Value != 0
		}
		if a.Value != b.Value {
			return a.Value < b.Value
		}
		return a.Suit < b.Suit
	})
	return out
}

func assignJokers(ts []tiles.Tile) {
	regular := lo.Filter(ts, func(t tiles.Tile, _ int) bool { return !t.Joker })
	if len(regular) == 0 {
		return
	}
	sameValue := lo.EveryBy(regular, func(t tiles.Tile) bool { return t.Value == regular[0].Value })
	sameSuit := lo.EveryBy(regular, func(t tiles.Tile) bool { return t.Suit == regular[0].Suit })

	switch {
	case len(regular) > 1 && sameValue:
		var taken [tiles.NumSuits]bool
		for _, t := range regular {
			taken[t.Suit] = true
		}
		for i := range ts {
			if !ts[i].Joker || ts[i].Value != 0 {
				continue
			}
			for s := range taken {
				if !taken[s] {
					taken[s] = true
					ts[i] = tiles.AssignedJoker(regular[0].Value, tiles.Suit(s))
					break
				}
			}
		}
	case sameSuit:
		var have [tiles.MaxValue + 1]bool
		lowest := tiles.MaxValue
		for _, t := range regular {
			have[t.Value] = true
			lowest = min(lowest, t.Value)
		}
		for _, t := range ts {
			if t.Joker && t.Value != 0 {
				have[t.Value] = true
			}
		}
		var free []int
		for v := lowest + 1; v <= tiles.MaxValue; v++ {
			if !have[v] {
				free = append(free, v)
			}
		}
		for v := lowest - 1; v >= 1; v-- {
			if !have[v] {
				free = append(free, v)
			}
		}
		suit := regular[0].Suit
		for i := range ts {
			if !ts[i].Joker || ts[i].Value != 0 || len(free) == 0 {
				continue
			}
			ts[i] = tiles.AssignedJoker(free[0], suit)
			free = free[1:]
		}
	}
}
