package tiles

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// NumSuits is the number of tile colors in a standard set.
	NumSuits = 4
	// MaxValue is the highest face value.
	MaxValue = 13
	// Copies is how many copies of each suit/value a standard set holds.
	Copies = 2
	// MaxJokers is the number of jokers in a standard set.
	MaxJokers = 2
	// JokerValue is what a joker is worth, regardless of the tile it stands in for.
	JokerValue = 25

	// JokerToken is the user-visible representation of a joker.
	JokerToken = 'J'
)

var ErrBadTile = errors.New("bad tile")

// Suit is a tile color, from 0 to NumSuits-1.
type Suit uint8

const (
	Red Suit = iota
	Blue
	Orange
	Black
)

var suitLetters = [NumSuits]byte{'R', 'B', 'O', 'K'}

// Letter returns the one-letter code for this suit.
func (s Suit) Letter() byte {
	if int(s) >= NumSuits {
		return '?'
	}
	return suitLetters[s]
}

func (s Suit) String() string {
	switch s {
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Orange:
		return "orange"
	case Black:
		return "black"
	}
	return "unknown"
}

// SuitFromLetter is the inverse of Suit.Letter.
func SuitFromLetter(b byte) (Suit, error) {
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	for i, l := range suitLetters {
		if l == b {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown suit `%c`", ErrBadTile, b)
}

// A Tile is a single rummy tile. A joker may carry the Value and Suit of the
// tile it stands in for; a joker with a zero Value is unassigned.
type Tile struct {
	Value int
	Suit  Suit
	Joker bool
}

// New returns a regular (non-joker) tile.
func New(value int, suit Suit) Tile {
	return Tile{Value: value, Suit: suit}
}

// NewJoker returns an unassigned joker.
func NewJoker() Tile {
	return Tile{Joker: true}
}

// AssignedJoker returns a joker standing in for the given suit and value.
func AssignedJoker(value int, suit Suit) Tile {
	return Tile{Value: value, Suit: suit, Joker: true}
}

// Score is how many points this tile is worth once it is on the board.
func (t Tile) Score() int {
	if t.Joker {
		return JokerValue
	}
	return t.Value
}

// Bare strips any assignment from a joker, so that all jokers compare equal.
func (t Tile) Bare() Tile {
	if t.Joker {
		return NewJoker()
	}
	return t
}

// Validate makes sure a regular tile has a legal value and suit. Jokers
// are always valid.
func (t Tile) Validate() error {
	if t.Joker {
		return nil
	}
	if t.Value < 1 || t.Value > MaxValue {
		return fmt.Errorf("%w: value %d out of range", ErrBadTile, t.Value)
	}
	if int(t.Suit) >= NumSuits {
		return fmt.Errorf("%w: suit %d out of range", ErrBadTile, t.Suit)
	}
	return nil
}

// String returns the notation for this tile, i.e. R7, K13, J or J(B4).
func (t Tile) String() string {
	face := string(t.Suit.Letter()) + strconv.Itoa(t.Value)
	if !t.Joker {
		return face
	}
	if t.Value == 0 {
		return string(JokerToken)
	}
	return string(JokerToken) + "(" + face + ")"
}

// Parse parses a single tile in the notation produced by Tile.String.
func Parse(s string) (Tile, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Tile{}, fmt.Errorf("%w: empty tile", ErrBadTile)
	}
	if s[0] == JokerToken || s[0] == 'j' {
		if len(s) == 1 {
			return NewJoker(), nil
		}
		if len(s) < 4 || s[1] != '(' || s[len(s)-1] != ')' {
			return Tile{}, fmt.Errorf("%w: bad joker `%s`", ErrBadTile, s)
		}
		face, err := Parse(s[2 : len(s)-1])
		if err != nil {
			return Tile{}, err
		}
		if face.Joker {
			return Tile{}, fmt.Errorf("%w: joker cannot stand in for a joker", ErrBadTile)
		}
		return AssignedJoker(face.Value, face.Suit), nil
	}
	suit, err := SuitFromLetter(s[0])
	if err != nil {
		return Tile{}, err
	}
	v, err := strconv.Atoi(s[1:])
	if err != nil {
		return Tile{}, fmt.Errorf("%w: bad value in `%s`", ErrBadTile, s)
	}
	t := New(v, suit)
	if err := t.Validate(); err != nil {
		return Tile{}, err
	}
	return t, nil
}

// ParseList parses a comma- or space-separated list of tiles. A lone "-"
// denotes an empty list.
func ParseList(s string) ([]Tile, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return []Tile{}, nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
	ts := make([]Tile, 0, len(fields))
	for _, f := range fields {
		t, err := Parse(f)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, nil
}

// ListString is the inverse of ParseList.
func ListString(ts []Tile) string {
	if len(ts) == 0 {
		return "-"
	}
	strs := make([]string, len(ts))
	for i, t := range ts {
		strs[i] = t.String()
	}
	return strings.Join(strs, ",")
}

// MarshalText encodes the tile in its string notation, so tiles appear as
// "R7" or "J(B4)" in JSON.
func (t Tile) MarshalText() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return []byte(t.String()), nil
}

func (t *Tile) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
