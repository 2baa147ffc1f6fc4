package tiles

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	is := is.New(t)
	type tc struct {
		in    string
		tile  Tile
		isErr bool
	}
	cases := []tc{
		{"R7", New(7, Red), false},
		{"k13", New(13, Black), false},
		{"B1", New(1, Blue), false},
		{"O10", New(10, Orange), false},
		{"J", NewJoker(), false},
		{"J(B4)", AssignedJoker(4, Blue), false},
		{"R14", Tile{}, true},
		{"R0", Tile{}, true},
		{"X3", Tile{}, true},
		{"J(J)", Tile{}, true},
		{"J(", Tile{}, true},
		{"", Tile{}, true},
	}
	for _, c := range cases {
		tile, err := Parse(c.in)
		if c.isErr {
			is.True(errors.Is(err, ErrBadTile))
			continue
		}
		is.NoErr(err)
		is.Equal(tile, c.tile)
	}
}

func TestStringRoundTrip(t *testing.T) {
	is := is.New(t)
	for _, in := range []string{"R1", "B13", "O5", "K9", "J", "J(K12)"} {
		tile, err := Parse(in)
		is.NoErr(err)
		is.Equal(tile.String(), in)
	}
}

func TestParseList(t *testing.T) {
	ts, err := ParseList("R1,R2 R3, J")
	assert.Nil(t, err)
	assert.Equal(t, []Tile{New(1, Red), New(2, Red), New(3, Red), NewJoker()}, ts)
	assert.Equal(t, "R1,R2,R3,J", ListString(ts))

	empty, err := ParseList("-")
	assert.Nil(t, err)
	assert.Equal(t, 0, len(empty))
	assert.Equal(t, "-", ListString(empty))
}

func TestScore(t *testing.T) {
	is := is.New(t)
	is.Equal(New(9, Orange).Score(), 9)
	is.Equal(NewJoker().Score(), JokerValue)
	is.Equal(AssignedJoker(3, Red).Score(), JokerValue)
	is.Equal(AssignedJoker(3, Red).Bare(), NewJoker())
}

func TestCounts(t *testing.T) {
	ts, err := ParseList("R1,R1,B5,J,K13")
	assert.Nil(t, err)
	c := CountsFrom(ts)
	assert.Equal(t, 2, c.CountOf(Red, 1))
	assert.Equal(t, 1, c.CountOf(Blue, 5))
	assert.Equal(t, 0, c.CountOf(Blue, 14))
	assert.Equal(t, 1, c.Jokers)
	assert.Equal(t, 5, c.NumTiles())
	assert.Equal(t, 1+1+5+13+JokerValue, c.Score())
	assert.Equal(t, "R1,R1,B5,K13,J", c.String())

	c.Take(New(1, Red))
	c.Take(NewJoker())
	assert.Equal(t, 1, c.CountOf(Red, 1))
	assert.False(t, c.Has(NewJoker()))
	assert.True(t, c.Has(New(13, Black)))

	merged := c.Merge(CountsFrom([]Tile{New(1, Red), NewJoker()}))
	assert.Equal(t, 2, merged.CountOf(Red, 1))
	assert.Equal(t, 1, merged.Jokers)
	// Merge does not modify the receiver.
	assert.Equal(t, 1, c.CountOf(Red, 1))
}

func TestFullSet(t *testing.T) {
	is := is.New(t)
	set := FullSet()
	is.Equal(set.NumTiles(), SetSize)
	is.Equal(SetSize, 106)
	is.Equal(set.CountOf(Black, 13), Copies)
	is.Equal(set.Score(), 2*4*91+2*JokerValue)
}

func TestJSON(t *testing.T) {
	is := is.New(t)
	ts := []Tile{New(7, Red), AssignedJoker(4, Blue), NewJoker()}
	data, err := json.Marshal(ts)
	is.NoErr(err)
	is.Equal(string(data), `["R7","J(B4)","J"]`)

	var back []Tile
	is.NoErr(json.Unmarshal(data, &back))
	is.Equal(back, ts)

	is.True(json.Unmarshal([]byte(`["R14"]`), &back) != nil)
	_, err = json.Marshal(New(0, Red))
	is.True(err != nil)
}
