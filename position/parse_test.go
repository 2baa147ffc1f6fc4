package position

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/rummy/tiles"
)

func TestParse(t *testing.T) {
	is := is.New(t)
	p, err := Parse("R4,R5,R6/B7,O7,K7 R7,J id p1; score 32;")
	is.NoErr(err)
	is.Equal(len(p.Board), 2)
	is.Equal(p.Board[1].String(), "B7,O7,K7")
	is.Equal(p.Rack, []tiles.Tile{tiles.New(7, tiles.Red), tiles.NewJoker()})
	is.Equal(p.ID(), "p1")
	sc, ok := p.ExpectedScore()
	is.True(ok)
	is.Equal(sc, 32)
}

func TestParseEmpty(t *testing.T) {
	is := is.New(t)
	p, err := Parse("- -")
	is.NoErr(err)
	is.Equal(len(p.Board), 0)
	is.Equal(len(p.Rack), 0)
	_, ok := p.ExpectedScore()
	is.True(!ok)
	is.Equal(p.String(), "- -")
}

func TestParseErrors(t *testing.T) {
	is := is.New(t)
	for _, s := range []string{"", "R1,R2,R3", "R1//R2 R3", "- R3 score x;", "- R3 id;"} {
		_, err := Parse(s)
		is.True(errors.Is(err, ErrBadPosition))
	}
	_, err := Parse("R1,X2 R3")
	is.True(errors.Is(err, tiles.ErrBadTile))
}

func TestRoundTrip(t *testing.T) {
	is := is.New(t)
	for _, s := range []string{
		"R4,R5,R6/B7,O7,K7 R7,J id p1; score 32;",
		"- R1,R2,J(R3)",
		"R1,R2,R3 - note hello there;",
	} {
		p, err := Parse(s)
		is.NoErr(err)
		is.Equal(p.String(), s)
	}
}

func TestKey(t *testing.T) {
	is := is.New(t)
	p1, err := Parse("R4,R5,R6/B7,O7,K7 R7,J id p1;")
	is.NoErr(err)
	p2, err := Parse("K7,B7,O7/R6,R4,R5 J,R7 id other;")
	is.NoErr(err)
	p3, err := Parse("R4,R5,R6,R7/B7,O7,K7 J")
	is.NoErr(err)
	is.Equal(p1.Key(), p2.Key())
	is.True(p1.Key() != p3.Key())
}

func TestFixtures(t *testing.T) {
	is := is.New(t)
	positions, err := LoadFixtures(filepath.Join("..", "testdata", "positions.yaml"))
	is.NoErr(err)
	is.True(len(positions) > 5)
	is.Equal(positions[0].ID(), "single-run")
	sc, ok := positions[0].ExpectedScore()
	is.True(ok)
	is.Equal(sc, 6)

	var buf bytes.Buffer
	is.NoErr(WriteFixtures(&buf, positions))
	fixtures, err := ReadFixtures(&buf)
	is.NoErr(err)
	is.Equal(len(fixtures), len(positions))
	reparsed, err := fixtures[3].Parsed()
	is.NoErr(err)
	is.Equal(reparsed.String(), positions[3].String())
}
