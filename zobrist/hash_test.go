package zobrist

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/rummy/tiles"
)

func counts(t *testing.T, s string) tiles.Counts {
	ts, err := tiles.ParseList(s)
	if err != nil {
		t.Fatal(err)
	}
	return tiles.CountsFrom(ts)
}

func TestHashDistinguishesBoardAndRack(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()
	b1, r1 := counts(t, "R4,R5,R6"), counts(t, "R7")
	b2, r2 := counts(t, "R4,R5,R6,R7"), counts(t, "-")
	b3, r3 := counts(t, "R6,R5,R4"), counts(t, "R7")
	is.True(z.Hash(&b1, &r1) != z.Hash(&b2, &r2))
	is.Equal(z.Hash(&b1, &r1), z.Hash(&b3, &r3))
}

func TestHashIgnoresJokerFaces(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()
	b1, r1 := counts(t, "R4,J(R5),R6"), counts(t, "J")
	b2, r2 := counts(t, "R4,J,R6"), counts(t, "J(K1)")
	is.Equal(z.Hash(&b1, &r1), z.Hash(&b2, &r2))

	// A joker moved from the rack to the board is a different position.
	b3, r3 := counts(t, "R4,J,R6,J"), counts(t, "-")
	is.True(z.Hash(&b1, &r1) != z.Hash(&b3, &r3))
}

func TestHashCounts(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()
	one, empty := counts(t, "B9"), counts(t, "-")
	two := counts(t, "B9,B9")
	is.True(z.Hash(&one, &empty) != z.Hash(&two, &empty))
	is.True(z.Hash(&one, &empty) != z.Hash(&empty, &empty))
}
