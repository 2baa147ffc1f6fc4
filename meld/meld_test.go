package meld

import (
	"encoding/json"
	"testing"

	"github.com/matryer/is"
)

func mustParse(t *testing.T, s string) Meld {
	m, err := Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestLegality(t *testing.T) {
	is := is.New(t)
	type tc struct {
		meld  string
		run   bool
		group bool
	}
	cases := []tc{
		{"R4,R5,R6", true, false},
		{"R4,J,R6", true, false},
		{"J,R5,R6", true, false},
		{"R11,R12,R13", true, false},
		{"R12,R13,J", false, false},
		{"J,R1,R2", false, false},
		{"R4,R6,R5", false, false},
		{"R4,B5,R6", false, false},
		{"R4,R5", false, false},
		{"R1,R2,R3,R4,R5,R6,R7,R8,R9,R10,R11,R12,R13", true, false},
		{"R7,B7,O7", false, true},
		{"R7,B7,O7,K7", false, true},
		{"R7,B7,J,K7", false, true},
		{"R7,R7,B7", false, false},
		{"R7,B7,O7,K7,J", false, false},
		{"R7,B8,O7", false, false},
		{"R7,J,J", true, true},
	}
	for _, c := range cases {
		m := mustParse(t, c.meld)
		is.Equal(m.IsRun(), c.run)
		is.Equal(m.IsGroup(), c.group)
		is.Equal(m.IsLegal(), c.run || c.group)
	}
}

func TestValue(t *testing.T) {
	is := is.New(t)
	is.Equal(mustParse(t, "R4,R5,R6").Value(), 15)
	is.Equal(mustParse(t, "R4,J,R6").Value(), 35)
	is.Equal(mustParse(t, "R4,J,R6").NumJokers(), 1)
}

func TestSort(t *testing.T) {
	is := is.New(t)
	type tc struct {
		in  string
		out string
	}
	cases := []tc{
		{"R6,R4,R5", "R4,R5,R6"},
		{"K7,R7,O7", "R7,O7,K7"},
		{"R4,J,R6", "R4,J(R5),R6"},
		{"J,R4,R5", "R4,R5,J(R6)"},
		{"R12,J,R13", "J(R11),R12,R13"},
		{"R13,J,J", "J(R11),J(R12),R13"},
		{"J,B7,R7", "R7,B7,J(O7)"},
		{"R3,J,R6,J", "R3,J(R4),J(R5),R6"},
		{"R4,J(R5),R6", "R4,J(R5),R6"},
	}
	for _, c := range cases {
		sorted := Sort(mustParse(t, c.in))
		is.Equal(sorted.String(), c.out)
		is.True(sorted.IsLegal())
	}
}

func TestSortDoesNotModify(t *testing.T) {
	is := is.New(t)
	m := mustParse(t, "R6,J,R4")
	_ = Sort(m)
	is.Equal(m.String(), "R6,J,R4")
}

func TestMeldJSON(t *testing.T) {
	is := is.New(t)
	board := []Meld{mustParse(t, "R4,J,R6"), mustParse(t, "B7,O7,K7")}
	data, err := json.Marshal(board)
	is.NoErr(err)
	is.Equal(string(data), `["R4,J,R6","B7,O7,K7"]`)

	var back []Meld
	is.NoErr(json.Unmarshal(data, &back))
	is.Equal(back, board)
}
