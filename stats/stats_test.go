package stats

import (
	"math"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Iterations(), len(c.scores))

	}
}

func TestMinMax(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{7, 3, 28, 0, 12} {
		s.Push(v)
	}
	is.Equal(s.Min(), 0.0)
	is.Equal(s.Max(), 28.0)
	is.Equal(s.Last(), 12.0)
}

func TestConfidenceInterval(t *testing.T) {
	is := is.New(t)
	is.True(math.Abs(zScore(95)-1.959964) < 1e-5)
	is.True(math.Abs(zScore(99)-2.575829) < 1e-5)
	is.True(math.Abs(zScore(0)) < 1e-9)
	s := &Statistic{}
	for _, v := range []float64{10, 12, 23, 23, 16, 23, 21, 16} {
		s.Push(v)
	}
	is.True(math.Abs(s.ConfidenceInterval(95)-1.959964*s.Stdev()/math.Sqrt(8)) < 1e-4)
	empty := &Statistic{}
	is.Equal(empty.ConfidenceInterval(95), 0.0)
}

func TestWriteHistogram(t *testing.T) {
	is := is.New(t)
	var sb strings.Builder
	is.NoErr(WriteHistogram(&sb, []float64{1, 2, 2, 3, 3, 3, 10}))
	is.True(sb.Len() > 0)
	sb.Reset()
	is.NoErr(WriteHistogram(&sb, nil))
	is.Equal(sb.String(), "(no data)\n")
}
