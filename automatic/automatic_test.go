package automatic

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/domino14/rummy/config"
	"github.com/domino14/rummy/meld"
	"github.com/domino14/rummy/solver"
	"github.com/domino14/rummy/tiles"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func seed(b byte) [32]byte {
	var s [32]byte
	s[0] = b
	return s
}

func TestDealIsLegal(t *testing.T) {
	is := is.New(t)
	d := NewDealer(nil)
	for i := 0; i < 50; i++ {
		p := d.Deal()
		is.NoErr(solver.Validate(p.Board, p.Rack))
		is.Equal(len(p.Rack), DefaultRackSize)
		is.True(len(p.Board) <= DefaultBoardMelds)
		for _, m := range p.Board {
			is.True(m.IsLegal())
		}
	}
}

func TestSeededDealsRepeat(t *testing.T) {
	is := is.New(t)
	d := NewDealer(nil)
	a := d.Seeded(seed(1)).Deal()
	b := d.Seeded(seed(1)).Deal()
	c := d.Seeded(seed(2)).Deal()
	is.Equal(a.String(), b.String())
	is.True(a.String() != c.String())
}

func TestSolveDealt(t *testing.T) {
	is := is.New(t)
	r := NewRunner(nil, config.DefaultConfig(), nil)
	r.Dealer().RackSize = 8
	for i := byte(0); i < 5; i++ {
		p := r.Dealer().Seeded(seed(i)).Deal()
		sol, err := r.Solve(context.Background(), p)
		is.NoErr(err)
		is.True(sol != nil)
		is.Equal(sol.Score, lo.SumBy(sol.Played, tiles.Tile.Score))
		for _, m := range sol.Melds {
			is.True(m.IsLegal())
		}
		// The dealt board can always be put back together.
		onBoard := lo.FlatMap(p.Board, func(m meld.Meld, _ int) []tiles.Tile { return m.Tiles })
		melds, err := solver.ValidArrangement(onBoard)
		is.NoErr(err)
		is.True(len(onBoard) == 0 || melds != nil)
	}
}

func TestSolveWithoutTimeLimit(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigSolveTimeout, "0s")
	r := NewRunner(nil, cfg, nil)
	r.Dealer().RackSize = 6
	sol, err := r.Solve(context.Background(), r.Dealer().Seeded(seed(7)).Deal())
	is.NoErr(err)
	is.True(sol != nil)
}

func TestStartSolveRuns(t *testing.T) {
	is := is.New(t)
	out := filepath.Join(t.TempDir(), "solves.csv")
	err := StartSolveRuns(context.Background(), config.DefaultConfig(), BatchOptions{
		Threads:        2,
		OutputFilename: out,
		Seeds:          [][32]byte{seed(1), seed(2), seed(3), seed(4)},
		RackSize:       6,
	})
	is.NoErr(err)
	is.Equal(SolveCounter.Value(), int64(4))
	is.Equal(IsSolving.Value(), int64(0))

	f, err := os.Open(out)
	is.NoErr(err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	is.NoErr(err)
	is.Equal(len(rows), 5)
	is.Equal(rows[0], LogHeader)
	ids := lo.Map(rows[1:], func(r []string, _ int) string { return r[0] })
	is.True(lo.Every(ids, []string{"1", "2", "3", "4"}))

	summary, err := AnalyzeLogFile(out)
	is.NoErr(err)
	is.True(strings.HasPrefix(summary, "Positions: 4\n"))
}

func TestStartSolveRunsCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := StartSolveRuns(ctx, config.DefaultConfig(), BatchOptions{
		NumPositions:   100,
		Threads:        2,
		OutputFilename: filepath.Join(t.TempDir(), "solves.csv"),
	})
	is.NoErr(err)
	is.True(SolveCounter.Value() < 100)
}

func TestAnalyze(t *testing.T) {
	is := is.New(t)
	log := strings.Join([]string{
		strings.Join(LogHeader, ","),
		"1,R1,R2,R3,-,ok,0,-,R1,R2,R3,40,3,100",
		"2,-,R5,B5,O5,ok,15,R5,B5,O5,R5,B5,O5,60,2,300",
		"3,-,R7,timeout,,,,,,",
	}, "\n")
	_, err := analyze(strings.NewReader(log))
	// Unquoted commas in the tile lists make the rows too wide.
	is.True(err != nil)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(LogHeader)
	w.Write([]string{"1", "R1,R2,R3", "-", "ok", "0", "-", "R1,R2,R3", "40", "3", "100"})
	w.Write([]string{"2", "-", "R5,B5,O5", "ok", "15", "R5,B5,O5", "R5,B5,O5", "60", "2", "300"})
	w.Write([]string{"3", "-", "R7", "timeout", "", "", "", "", "", ""})
	w.Flush()
	summary, err := analyze(&buf)
	is.NoErr(err)
	is.True(strings.Contains(summary, "Positions: 3\n"))
	is.True(strings.Contains(summary, "Timed out: 1 "))
	is.True(strings.Contains(summary, "No play: 1 "))
	is.True(strings.Contains(summary, "Mean Score: 7.500"))
	is.True(strings.Contains(summary, "Mean States: 50.0"))
}

func TestSeedsRoundTrip(t *testing.T) {
	is := is.New(t)
	seeds := GenerateSeeds(3)
	var buf bytes.Buffer
	is.NoErr(WriteSeeds(&buf, seeds))
	read, err := ReadSeeds(&buf)
	is.NoErr(err)
	is.Equal(read, seeds)

	path := filepath.Join(t.TempDir(), "seeds.txt")
	is.NoErr(SaveSeeds(seeds, path))
	loaded, err := LoadSeeds(path)
	is.NoErr(err)
	is.Equal(loaded, seeds)

	_, err = ReadSeeds(strings.NewReader("c2hvcnQ\n"))
	is.True(err != nil)
}
