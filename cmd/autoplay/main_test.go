package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/rummy/automatic"
	"github.com/domino14/rummy/config"
)

func TestRun(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	dir := t.TempDir()
	seeds := filepath.Join(dir, "seeds.txt")
	out := filepath.Join(dir, "out.csv")

	is.NoErr(run(context.Background(), cfg, []string{"seeds", "3", seeds}))
	loaded, err := automatic.LoadSeeds(seeds)
	is.NoErr(err)
	is.Equal(len(loaded), 3)

	is.NoErr(run(context.Background(), cfg, []string{"replay", seeds, out}))
	_, err = os.Stat(out)
	is.NoErr(err)
	is.Equal(automatic.SolveCounter.Value(), int64(3))
	is.NoErr(run(context.Background(), cfg, []string{"analyze", out}))
}

func TestRunUsage(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	is.Equal(run(context.Background(), cfg, nil), errUsage)
	is.Equal(run(context.Background(), cfg, []string{"solve", "10"}), errUsage)
	is.Equal(run(context.Background(), cfg, []string{"frobnicate", "x"}), errUsage)
	is.True(run(context.Background(), cfg, []string{"solve", "ten", "out.csv"}) != nil)
}
