package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/rummy/config"
	"github.com/domino14/rummy/position"
)

func mustPosition(t *testing.T, s string) *position.Position {
	p, err := position.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSolutionCache(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	c := NewSolutionCache(0, nil)
	p := mustPosition(t, "R4,R5,R6 R7")

	_, ok := c.Get(ctx, p)
	is.True(!ok)
	sol, err := c.Solve(ctx, p)
	is.NoErr(err)
	is.Equal(sol.Score, 7)
	is.Equal(c.Len(), 1)

	// Same tiles, different arrangement and order.
	again, ok := c.Get(ctx, mustPosition(t, "R6,R5,R4 R7 id other;"))
	is.True(ok)
	is.Equal(again, sol)
	lookups, hits := c.Stats()
	is.Equal(lookups, uint64(3))
	is.Equal(hits, uint64(1))
}

func TestSolutionCacheRejectsInvalid(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	c := NewSolutionCache(0, nil)
	p := mustPosition(t, "- J,J,J")
	_, ok := c.Get(ctx, p)
	is.True(!ok)
	_, err := c.Solve(ctx, p)
	is.True(err != nil)
	is.Equal(c.Len(), 0)
}

func TestEviction(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	c := NewSolutionCache(0, nil)
	c.maxEntries = 2
	ps := []*position.Position{
		mustPosition(t, "- R1,R2,R3"),
		mustPosition(t, "- B1,B2,B3"),
		mustPosition(t, "- O1,O2,O3"),
	}
	for _, p := range ps {
		_, err := c.Solve(ctx, p)
		is.NoErr(err)
	}
	is.Equal(c.Len(), 2)
	_, ok := c.Get(ctx, ps[0])
	is.True(!ok)
	_, ok = c.Get(ctx, ps[2])
	is.True(ok)
}

func TestStore(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "solutions.db")
	store, err := OpenStore(path)
	is.NoErr(err)
	c := NewSolutionCache(0, store)
	p := mustPosition(t, "R5,B5,O5/R6,R7,R8 R4,K5")
	sol, err := c.Solve(ctx, p)
	is.NoErr(err)
	is.Equal(sol.Score, 9)
	is.NoErr(c.Close())

	// A fresh cache over the same file finds it without solving.
	store, err = OpenStore(path)
	is.NoErr(err)
	defer store.Close()
	n, err := store.Count(ctx)
	is.NoErr(err)
	is.Equal(n, 1)
	c = NewSolutionCache(0, store)
	got, ok := c.Get(ctx, p)
	is.True(ok)
	is.Equal(got.Score, 9)
	is.Equal(position.BoardString(got.Melds), position.BoardString(sol.Melds))
	is.Equal(len(got.Played), 2)

	missing, err := store.Get(ctx, 12345)
	is.NoErr(err)
	is.True(missing == nil)
}

func TestSolutionsSingleton(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	c1, err := Solutions(cfg)
	is.NoErr(err)
	c2, err := Solutions(cfg)
	is.NoErr(err)
	is.True(c1 == c2)

	sol, err := c1.Solve(context.Background(), mustPosition(t, "- R5,B5,O5,K5"))
	is.NoErr(err)
	is.Equal(sol.Score, 20)
}
