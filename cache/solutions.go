package cache

import (
	"context"
	"math"
	"sync"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/rummy/config"
	"github.com/domino14/rummy/position"
	"github.com/domino14/rummy/solver"
	"github.com/domino14/rummy/tiles"
	"github.com/domino14/rummy/zobrist"
)

// entrySize is a rough estimate of the memory held by one cached solution.
const entrySize = 1024

const minEntries = 1 << 10

type entry struct {
	// key is the stable position key, checked on lookup since the map is
	// indexed by zobrist hash alone.
	key uint64
	sol *solver.Solution
}

// SolutionCache remembers solutions by position. The in-memory part is
// bounded and evicts the oldest entries first; an optional Store keeps
// every solution across restarts.
type SolutionCache struct {
	sync.RWMutex
	zobrist    *zobrist.Zobrist
	entries    map[uint64]entry
	order      []uint64
	next       int
	maxEntries int
	store      *Store

	lookups atomic.Uint64
	hits    atomic.Uint64
}

// NewSolutionCache sizes the in-memory cache to the given fraction of
// system memory. store may be nil.
func NewSolutionCache(fractionOfMemory float64, store *Store) *SolutionCache {
	totalMem := memory.TotalMemory()
	desired := fractionOfMemory * float64(totalMem) / entrySize
	n := minEntries
	if desired > minEntries && !math.IsInf(desired, 0) {
		n = int(desired)
	}
	c := &SolutionCache{
		zobrist:    &zobrist.Zobrist{},
		entries:    make(map[uint64]entry),
		order:      make([]uint64, 0, min(n, 1<<16)),
		maxEntries: n,
		store:      store,
	}
	c.zobrist.Initialize()
	log.Info().Int("max-entries", n).Float64("desired-entries", desired).
		Uint64("total-system-memory-bytes", totalMem).
		Bool("persistent", store != nil).
		Msg("solution-cache-size")
	return c
}

const solutionsKey = "solutions"

// Solutions returns the process-wide solution cache, creating it (and its
// store, if configured) on first use.
func Solutions(cfg *config.Config) (*SolutionCache, error) {
	obj, err := Load(cfg, solutionsKey, func(cfg *config.Config, _ string) (any, error) {
		var store *Store
		if path := cfg.GetString(config.ConfigCacheDBPath); path != "" {
			var err error
			store, err = OpenStore(path)
			if err != nil {
				return nil, err
			}
		}
		return NewSolutionCache(cfg.GetFloat64(config.ConfigCacheMemoryFraction), store), nil
	})
	if err != nil {
		return nil, err
	}
	return obj.(*SolutionCache), nil
}

func (c *SolutionCache) hash(p *position.Position) uint64 {
	var board tiles.Counts
	for _, m := range p.Board {
		for _, t := range m.Tiles {
			board.Add(t)
		}
	}
	rack := tiles.CountsFrom(p.Rack)
	return c.zobrist.Hash(&board, &rack)
}

// Get returns the cached solution for the position, if any. Positions that
// fail validation are never cached.
func (c *SolutionCache) Get(ctx context.Context, p *position.Position) (*solver.Solution, bool) {
	c.lookups.Add(1)
	if solver.Validate(p.Board, p.Rack) != nil {
		return nil, false
	}
	zkey := c.hash(p)
	key := p.Key()
	c.RLock()
	e, ok := c.entries[zkey]
	c.RUnlock()
	if ok && e.key == key {
		c.hits.Add(1)
		return e.sol, true
	}
	if c.store == nil {
		return nil, false
	}
	sol, err := c.store.Get(ctx, key)
	if err != nil {
		log.Err(err).Uint64("key", key).Msg("store-get-error")
		return nil, false
	}
	if sol == nil {
		return nil, false
	}
	c.hits.Add(1)
	c.putMemory(zkey, key, sol)
	return sol, true
}

// Put caches a solution.
func (c *SolutionCache) Put(ctx context.Context, p *position.Position, sol *solver.Solution) error {
	if err := solver.Validate(p.Board, p.Rack); err != nil {
		return err
	}
	key := p.Key()
	c.putMemory(c.hash(p), key, sol)
	if c.store != nil {
		return c.store.Put(ctx, key, p.String(), sol)
	}
	return nil
}

func (c *SolutionCache) putMemory(zkey, key uint64, sol *solver.Solution) {
	c.Lock()
	defer c.Unlock()
	if _, ok := c.entries[zkey]; !ok {
		if len(c.order) < c.maxEntries {
			c.order = append(c.order, zkey)
		} else {
			// Evict the oldest.
			delete(c.entries, c.order[c.next])
			c.order[c.next] = zkey
			c.next = (c.next + 1) % c.maxEntries
		}
	}
	c.entries[zkey] = entry{key: key, sol: sol}
}

// Solve returns the cached solution for the position, or solves it and
// caches the result.
func (c *SolutionCache) Solve(ctx context.Context, p *position.Position) (*solver.Solution, error) {
	if sol, ok := c.Get(ctx, p); ok {
		return sol, nil
	}
	sol, err := solver.SolveContext(ctx, p.Board, p.Rack)
	if err != nil {
		return nil, err
	}
	if err := c.Put(ctx, p, sol); err != nil {
		log.Err(err).Msg("cache-put-error")
	}
	return sol, nil
}

// Len returns the number of solutions held in memory.
func (c *SolutionCache) Len() int {
	c.RLock()
	defer c.RUnlock()
	return len(c.entries)
}

// Stats returns the number of lookups and hits so far.
func (c *SolutionCache) Stats() (lookups, hits uint64) {
	return c.lookups.Load(), c.hits.Load()
}

// Close closes the store, if there is one.
func (c *SolutionCache) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}
