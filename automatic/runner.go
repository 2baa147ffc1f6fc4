// Package automatic deals random positions and solves them in bulk, for
// benchmarking the solver and collecting score distributions.
package automatic

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/domino14/rummy/cache"
	"github.com/domino14/rummy/config"
	"github.com/domino14/rummy/position"
	"github.com/domino14/rummy/solver"
	"github.com/domino14/rummy/tiles"
)

const (
	StatusOK      = "ok"
	StatusTimeout = "timeout"
)

// LogHeader is the header row of the CSV log written by StartSolveRuns.
var LogHeader = []string{"id", "board", "rack", "status", "score", "played",
	"melds", "states", "memohits", "elapsedus"}

// Runner deals and solves positions, sending one CSV record per position
// down its log channel.
type Runner struct {
	config    *config.Config
	dealer    *Dealer
	solutions *cache.SolutionCache
	logchan   chan []string
}

// NewRunner returns a runner. logchan and solutions may be nil.
func NewRunner(logchan chan []string, cfg *config.Config, solutions *cache.SolutionCache) *Runner {
	return &Runner{
		config:    cfg,
		dealer:    NewDealer(nil),
		solutions: solutions,
		logchan:   logchan,
	}
}

// Dealer returns the runner's dealer, so its sizes can be changed.
func (r *Runner) Dealer() *Dealer {
	return r.dealer
}

// Solve solves a single position within the configured timeout, if any. A
// timeout is not an error: the returned solution is nil.
func (r *Runner) Solve(ctx context.Context, p *position.Position) (*solver.Solution, error) {
	ctx, cancel := solver.WithTimeLimit(ctx, r.config.GetDuration(config.ConfigSolveTimeout))
	defer cancel()
	var sol *solver.Solution
	var err error
	if r.solutions != nil {
		sol, err = r.solutions.Solve(ctx, p)
	} else {
		sol, err = solver.SolveContext(ctx, p.Board, p.Rack)
	}
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil {
		log.Warn().Str("position", p.String()).Msg("solve-timed-out")
		return nil, nil
	}
	return sol, err
}

// solveOne deals the job's position, solves it and logs the result.
func (r *Runner) solveOne(ctx context.Context, j job) error {
	dealer := r.dealer
	if j.seed != nil {
		dealer = dealer.Seeded(*j.seed)
	}
	p := dealer.Deal()
	p.Opcodes[position.OpID] = strconv.Itoa(j.id)
	sol, err := r.Solve(ctx, p)
	if err != nil {
		return err
	}
	if r.logchan != nil {
		r.logchan <- record(p, sol)
	}
	return nil
}

func record(p *position.Position, sol *solver.Solution) []string {
	rec := []string{p.ID(), position.BoardString(p.Board), tiles.ListString(p.Rack)}
	if sol == nil {
		return append(rec, StatusTimeout, "", "", "", "", "", "")
	}
	return append(rec, StatusOK,
		strconv.Itoa(sol.Score),
		tiles.ListString(sol.Played),
		position.BoardString(sol.Melds),
		strconv.Itoa(sol.Stats.States),
		strconv.Itoa(sol.Stats.MemoHits),
		strconv.FormatInt(sol.Stats.Elapsed.Microseconds(), 10))
}
