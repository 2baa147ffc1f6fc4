package automatic

// Bulk solving of dealt positions, for benchmarks and score distributions.

import (
	"context"
	"encoding/csv"
	"errors"
	"expvar"
	"os"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/rummy/cache"
	"github.com/domino14/rummy/config"
)

var (
	SolveCounter *expvar.Int
	IsSolving    *expvar.Int
)

func init() {
	SolveCounter = expvar.NewInt("solveCounter")
	IsSolving = expvar.NewInt("isSolving")
}

// BatchOptions control a batch of solves.
type BatchOptions struct {
	NumPositions   int
	Threads        int
	OutputFilename string
	// Seeds, if given, make the deals reproducible: one position is dealt
	// from each seed and NumPositions is ignored.
	Seeds      [][32]byte
	BoardMelds int
	RackSize   int
	// UseCache routes solves through the process-wide solution cache.
	UseCache bool
}

type job struct {
	id   int
	seed *[32]byte
}

// StartSolveRuns deals and solves positions on several goroutines and
// writes one CSV row per position to the output file. It blocks until every
// position is solved or ctx is cancelled; cancellation is not an error.
func StartSolveRuns(ctx context.Context, cfg *config.Config, opts BatchOptions) error {
	if IsSolving.Value() > 0 {
		return errors.New("positions are already being solved, please wait till complete")
	}
	threads := opts.Threads
	if threads <= 0 {
		threads = cfg.GetInt(config.ConfigThreads)
	}
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	numPositions := opts.NumPositions
	if len(opts.Seeds) > 0 {
		numPositions = len(opts.Seeds)
	}

	var solutions *cache.SolutionCache
	if opts.UseCache {
		var err error
		solutions, err = cache.Solutions(cfg)
		if err != nil {
			return err
		}
	}

	logfile, err := os.Create(opts.OutputFilename)
	if err != nil {
		return err
	}
	log.Debug().Int("positions", numPositions).Int("threads", threads).Msg("starting-solve-runs")

	SolveCounter.Set(0)
	jobs := make(chan job, 100)
	logChan := make(chan []string, 100)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < threads; i++ {
		g.Go(func() error {
			r := NewRunner(logChan, cfg, solutions)
			if opts.BoardMelds > 0 {
				r.dealer.BoardMelds = opts.BoardMelds
			}
			if opts.RackSize > 0 {
				r.dealer.RackSize = opts.RackSize
			}
			IsSolving.Add(1)
			defer IsSolving.Add(-1)
			for j := range jobs {
				if err := r.solveOne(gctx, j); err != nil {
					return err
				}
				SolveCounter.Add(1)
			}
			return nil
		})
	}

	go func() {
		defer close(jobs)
		for i := 0; i < numPositions; i++ {
			j := job{id: i + 1}
			if len(opts.Seeds) > 0 {
				j.seed = &opts.Seeds[i]
			}
			select {
			case jobs <- j:
			case <-gctx.Done():
				log.Info().Msg("got-stop-signal")
				return
			}
			if (i+1)%1000 == 0 {
				log.Info().Int("queued", i+1).Msg("queued-jobs")
			}
		}
		log.Info().Msg("finished-queueing-jobs")
	}()

	writerDone := make(chan error, 1)
	go func() {
		w := csv.NewWriter(logfile)
		w.Write(LogHeader)
		for rec := range logChan {
			w.Write(rec)
		}
		w.Flush()
		writerDone <- errors.Join(w.Error(), logfile.Close())
	}()

	err = g.Wait()
	close(logChan)
	werr := <-writerDone
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		log.Info().Int64("solved", SolveCounter.Value()).Msg("solve-runs-cancelled")
		err = nil
	}
	log.Info().Int64("solved", SolveCounter.Value()).Msg("all-solves-finished")
	return errors.Join(err, werr)
}
