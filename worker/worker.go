package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/rummy/cache"
	"github.com/domino14/rummy/position"
	"github.com/domino14/rummy/solver"
)

// SolveWorker answers solve requests arriving over NATS.
type SolveWorker struct {
	config    *WorkerConfig
	solutions *cache.SolutionCache

	solved atomic.Int64
	failed atomic.Int64
}

// NewSolveWorker creates a new worker. Solutions go through the given
// cache.
func NewSolveWorker(cfg *WorkerConfig, solutions *cache.SolutionCache) *SolveWorker {
	return &SolveWorker{config: cfg, solutions: solutions}
}

// Run connects to NATS and serves requests until ctx is done.
func (w *SolveWorker) Run(ctx context.Context) error {
	log.Info().
		Str("nats-url", w.config.NatsURL).
		Str("subject", w.config.Subject).
		Str("queue", w.config.Queue).
		Dur("solve-timeout", w.config.SolveTimeout).
		Msg("starting-solve-worker")

	nc, err := nats.Connect(w.config.NatsURL, nats.Name("rummy-solver"))
	if err != nil {
		return fmt.Errorf("failed to connect to nats: %w", err)
	}
	defer nc.Close()

	sub, err := nc.QueueSubscribe(w.config.Subject, w.config.Queue, func(m *nats.Msg) {
		if err := m.Respond(w.Handle(ctx, m.Data)); err != nil {
			log.Err(err).Msg("failed-to-respond")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	statsTicker := time.NewTicker(w.config.StatsInterval)
	defer statsTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker-shutting-down")
			if err := sub.Drain(); err != nil {
				log.Err(err).Msg("drain-failed")
			}
			return ctx.Err()

		case <-statsTicker.C:
			lookups, hits := w.solutions.Stats()
			log.Info().
				Int64("solved", w.solved.Load()).
				Int64("failed", w.failed.Load()).
				Uint64("cache-lookups", lookups).
				Uint64("cache-hits", hits).
				Int("cached", w.solutions.Len()).
				Msg("worker-stats")
		}
	}
}

// Handle decodes a request, solves it and returns the encoded response.
// Errors are reported in the response rather than returned.
func (w *SolveWorker) Handle(ctx context.Context, data []byte) []byte {
	resp := w.handle(ctx, data)
	if resp.Error != "" {
		w.failed.Add(1)
	} else {
		w.solved.Add(1)
	}
	out, err := json.Marshal(resp)
	if err != nil {
		log.Err(err).Msg("failed-to-marshal-response")
		out, _ = json.Marshal(&SolveResponse{ID: resp.ID, Position: resp.Position, Error: err.Error()})
	}
	return out
}

func (w *SolveWorker) handle(ctx context.Context, data []byte) *SolveResponse {
	var req SolveRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return &SolveResponse{Error: "bad request: " + err.Error()}
	}
	resp := &SolveResponse{ID: req.ID, Position: req.Position}
	logger := log.With().Str("id", req.ID).Str("position", req.Position).Logger()

	p, err := position.Parse(req.Position)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	timeout := w.config.SolveTimeout
	if t := time.Duration(req.TimeoutMs) * time.Millisecond; t > 0 && (timeout <= 0 || t < timeout) {
		timeout = t
	}
	ctx, cancel := solver.WithTimeLimit(ctx, timeout)
	defer cancel()

	start := time.Now()
	sol, err := w.solutions.Solve(ctx, p)
	if err != nil {
		logger.Err(err).Msg("solve-failed")
		resp.Error = err.Error()
		return resp
	}
	logger.Debug().Int("score", sol.Score).Dur("elapsed", time.Since(start)).Msg("solved")
	resp.Solution = sol
	return resp
}
