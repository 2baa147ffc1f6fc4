package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/rummy/config"
	"github.com/domino14/rummy/position"
	"github.com/domino14/rummy/solver"
	"github.com/domino14/rummy/worker"
)

var cfg *config.Config
var nc *nats.Conn

const HardTimeLimit = 60 * time.Second

func HandleRequest(ctx context.Context, evt worker.LambdaEvent) (*worker.SolveResponse, error) {
	logger := log.With().Str("id", evt.ID).Str("position", evt.Position).Logger()

	p, err := position.Parse(evt.Position)
	if err != nil {
		return nil, err
	}
	timeout := HardTimeLimit
	if t := cfg.GetDuration(config.ConfigSolveTimeout); t > 0 && t < timeout {
		timeout = t
	}
	if t := time.Duration(evt.TimeoutMs) * time.Millisecond; t > 0 && t < timeout {
		timeout = t
	}
	ctx, cancel := solver.WithTimeLimit(ctx, timeout)
	defer cancel()

	sol, err := solver.SolveContext(ctx, p.Board, p.Rack)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("score", sol.Score).Int("states", sol.Stats.States).
		Dur("elapsed", sol.Stats.Elapsed).Msg("solved")
	resp := &worker.SolveResponse{ID: evt.ID, Position: evt.Position, Solution: sol}

	if evt.ReplyChannel != "" && nc != nil {
		data, err := json.Marshal(resp)
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("solve-success-sending-via-nats")
		err = retry.Do(
			func() error {
				// Only the acknowledgement matters, not its contents.
				_, err := nc.Request(evt.ReplyChannel, data, 3*time.Second)
				return err
			},
			retry.Attempts(5),
			retry.Context(ctx),
			retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
				logger.Err(err).Uint("n", n).Msg("did-not-receive-ack-try-again")
				return retry.BackOffDelay(n, err, config)
			}),
		)
		if err != nil {
			logger.Err(err).Msg("reply-failed")
		}
	}
	return resp, nil
}

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg = &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "could not load config:", err)
		os.Exit(1)
	}
	cfg.AdjustRelativePaths(exPath)
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Info().Interface("config", cfg.SanitizedSettings()).Msg("loaded-config")

	nc, err = nats.Connect(cfg.GetString(config.ConfigNatsURL))
	if err != nil {
		log.Fatal().AnErr("natsConnectErr", err).Msg(":(")
	}

	lambda.Start(HandleRequest)
}
