// Command autoplay solves random positions in bulk and summarizes the
// results.
//
//	autoplay solve <n> <out.csv>         deal and solve n random positions
//	autoplay seeds <n> <seeds.txt>       write n seeds for repeatable deals
//	autoplay replay <seeds.txt> <out.csv> deal one position per seed
//	autoplay analyze <out.csv>           summarize a log
//
// Settings such as --threads and --solve-timeout are read as usual.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/rummy/automatic"
	"github.com/domino14/rummy/config"
)

var errUsage = errors.New("usage: autoplay solve <n> <out.csv> | seeds <n> <seeds.txt> | " +
	"replay <seeds.txt> <out.csv> | analyze <out.csv>")

func run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	switch args[0] {
	case "solve":
		if len(args) != 3 {
			return errUsage
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		return solve(ctx, cfg, automatic.BatchOptions{NumPositions: n, OutputFilename: args[2]})
	case "seeds":
		if len(args) != 3 {
			return errUsage
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		return automatic.SaveSeeds(automatic.GenerateSeeds(n), args[2])
	case "replay":
		if len(args) != 3 {
			return errUsage
		}
		seeds, err := automatic.LoadSeeds(args[1])
		if err != nil {
			return err
		}
		return solve(ctx, cfg, automatic.BatchOptions{Seeds: seeds, OutputFilename: args[2]})
	case "analyze":
		summary, err := automatic.AnalyzeLogFile(args[1])
		if err != nil {
			return err
		}
		fmt.Print(summary)
		return nil
	}
	return errUsage
}

func solve(ctx context.Context, cfg *config.Config, opts automatic.BatchOptions) error {
	start := time.Now()
	if err := automatic.StartSolveRuns(ctx, cfg, opts); err != nil {
		return err
	}
	log.Info().Int64("solved", automatic.SolveCounter.Value()).
		Dur("elapsed", time.Since(start)).Str("output", opts.OutputFilename).Msg("done")
	summary, err := automatic.AnalyzeLogFile(opts.OutputFilename)
	if err != nil {
		return err
	}
	fmt.Print(summary)
	return nil
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "could not load config:", err)
		os.Exit(1)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, cfg.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
