package worker

import (
	"os"
	"time"

	"github.com/domino14/rummy/config"
)

// WorkerConfig holds configuration for the solve worker.
type WorkerConfig struct {
	NatsURL string
	// Subject solve requests arrive on.
	Subject string
	// Queue group shared by all workers, so each request is solved once.
	Queue string

	// Time limit for one solve, unless the request asks for less.
	SolveTimeout time.Duration

	// How often to log throughput while running.
	StatsInterval time.Duration

	RummyConfig *config.Config
}

// NewWorkerConfig reads the worker settings from cfg. The stats interval
// comes from RUMMY_WORKER_STATS_INTERVAL.
func NewWorkerConfig(cfg *config.Config) *WorkerConfig {
	return &WorkerConfig{
		NatsURL:       cfg.GetString(config.ConfigNatsURL),
		Subject:       cfg.GetString(config.ConfigNatsSubject),
		Queue:         cfg.GetString(config.ConfigNatsQueue),
		SolveTimeout:  cfg.GetDuration(config.ConfigSolveTimeout),
		StatsInterval: getEnvDuration("RUMMY_WORKER_STATS_INTERVAL", time.Minute),
		RummyConfig:   cfg,
	}
}

// getEnvDuration gets a positive duration from an environment variable or
// returns a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}
