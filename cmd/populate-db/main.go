package main

import (
	"context"
	"flag"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"octofit-backend/config"
	"octofit-backend/log"
	"octofit-backend/seed"
	"octofit-backend/store"
)

func main() {
	timeout := flag.Duration("timeout", time.Minute, "Deadline for the whole run")
	flag.Parse()

	cfg := config.Load()
	if err := log.Configure(cfg.LogDevelopment, cfg.LogLevel); err != nil {
		log.EnsureLogger()
	}

	code := run(cfg, *timeout, os.Stdout)
	_ = log.Logger.Sync()
	os.Exit(code)
}

// run seeds the configured store and returns the process exit code.
func run(cfg config.Config, timeout time.Duration, out io.Writer) int {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		log.Logger.Error("failed connecting to database", zap.Error(err))
		return 1
	}
	defer closeStore(context.Background())

	if err := seed.Populate(ctx, s, out); err != nil {
		log.Logger.Error("failed to populate database", zap.Error(err))
		return 1
	}

	return 0
}
