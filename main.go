package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"octofit-backend/config"
	"octofit-backend/events"
	"octofit-backend/log"
	"octofit-backend/server"
	"octofit-backend/store"
)

func main() {
	flag.Parse()

	cfg := config.Load()
	if err := log.Configure(cfg.LogDevelopment, cfg.LogLevel); err != nil {
		log.EnsureLogger()
		log.Logger.Warn("invalid log configuration, using development logger", zap.Error(err))
	}
	defer log.Logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		log.Logger.Fatal("failed connecting to database", zap.Error(err))
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.RabbitMQURL != "" {
		p, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			log.Logger.Fatal("failed connecting to message queue", zap.Error(err))
		}
		publisher = p
	}

	app := server.New(server.Options{
		BaseURL:     cfg.BaseURL,
		CORSOrigins: cfg.CORSOrigins,
		Store:       s,
		Events:      publisher,
	})

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		log.Logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Logger.Error("failed to shut down server", zap.Error(err))
		}
	}()

	log.Logger.Info(fmt.Sprintf("Listening on port: %s", cfg.Port), zap.String("store", cfg.Store))
	if err := app.Listen(cfg.ListenAddr()); err != nil {
		log.Logger.Fatal("couldn't serve http", zap.Error(err))
	}

	if err := publisher.Close(); err != nil {
		log.Logger.Warn("failed to close event publisher", zap.Error(err))
	}
	if err := closeStore(context.Background()); err != nil {
		log.Logger.Warn("failed to disconnect from database", zap.Error(err))
	}
}
