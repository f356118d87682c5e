package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mentorsurvey/internal/app"
	"mentorsurvey/internal/config"
	"mentorsurvey/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	log.Info("started",
		"durable_store", cfg.DurableStore,
		"session_store", cfg.SessionStore,
		"roster_source", cfg.RosterSource,
		"object_store", cfg.ObjectStore)

	if err := a.Run(ctx); err != nil {
		return err
	}
	log.Info("server exited")
	return nil
}
