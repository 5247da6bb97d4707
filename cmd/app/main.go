package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"treasury_go/internal/app"
)

func main() {
	configPath := flag.String("config", app.DefaultConfigPath, "path to the YAML configuration")
	flag.Parse()

	os.Exit(run(*configPath))
}

// run returns the process exit code. Deferred closes finish before main exits.
func run(configPath string) int {
	// 1. System Bootstrapping
	bootstrap := app.NewBootstrap(configPath)
	defer bootstrap.Close()
	if err := bootstrap.Initialize(); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		return 1
	}

	// 2. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Wire services
	pipeline, err := bootstrap.Pipeline()
	if err != nil {
		slog.Error("❌ Pipeline setup failed", slog.Any("error", err))
		return 1
	}
	defer pipeline.Close()

	slog.InfoContext(ctx, "✨ Treasury pipeline running. Press Ctrl+C to stop.")

	// 4. Drain every feed through the sequencer
	if err := pipeline.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Info("👋 Interrupted, shutting down gracefully...")
			return 0
		}
		slog.Error("❌ Pipeline failed", slog.Any("error", err))
		return 1
	}

	pipeline.Report(os.Stdout)
	slog.Info("👋 All feeds processed, shutting down")
	return 0
}
