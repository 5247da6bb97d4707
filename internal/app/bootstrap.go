package app

import (
	"log/slog"

	"treasury_go/internal/infra"
	"treasury_go/internal/infra/storage"
)

// DefaultConfigPath is used when no -config flag is given.
const DefaultConfigPath = "configs/config.yaml"

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	ConfigPath string
	Config     *infra.Config
	Storage    *storage.Storage
	Metrics    *infra.Metrics
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap(configPath string) *Bootstrap {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	return &Bootstrap{ConfigPath: configPath}
}

// Initialize performs core system initialization (config, logger, storage)
func (b *Bootstrap) Initialize() error {
	slog.Info("🚀 Bootstrapping Treasury Go...")

	// 1. Load Config
	cfg, err := infra.LoadConfig(b.ConfigPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Initialize Storage (in-memory index)
	if cfg.Storage.Enabled {
		st, err := storage.NewStorage(cfg.Storage.DSN)
		if err != nil {
			return err
		}
		b.Storage = st
		slog.Info("✅ Storage initialized", slog.String("dsn", cfg.Storage.DSN))
	}

	b.Metrics = infra.NewMetrics()
	return nil
}

// Pipeline wires every service from the loaded configuration.
func (b *Bootstrap) Pipeline() (*Pipeline, error) {
	return NewPipeline(b.Config, b.Storage, b.Metrics)
}

// Close releases storage.
func (b *Bootstrap) Close() {
	if b.Storage == nil {
		return
	}
	if err := b.Storage.Close(); err != nil {
		slog.Error("Failed to close storage", slog.Any("error", err))
	}
}
