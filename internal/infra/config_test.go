package infra

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treasury_go/internal/domain"
	"treasury_go/pkg/price"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Len(t, cfg.Products, 7)
	assert.Equal(t, []string{"TRSY1", "TRSY2", "TRSY3"}, cfg.Booking.Books)
	assert.True(t, cfg.Algo.Execution.Threshold.Equal(decimal.RequireFromString("0.0078125")))
	assert.Equal(t, price.New(99, 0, 0), cfg.Price.Min)
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: test-desk
logging:
  level: debug
algo:
  execution:
    threshold: "0.015625"
    symmetric_cross_check: true
  streaming:
    visible_quantity: 500000
inquiry:
  quote_price: "99-16+"
booking:
  books: [A, B]
gui:
  strict_interval: true
price:
  min: "98-000"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "test-desk", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Algo.Execution.Threshold.Equal(decimal.RequireFromString("0.015625")))
	assert.True(t, cfg.Algo.Execution.SymmetricCrossCheck)
	assert.Equal(t, int64(500_000), cfg.Algo.Streaming.VisibleQuantity)
	assert.Equal(t, price.New(99, 16, 4), cfg.Inquiry.QuotePrice)
	assert.Equal(t, []string{"A", "B"}, cfg.Booking.Books)
	assert.True(t, cfg.GUI.StrictInterval)
	assert.Equal(t, price.Bounds{Min: price.New(98, 0, 0), Max: price.New(101, 0, 0)}, cfg.PriceBounds())

	// Untouched sections keep defaults.
	assert.Len(t, cfg.Products, 7)
	assert.Equal(t, int64(300), cfg.GUI.IntervalMS)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	path := writeConfig(t, "app:\n  name: env\n")
	t.Setenv("TREASURY_LOG_LEVEL", "error")
	t.Setenv("TREASURY_OUTPUT_DIR", "/tmp/out")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "/tmp/out", cfg.Output.Dir)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.Is(err, domain.ErrConfigNotFound))
}

func TestLoadConfig_BadPrice(t *testing.T) {
	path := writeConfig(t, "inquiry:\n  quote_price: \"100.5\"\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"inverted bounds", func(c *Config) { c.Price.Min, c.Price.Max = c.Price.Max, c.Price.Min }, "price"},
		{"no books", func(c *Config) { c.Booking.Books = nil }, "booking.books"},
		{"no venues", func(c *Config) { c.Algo.Execution.Venues = nil }, "algo.execution.venues"},
		{"zero coefficient", func(c *Config) { c.Risk.Coefficient = decimal.Zero }, "risk.coefficient"},
		{"bad maturity", func(c *Config) { c.Products[0].Maturity = "2024-11-30" }, "products.maturity"},
		{"duplicate product", func(c *Config) { c.Products[1].ID = c.Products[0].ID }, "products.id"},
		{"unknown sector member", func(c *Config) {
			c.Risk.Sectors = append(c.Risk.Sectors, domain.Sector{Name: "X", ProductIDs: []string{"NOPE"}})
		}, "risk.sectors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			var ce *domain.ConfigError
			require.True(t, errors.As(err, &ce), "expected ConfigError, got %v", err)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestLoadConfig_ShippedFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "config.yaml"))
	require.NoError(t, err)

	defaults := DefaultConfig()
	require.Len(t, cfg.Products, len(defaults.Products))
	for i, want := range defaults.Products {
		got := cfg.Products[i]
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Maturity, got.Maturity)
		assert.True(t, want.Coupon.Equal(got.Coupon), "coupon of %s", want.ID)
	}
	assert.Equal(t, defaults.Risk.Sectors, cfg.Risk.Sectors)
	assert.True(t, cfg.Risk.Coefficient.Equal(defaults.Risk.Coefficient))
	assert.Equal(t, price.New(100, 0, 0), cfg.Inquiry.QuotePrice)
}

func TestProductConfig_Bond(t *testing.T) {
	bond, err := ProductConfig{ID: "912810TL2", Ticker: "T", Coupon: decimal.RequireFromString("4"), Maturity: "20521115"}.Bond()
	require.NoError(t, err)
	assert.Equal(t, 2052, bond.Maturity.Year())

	_, err = ProductConfig{ID: "X", Maturity: "2052-11-15"}.Bond()
	assert.Error(t, err)
}
