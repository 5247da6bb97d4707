package infra

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"treasury_go/internal/domain"
	"treasury_go/pkg/price"
)

// ProductConfig is one bond of the universe.
type ProductConfig struct {
	ID       string          `yaml:"id"`
	Ticker   string          `yaml:"ticker"`
	Coupon   decimal.Decimal `yaml:"coupon"`
	Maturity string          `yaml:"maturity"` // yyyymmdd
}

// Bond converts the entry into a product.
func (p ProductConfig) Bond() (domain.Product, error) {
	maturity, err := time.Parse(domain.MaturityLayout, p.Maturity)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %s maturity: %w", p.ID, err)
	}
	return domain.NewBond(p.ID, p.Ticker, p.Coupon, maturity), nil
}

// Config holds every setting of the pipeline.
// LoadConfig starts from DefaultConfig, applies the YAML file, then environment overrides.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Logging struct {
		Level string `yaml:"level"`
		Dir   string `yaml:"dir"`
	} `yaml:"logging"`

	Feeds struct {
		Dir        string `yaml:"dir"`
		MarketData string `yaml:"market_data"`
		Prices     string `yaml:"prices"`
		Trades     string `yaml:"trades"`
		Inquiries  string `yaml:"inquiries"`
		InboxSize  int    `yaml:"inbox_size"`
	} `yaml:"feeds"`

	Output struct {
		Dir        string `yaml:"dir"`
		Executions string `yaml:"executions"`
		Streaming  string `yaml:"streaming"`
		Inquiries  string `yaml:"inquiries"`
		Positions  string `yaml:"positions"`
		Risk       string `yaml:"risk"`
		GUI        string `yaml:"gui"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		Console    bool   `yaml:"console"`
		DumpFile   string `yaml:"dump_file"`
	} `yaml:"output"`

	Storage struct {
		Enabled bool   `yaml:"enabled"`
		DSN     string `yaml:"dsn"`
	} `yaml:"storage"`

	Price struct {
		Min price.Value `yaml:"min"`
		Max price.Value `yaml:"max"`
	} `yaml:"price"`

	Algo struct {
		Execution struct {
			Threshold           decimal.Decimal `yaml:"threshold"`
			Tolerance           decimal.Decimal `yaml:"tolerance"`
			SymmetricCrossCheck bool            `yaml:"symmetric_cross_check"`
			Venues              []string        `yaml:"venues"`
		} `yaml:"execution"`
		Streaming struct {
			VisibleQuantity int64 `yaml:"visible_quantity"`
		} `yaml:"streaming"`
	} `yaml:"algo"`

	GUI struct {
		TickMS     int64 `yaml:"tick_ms"`
		IntervalMS int64 `yaml:"interval_ms"`
		MaxUpdates int   `yaml:"max_updates"`

		// StrictInterval forwards only when the gap exceeds the interval.
		StrictInterval bool `yaml:"strict_interval"`
	} `yaml:"gui"`

	Booking struct {
		Books []string `yaml:"books"`
	} `yaml:"booking"`

	Risk struct {
		Coefficient decimal.Decimal `yaml:"coefficient"`
		Sectors     []domain.Sector `yaml:"sectors"`
	} `yaml:"risk"`

	Inquiry struct {
		QuotePrice price.Value `yaml:"quote_price"`
	} `yaml:"inquiry"`

	Products []ProductConfig `yaml:"products"`
}

// DefaultConfig returns the reference setup: seven on-the-run Treasuries, three books,
// three venues and the standard throttle.
func DefaultConfig() *Config {
	var cfg Config

	cfg.App.Name = "treasury_go"
	cfg.App.Version = "1.0.0"

	cfg.Logging.Level = "info"
	cfg.Logging.Dir = "logs"

	cfg.Feeds.Dir = "data"
	cfg.Feeds.MarketData = "marketdata.txt"
	cfg.Feeds.Prices = "prices.txt"
	cfg.Feeds.Trades = "trades.txt"
	cfg.Feeds.Inquiries = "inquiries.txt"
	cfg.Feeds.InboxSize = 1024

	cfg.Output.Dir = "output"
	cfg.Output.Executions = "executions.txt"
	cfg.Output.Streaming = "streaming.txt"
	cfg.Output.Inquiries = "allinquiries.txt"
	cfg.Output.Positions = "positions.txt"
	cfg.Output.Risk = "risk.txt"
	cfg.Output.GUI = "gui.txt"
	cfg.Output.MaxSizeMB = 100
	cfg.Output.Console = true
	cfg.Output.DumpFile = "panic_dump.json"

	cfg.Storage.Enabled = true
	cfg.Storage.DSN = "file::memory:?cache=shared"

	cfg.Price.Min = price.DefaultBounds.Min
	cfg.Price.Max = price.DefaultBounds.Max

	cfg.Algo.Execution.Threshold = decimal.NewFromInt(1).Div(decimal.NewFromInt(128))
	cfg.Algo.Execution.Tolerance = decimal.New(1, -9)
	cfg.Algo.Execution.Venues = []string{"BROKERTEC", "ESPEED", "CME"}
	cfg.Algo.Streaming.VisibleQuantity = 1_000_000

	cfg.GUI.TickMS = 100
	cfg.GUI.IntervalMS = 300
	cfg.GUI.MaxUpdates = 100

	cfg.Booking.Books = []string{"TRSY1", "TRSY2", "TRSY3"}

	cfg.Risk.Coefficient = decimal.RequireFromString("0.025")
	cfg.Risk.Sectors = []domain.Sector{
		{Name: "FrontEnd", ProductIDs: []string{"91282CFX4", "91282CGA3"}},
		{Name: "Belly", ProductIDs: []string{"91282CFZ9", "91282CFY2", "91282CFV8"}},
		{Name: "LongEnd", ProductIDs: []string{"912810TM0", "912810TL2"}},
	}

	cfg.Inquiry.QuotePrice = price.New(100, 0, 0)

	cfg.Products = []ProductConfig{
		{ID: "91282CFX4", Ticker: "T", Coupon: decimal.RequireFromString("4.5"), Maturity: "20241130"},
		{ID: "91282CGA3", Ticker: "T", Coupon: decimal.RequireFromString("4.0"), Maturity: "20251215"},
		{ID: "91282CFZ9", Ticker: "T", Coupon: decimal.RequireFromString("3.875"), Maturity: "20271130"},
		{ID: "91282CFY2", Ticker: "T", Coupon: decimal.RequireFromString("3.875"), Maturity: "20291130"},
		{ID: "91282CFV8", Ticker: "T", Coupon: decimal.RequireFromString("4.125"), Maturity: "20321130"},
		{ID: "912810TM0", Ticker: "T", Coupon: decimal.RequireFromString("4.0"), Maturity: "20421115"},
		{ID: "912810TL2", Ticker: "T", Coupon: decimal.RequireFromString("4.0"), Maturity: "20521115"},
	}

	return &cfg
}

// LoadConfig reads and parses the config file.
// A missing file yields domain.ErrConfigNotFound.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrConfigNotFound)
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// PriceBounds is the range feed prices are expected to stay within.
func (c *Config) PriceBounds() price.Bounds {
	return price.Bounds{Min: c.Price.Min, Max: c.Price.Max}
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.Feeds.InboxSize <= 0 {
		return &domain.ConfigError{Field: "feeds.inbox_size", Err: errors.New("must be positive")}
	}

	if !c.PriceBounds().Valid() {
		return &domain.ConfigError{Field: "price", Err: fmt.Errorf("min %s must be below max %s", c.Price.Min, c.Price.Max)}
	}

	if !c.Algo.Execution.Threshold.IsPositive() {
		return &domain.ConfigError{Field: "algo.execution.threshold", Err: errors.New("must be positive")}
	}
	if c.Algo.Execution.Tolerance.IsNegative() {
		return &domain.ConfigError{Field: "algo.execution.tolerance", Err: errors.New("must not be negative")}
	}
	if len(c.Algo.Execution.Venues) == 0 {
		return &domain.ConfigError{Field: "algo.execution.venues", Err: errors.New("at least one venue is required")}
	}
	if c.Algo.Streaming.VisibleQuantity <= 0 {
		return &domain.ConfigError{Field: "algo.streaming.visible_quantity", Err: errors.New("must be positive")}
	}

	if c.GUI.TickMS <= 0 || c.GUI.IntervalMS <= 0 || c.GUI.MaxUpdates < 0 {
		return &domain.ConfigError{Field: "gui", Err: errors.New("tick and interval must be positive")}
	}

	if len(c.Booking.Books) == 0 {
		return &domain.ConfigError{Field: "booking.books", Err: errors.New("at least one book is required")}
	}

	if !c.Risk.Coefficient.IsPositive() {
		return &domain.ConfigError{Field: "risk.coefficient", Err: errors.New("must be positive")}
	}

	if len(c.Products) == 0 {
		return &domain.ConfigError{Field: "products", Err: errors.New("at least one product is required")}
	}
	known := make(map[string]bool, len(c.Products))
	for _, p := range c.Products {
		if p.ID == "" {
			return &domain.ConfigError{Field: "products.id", Err: errors.New("empty id")}
		}
		if known[p.ID] {
			return &domain.ConfigError{Field: "products.id", Err: fmt.Errorf("duplicate id %s", p.ID)}
		}
		if _, err := time.Parse(domain.MaturityLayout, p.Maturity); err != nil {
			return &domain.ConfigError{Field: "products.maturity", Err: fmt.Errorf("%s: %w", p.ID, err)}
		}
		known[p.ID] = true
	}

	for _, s := range c.Risk.Sectors {
		for _, id := range s.ProductIDs {
			if !known[id] {
				return &domain.ConfigError{Field: "risk.sectors", Err: fmt.Errorf("sector %s: %w: %s", s.Name, domain.ErrUnknownProduct, id)}
			}
		}
	}

	return nil
}

// overrideWithEnv overwrites settings from the environment when set.
func overrideWithEnv(cfg *Config) {
	if level := os.Getenv("TREASURY_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if dir := os.Getenv("TREASURY_DATA_DIR"); dir != "" {
		cfg.Feeds.Dir = dir
	}
	if dir := os.Getenv("TREASURY_OUTPUT_DIR"); dir != "" {
		cfg.Output.Dir = dir
	}
}
