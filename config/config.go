package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yeremiapane/shop-dataset/generator"
	"github.com/yeremiapane/shop-dataset/models"
)

type GeneratorConfig struct {
	Seed             uint64  `yaml:"seed"`
	Customers        int     `yaml:"customers"`
	Products         int     `yaml:"products"`
	Orders           int     `yaml:"orders"`
	MinItemsPerOrder int     `yaml:"min_items_per_order"`
	MaxItemsPerOrder int     `yaml:"max_items_per_order"`
	PriceMean        float64 `yaml:"price_mean"`
	PriceSigma       float64 `yaml:"price_sigma"`
	HistoryDays      int     `yaml:"history_days"`
	// Now is the reference date (YYYY-MM-DD). Empty means today.
	Now string `yaml:"now"`
}

type OutputConfig struct {
	// Dir receives the CLI's CSV files.
	Dir string `yaml:"dir"`
	// Root holds one sub-directory per dataset created through the API.
	Root string `yaml:"root"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	// Export copies every generated dataset into the database.
	Export bool `yaml:"export"`
}

type ServerConfig struct {
	Port    string `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	// RedisAddr enables the validation report cache when set.
	RedisAddr string        `yaml:"redis_addr"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
	// GenerateRate is the number of POST /datasets allowed per second per client.
	GenerateRate  float64 `yaml:"generate_rate"`
	GenerateBurst int     `yaml:"generate_burst"`
	// MaxRows caps each table size a request may ask for.
	MaxRows    int    `yaml:"max_rows"`
	CORSOrigin string `yaml:"cors_origin"`
}

type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Output    OutputConfig    `yaml:"output"`
	Database  DatabaseConfig  `yaml:"database"`
	Server    ServerConfig    `yaml:"server"`
	LogLevel  string          `yaml:"log_level"`
}

func Default() *Config {
	g := generator.DefaultConfig()
	return &Config{
		Generator: GeneratorConfig{
			Seed:             g.Seed,
			Customers:        g.Customers,
			Products:         g.Products,
			Orders:           g.Orders,
			MinItemsPerOrder: g.MinItemsPerOrder,
			MaxItemsPerOrder: g.MaxItemsPerOrder,
			PriceMean:        g.PriceMean,
			PriceSigma:       g.PriceSigma,
			HistoryDays:      g.HistoryDays,
		},
		Output: OutputConfig{
			Dir:  "data/raw",
			Root: "data/datasets",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "data/shop.db",
		},
		Server: ServerConfig{
			Port:          "8080",
			GinMode:       "debug",
			CacheTTL:      10 * time.Minute,
			GenerateRate:  1,
			GenerateBurst: 3,
			MaxRows:       1_000_000,
		},
		LogLevel: "info",
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	env := &envReader{}
	g := &c.Generator
	env.uint64("GENERATOR_SEED", &g.Seed)
	env.integer("GENERATOR_CUSTOMERS", &g.Customers)
	env.integer("GENERATOR_PRODUCTS", &g.Products)
	env.integer("GENERATOR_ORDERS", &g.Orders)
	env.integer("GENERATOR_MIN_ITEMS", &g.MinItemsPerOrder)
	env.integer("GENERATOR_MAX_ITEMS", &g.MaxItemsPerOrder)
	env.float("GENERATOR_PRICE_MEAN", &g.PriceMean)
	env.float("GENERATOR_PRICE_SIGMA", &g.PriceSigma)
	env.integer("GENERATOR_HISTORY_DAYS", &g.HistoryDays)
	env.str("GENERATOR_NOW", &g.Now)

	env.str("OUTPUT_DIR", &c.Output.Dir)
	env.str("OUTPUT_ROOT", &c.Output.Root)

	env.str("DB_DRIVER", &c.Database.Driver)
	env.str("DB_DSN", &c.Database.DSN)
	env.boolean("DB_EXPORT", &c.Database.Export)

	env.str("PORT", &c.Server.Port)
	env.str("GIN_MODE", &c.Server.GinMode)
	env.str("REDIS_ADDR", &c.Server.RedisAddr)
	env.duration("CACHE_TTL", &c.Server.CacheTTL)
	env.float("GENERATE_RATE", &c.Server.GenerateRate)
	env.integer("GENERATE_BURST", &c.Server.GenerateBurst)
	env.integer("GENERATE_MAX_ROWS", &c.Server.MaxRows)
	env.str("CORS_ORIGIN", &c.Server.CORSOrigin)

	env.str("LOG_LEVEL", &c.LogLevel)

	if len(env.errs) > 0 {
		return fmt.Errorf("environment: %w", errors.Join(env.errs...))
	}
	return nil
}

// Validate checks the settings that are not the generator's own business.
// Generator parameters are validated by generator.Config.Validate.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.ReferenceDate(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Database.Driver) {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.Database.Driver))
	}
	if c.Server.GenerateRate <= 0 || c.Server.GenerateBurst <= 0 {
		errs = append(errs, fmt.Errorf("generate rate and burst must be positive"))
	}
	if c.Server.MaxRows <= 0 {
		errs = append(errs, fmt.Errorf("max rows must be positive, got %d", c.Server.MaxRows))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid config: %w", errors.Join(errs...))
}

// ReferenceDate parses Generator.Now, defaulting to today.
func (c *Config) ReferenceDate() (models.Date, error) {
	if strings.TrimSpace(c.Generator.Now) == "" {
		return models.DateOf(time.Now()), nil
	}
	d, err := time.Parse(models.DateLayout, strings.TrimSpace(c.Generator.Now))
	if err != nil {
		return models.Date{}, fmt.Errorf("reference date %q is not YYYY-MM-DD", c.Generator.Now)
	}
	return models.DateOf(d), nil
}

// Generation converts the generator section into a generator.Config.
func (c *Config) Generation() (generator.Config, error) {
	now, err := c.ReferenceDate()
	if err != nil {
		return generator.Config{}, err
	}
	g := c.Generator
	return generator.Config{
		Seed:             g.Seed,
		Customers:        g.Customers,
		Products:         g.Products,
		Orders:           g.Orders,
		MinItemsPerOrder: g.MinItemsPerOrder,
		MaxItemsPerOrder: g.MaxItemsPerOrder,
		PriceMean:        g.PriceMean,
		PriceSigma:       g.PriceSigma,
		HistoryDays:      g.HistoryDays,
		Now:              now,
	}, nil
}
