package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Rana718/synthgen/internal/errors"
	"github.com/Rana718/synthgen/internal/schema"
	"github.com/spf13/viper"
)

type Config struct {
	SchemaPath   string     `json:"schema_path" mapstructure:"schema_path"`
	ExportPath   string     `json:"export_path" mapstructure:"export_path"`
	ExportFormat string     `json:"export_format" mapstructure:"export_format"`
	Generation   Generation `json:"generation" mapstructure:"generation"`
	Database     Database   `json:"database" mapstructure:"database"`
	Logging      Logging    `json:"logging" mapstructure:"logging"`
}

type Generation struct {
	Rows                int            `json:"rows" mapstructure:"rows"`
	MinChildren         int            `json:"min_children" mapstructure:"min_children"`
	MaxChildren         int            `json:"max_children" mapstructure:"max_children"`
	Seed                int64          `json:"seed" mapstructure:"seed"`
	FixedSeed           bool           `json:"fixed_seed" mapstructure:"fixed_seed"`
	Locale              string         `json:"locale" mapstructure:"locale"`
	DefaultPII          string         `json:"default_pii" mapstructure:"default_pii"`
	DifferentialPrivacy bool           `json:"differential_privacy" mapstructure:"differential_privacy"`
	Epsilon             float64        `json:"epsilon" mapstructure:"epsilon"`
	Tables              map[string]int `json:"tables,omitempty" mapstructure:"tables"` // root row overrides
}

type Database struct {
	Provider     string `json:"provider" mapstructure:"provider"`
	URLEnv       string `json:"url_env" mapstructure:"url_env"`
	CreateTables bool   `json:"create_tables" mapstructure:"create_tables"`
	Batch        int    `json:"batch" mapstructure:"batch"`
}

type Logging struct {
	Level       string `json:"level" mapstructure:"level"`
	Development bool   `json:"development" mapstructure:"development"`
}

func DefaultConfig() *Config {
	return &Config{
		SchemaPath:   "schema.yaml",
		ExportPath:   "exports",
		ExportFormat: "json",
		Generation: Generation{
			Rows:        100,
			MinChildren: 1,
			MaxChildren: 3,
			Locale:      schema.LocaleIndia,
			DefaultPII:  string(schema.PIIRealisticFake),
			Epsilon:     1.0,
		},
		Database: Database{
			Provider:     "sqlite",
			URLEnv:       "DATABASE_URL",
			CreateTables: true,
			Batch:        100,
		},
		Logging: Logging{Level: "info"},
	}
}

func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom unmarshals v over the defaults. Keys v never saw keep their defaults.
func LoadFrom(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Set defaults for explicit empties
	def := DefaultConfig()
	if cfg.SchemaPath == "" {
		cfg.SchemaPath = def.SchemaPath
	}
	if cfg.ExportPath == "" {
		cfg.ExportPath = def.ExportPath
	}
	if cfg.ExportFormat == "" {
		cfg.ExportFormat = def.ExportFormat
	}
	if cfg.Generation.Locale == "" {
		cfg.Generation.Locale = def.Generation.Locale
	}
	if cfg.Generation.DefaultPII == "" {
		cfg.Generation.DefaultPII = def.Generation.DefaultPII
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = def.Database.Provider
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = def.Database.URLEnv
	}
	if cfg.Database.Batch <= 0 {
		cfg.Database.Batch = def.Database.Batch
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if !v.IsSet("generation.epsilon") {
		cfg.Generation.Epsilon = def.Generation.Epsilon
	}

	return cfg, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

var (
	supportedProviders = []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3", "mongodb"}
	supportedFormats   = []string{"json", "csv", "sqlite", "sql"}
)

func (c *Config) Validate() error {
	if !contains(supportedProviders, strings.ToLower(c.Database.Provider)) {
		return errors.Newf(errors.ErrTypeConfig, "unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}
	if !contains(supportedFormats, strings.ToLower(c.ExportFormat)) {
		return errors.Newf(errors.ErrTypeConfig, "unsupported export format: %s. Supported formats: %v", c.ExportFormat, supportedFormats)
	}
	if _, err := schema.ParsePIIStrategy(c.Generation.DefaultPII); err != nil {
		return errors.Wrap(err, errors.ErrTypeConfig, "invalid generation.default_pii")
	}

	g := c.Generation
	if g.Rows < 0 {
		return errors.New(errors.ErrTypeConfig, "generation.rows cannot be negative")
	}
	if g.MinChildren < 0 || g.MaxChildren < g.MinChildren {
		return errors.Newf(errors.ErrTypeConfig, "invalid children bounds: min=%d max=%d", g.MinChildren, g.MaxChildren).
			WithSuggestion("require 0 <= min_children <= max_children")
	}
	if g.Epsilon <= 0 {
		return errors.New(errors.ErrTypeConfig, "generation.epsilon must be greater than 0")
	}
	for table, rows := range g.Tables {
		if rows < 0 {
			return errors.Newf(errors.ErrTypeConfig, "row override for %s cannot be negative", table)
		}
	}

	if c.ExportPath == "" {
		return errors.New(errors.ErrTypeConfig, "export_path cannot be empty")
	}
	return nil
}

// GenerationContext converts the generation section into the run context.
// Call Validate first.
func (c *Config) GenerationContext() schema.GenerationContext {
	ctx := schema.DefaultGenerationContext()
	if pii, err := schema.ParsePIIStrategy(c.Generation.DefaultPII); err == nil && pii != "" {
		ctx.DefaultPII = pii
	}
	ctx.FixedSeed = c.Generation.FixedSeed
	ctx.Seed = c.Generation.Seed
	ctx.Locale = schema.NormalizeLocale(c.Generation.Locale)
	ctx.DifferentialPrivacy = c.Generation.DifferentialPrivacy
	ctx.Epsilon = c.Generation.Epsilon
	return ctx
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
