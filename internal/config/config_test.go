package config

import (
	"strings"
	"testing"

	"github.com/Rana718/synthgen/internal/errors"
	"github.com/Rana718/synthgen/internal/schema"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadYAML(t *testing.T, doc string) *Config {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(doc)))
	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "schema.yaml", cfg.SchemaPath)
	assert.Equal(t, "exports", cfg.ExportPath)
	assert.Equal(t, 100, cfg.Generation.Rows)
	assert.Equal(t, 1, cfg.Generation.MinChildren)
	assert.Equal(t, 3, cfg.Generation.MaxChildren)
	assert.Equal(t, 1.0, cfg.Generation.Epsilon)
	assert.Equal(t, "sqlite", cfg.Database.Provider)
	assert.Equal(t, "DATABASE_URL", cfg.Database.URLEnv)
	assert.True(t, cfg.Database.CreateTables)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	cfg := loadYAML(t, `
schema_path: db/shop.yaml
export_format: csv
generation:
  rows: 10
  seed: 42
  fixed_seed: true
  locale: en-US
  default_pii: masked
  tables:
    Product: 25
database:
  provider: postgresql
  batch: 0
`)

	assert.Equal(t, "db/shop.yaml", cfg.SchemaPath)
	assert.Equal(t, "csv", cfg.ExportFormat)
	assert.Equal(t, 10, cfg.Generation.Rows)
	assert.Equal(t, 25, cfg.Generation.Tables["product"], "viper lowercases map keys")
	assert.Equal(t, 100, cfg.Database.Batch)
	require.NoError(t, cfg.Validate())

	ctx := cfg.GenerationContext()
	assert.True(t, ctx.FixedSeed)
	assert.Equal(t, int64(42), ctx.Seed)
	assert.Equal(t, schema.LocaleUS, ctx.Locale)
	assert.Equal(t, schema.PIIMasked, ctx.DefaultPII)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "provider", mutate: func(c *Config) { c.Database.Provider = "oracle" }},
		{name: "format", mutate: func(c *Config) { c.ExportFormat = "xml" }},
		{name: "pii", mutate: func(c *Config) { c.Generation.DefaultPII = "shred" }},
		{name: "bounds", mutate: func(c *Config) { c.Generation.MinChildren, c.Generation.MaxChildren = 4, 2 }},
		{name: "epsilon", mutate: func(c *Config) { c.Generation.Epsilon = 0 }},
		{name: "rows", mutate: func(c *Config) { c.Generation.Rows = -1 }},
		{name: "override", mutate: func(c *Config) { c.Generation.Tables = map[string]int{"a": -2} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
		})
	}
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.URLEnv = "SYNTHGEN_TEST_DB_URL"

	_, err := cfg.GetDatabaseURL()
	assert.Error(t, err)

	t.Setenv("SYNTHGEN_TEST_DB_URL", "sqlite://test.db")
	url, err := cfg.GetDatabaseURL()
	require.NoError(t, err)
	assert.Equal(t, "sqlite://test.db", url)
}
