package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Rana718/synthgen/internal/config"
	"github.com/Rana718/synthgen/internal/errors"
	"github.com/Rana718/synthgen/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitThenGenerate(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, initializeProject(template.SQLite, false))
	for _, f := range []string{template.ConfigFile, template.SchemaFile, template.EnvFile} {
		assert.FileExists(t, filepath.Join(dir, f))
	}

	outputFormat, outputPath = "sql", filepath.Join(dir, "out")
	t.Cleanup(func() { outputFormat, outputPath = "", "" })

	require.NoError(t, runGenerate(generateCmd, nil))

	entries, err := os.ReadDir(outputPath)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".sql", filepath.Ext(entries[0].Name()))
}

func TestGenerationFlagsApplyOnlyChanged(t *testing.T) {
	cmd := generateCmd
	cfg := config.DefaultConfig()

	require.NoError(t, cmd.Flags().Set("seed", "99"))
	t.Cleanup(func() {
		cmd.Flags().Lookup("seed").Changed = false
		genFlags.seed = 0
	})

	genFlags.apply(cmd, cfg)
	assert.True(t, cfg.Generation.FixedSeed)
	assert.Equal(t, int64(99), cfg.Generation.Seed)
	assert.Equal(t, 100, cfg.Generation.Rows)
}

func TestInvalidConfigKeepsSuggestions(t *testing.T) {
	cmd := generateCmd
	require.NoError(t, cmd.Flags().Set("min-children", "4"))
	require.NoError(t, cmd.Flags().Set("max-children", "2"))
	t.Cleanup(func() {
		cmd.Flags().Lookup("min-children").Changed = false
		cmd.Flags().Lookup("max-children").Changed = false
		genFlags.minChildren, genFlags.maxChildren = -1, -1
	})

	_, err := loadConfig(cmd, &genFlags)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
	assert.Equal(t, "require 0 <= min_children <= max_children", suggestionLine(err))
}
