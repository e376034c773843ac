package cmd

import (
	"context"
	"fmt"

	"github.com/Rana718/synthgen/internal/export"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	genFlags     generationFlags
	outputFormat string
	outputPath   string
	schemaPath   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic dataset and export it",
	Long: `
Generate every table of the schema in parent-first order and write the result.
Supported formats: json (default), csv, sqlite, sql

Examples:
  synthgen generate
  synthgen generate --rows 50 --seed 42
  synthgen generate --format csv --out ./data
  synthgen generate --pii masked --dp --epsilon 0.5`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	genFlags.register(generateCmd)
	generateCmd.Flags().StringVarP(&outputFormat, "format", "o", "", "Export format (json, csv, sqlite, sql)")
	generateCmd.Flags().StringVar(&outputPath, "out", "", "Export directory (overrides export_path)")
	generateCmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "Schema file (overrides schema_path)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, &genFlags)
	if err != nil {
		return err
	}
	if schemaPath != "" {
		cfg.SchemaPath = schemaPath
	}
	if outputPath != "" {
		cfg.ExportPath = outputPath
	}
	if outputFormat != "" {
		cfg.ExportFormat = outputFormat
	}

	format, err := export.ParseFormat(cfg.ExportFormat)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ds, advisories, err := generateDataset(cfg, log)
	if err != nil {
		return err
	}
	printSummary(ds)

	path, err := export.New(cfg.Database.Provider, log).Export(context.Background(), ds, cfg.ExportPath, format)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	printAdvisories(advisories)
	color.Green("\n✅ Export completed: %s", path)
	return nil
}
