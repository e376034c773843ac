package cmd

import (
	"fmt"
	"strings"

	"github.com/Rana718/synthgen/internal/edgecase"
	"github.com/Rana718/synthgen/internal/orchestrator"
	"github.com/Rana718/synthgen/internal/privacy"
	"github.com/Rana718/synthgen/internal/schema"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [schema-file]",
	Short: "Check a schema without generating data",
	Long: `
Load the schema, complete field types from field names, validate tables and
relationships, and print the generation order, sensitive fields and the
fields edge case rules target.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, nil)
		if err != nil {
			return err
		}
		path := cfg.SchemaPath
		if len(args) == 1 {
			path = args[0]
		}

		doc, err := schema.LoadFile(path)
		if err != nil {
			return err
		}

		req := buildRequest(cfg, doc)
		plan, err := orchestrator.New(nil).Plan(req)
		if err != nil {
			printError(err)
			return err
		}

		color.Green("✅ %s is valid", path)
		color.Cyan("📋 Generation order: %s", strings.Join(plan.Order, " → "))
		color.Cyan("🌱 Root tables: %s", strings.Join(plan.Roots, ", "))
		fmt.Println()

		ctx := cfg.GenerationContext()
		for _, t := range plan.Tables {
			color.New(color.Bold).Printf("%s\n", t.Name)
			for _, f := range t.Fields {
				line := fmt.Sprintf("  %-24s %-10s %s", f.Name, f.Type, f.Constraint)
				if privacy.IsSensitive(f) {
					line += fmt.Sprintf("  [sensitive: %s]", privacy.EffectiveStrategy(f, ctx))
				}
				if edgecase.Targets(req.EdgeCases, t.Name, f.Name) {
					line += "  [edge case]"
				}
				fmt.Println(strings.TrimRight(line, " "))
			}
		}
		for _, rel := range plan.Relationships {
			fmt.Printf("  %s\n", rel)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
