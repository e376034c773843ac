package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Rana718/synthgen/internal/canonical"
	"github.com/Rana718/synthgen/internal/schema"
	"github.com/spf13/cobra"
)

var inferSQLFile string

var inferCmd = &cobra.Command{
	Use:   "infer [<table> <column>[,<column>...]]",
	Short: "Draft a schema from column names or SQL DDL",
	Long: `
Infer field types, constraints and generation hints from display names and
print the result as a schema document. With --sql, tables, primary keys and
foreign keys are read from CREATE TABLE statements.

Examples:
  synthgen infer patients "Patient Name,Age,Admission Date,Discharge Date,Aadhaar"
  synthgen infer --sql db/schema.sql > schema.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var doc *schema.Document
		if inferSQLFile != "" {
			ddl, err := os.ReadFile(inferSQLFile)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", inferSQLFile, err)
			}
			if doc, err = canonical.InferSQL(string(ddl)); err != nil {
				return err
			}
		} else {
			if len(args) < 2 {
				return fmt.Errorf("expected a table name and at least one column, or --sql")
			}
			var columns []string
			for _, arg := range args[1:] {
				columns = append(columns, strings.Split(arg, ",")...)
			}
			doc = &schema.Document{Tables: []schema.TableSchema{canonical.InferTable(args[0], columns)}}
		}

		out, err := schema.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to render schema: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inferCmd)
	inferCmd.Flags().StringVar(&inferSQLFile, "sql", "", "Read CREATE TABLE statements from this file")
}
