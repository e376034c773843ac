// Package export writes generated datasets to files.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Rana718/synthgen/internal/database"
	"github.com/Rana718/synthgen/internal/errors"
	"github.com/Rana718/synthgen/internal/types"
	"go.uber.org/zap"
)

type Format string

const (
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"
	FormatSQL    Format = "sql"
)

const timestampLayout = "2006-01-02_15-04-05"

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatSQLite, FormatSQL:
		return f, nil
	default:
		return "", errors.Newf(errors.ErrTypeConfig, "unsupported export format: %s", s).
			WithSuggestion("use one of json, csv, sqlite, sql")
	}
}

type Exporter struct {
	// Dialect selects identifier quoting and column types for SQL dumps.
	Dialect string
	log     *zap.SugaredLogger
}

func New(dialect string, log *zap.SugaredLogger) *Exporter {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Exporter{Dialect: dialect, log: log}
}

// Export writes ds under exportPath and returns the created file or directory.
func (e *Exporter) Export(ctx context.Context, ds *types.Dataset, exportPath string, format Format) (string, error) {
	if err := os.MkdirAll(exportPath, 0755); err != nil {
		return "", errors.Wrap(err, errors.ErrTypeExport, "failed to create export directory")
	}

	var (
		path string
		err  error
	)
	switch format {
	case FormatCSV:
		path, err = exportToCSV(ds, exportPath)
	case FormatSQLite:
		path, err = e.exportToSQLite(ctx, ds, exportPath)
	case FormatSQL:
		path, err = e.exportToSQL(ds, exportPath)
	default:
		path, err = exportToJSON(ds, exportPath)
	}
	if err != nil {
		return "", err
	}
	e.log.Infow("dataset exported", "format", format, "path", path, "rows", ds.TotalRows())
	return path, nil
}

func fileName(ds *types.Dataset, ext string) string {
	return fmt.Sprintf("export_%s.%s", ds.GeneratedAt().Format(timestampLayout), ext)
}

type jsonTable struct {
	Columns []string    `json:"columns"`
	Rows    []types.Row `json:"rows"`
}

type jsonDocument struct {
	GeneratedAt string               `json:"generated_at"`
	Seed        int64                `json:"seed"`
	Order       []string             `json:"order"`
	Tables      map[string]jsonTable `json:"tables"`
}

// document builds the JSON export body.
func document(ds *types.Dataset) jsonDocument {
	doc := jsonDocument{
		GeneratedAt: ds.GeneratedAt().Format(time.RFC3339),
		Seed:        ds.Seed(),
		Order:       ds.TableNames(),
		Tables:      make(map[string]jsonTable),
	}
	for _, name := range doc.Order {
		doc.Tables[name] = jsonTable{Columns: columnNames(ds.Columns(name)), Rows: ds.Rows(name)}
	}
	return doc
}

func exportToJSON(ds *types.Dataset, exportPath string) (string, error) {
	filePath := filepath.Join(exportPath, fileName(ds, "json"))

	jsonData, err := json.MarshalIndent(document(ds), "", "  ")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrTypeExport, "failed to marshal data")
	}

	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return "", errors.Wrap(err, errors.ErrTypeExport, "failed to write file")
	}
	return filePath, nil
}

func exportToCSV(ds *types.Dataset, exportPath string) (string, error) {
	dirPath := filepath.Join(exportPath, fmt.Sprintf("export_%s_csv", ds.GeneratedAt().Format(timestampLayout)))
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return "", errors.Wrap(err, errors.ErrTypeExport, "failed to create CSV directory")
	}

	for _, name := range ds.TableNames() {
		if err := writeCSV(filepath.Join(dirPath, name+".csv"), ds.Columns(name), ds.Rows(name)); err != nil {
			return "", errors.Wrapf(err, errors.ErrTypeExport, "failed to write CSV for %s", name)
		}
	}
	return dirPath, nil
}

func writeCSV(path string, columns []types.Column, rows []types.Row) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	headers := columnNames(columns)
	if err := writer.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		values := make([]string, len(headers))
		for i, header := range headers {
			if v := row[header]; v != nil {
				values[i] = fmt.Sprintf("%v", v)
			}
		}
		if err := writer.Write(values); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func (e *Exporter) exportToSQLite(ctx context.Context, ds *types.Dataset, exportPath string) (string, error) {
	filePath := filepath.Join(exportPath, fileName(ds, "db"))

	adapter := database.NewSQLiteAdapter()
	if err := adapter.Connect(ctx, filePath); err != nil {
		return "", errors.Wrap(err, errors.ErrTypeExport, "failed to create SQLite database")
	}
	defer adapter.Close()

	if err := database.NewSeeder(adapter, e.log).Seed(ctx, ds, database.Options{CreateTables: true}); err != nil {
		return "", errors.Wrap(err, errors.ErrTypeExport, "failed to write SQLite export")
	}
	return filePath, nil
}

func (e *Exporter) exportToSQL(ds *types.Dataset, exportPath string) (string, error) {
	filePath := filepath.Join(exportPath, fileName(ds, "sql"))
	if err := os.WriteFile(filePath, []byte(Dump(ds, database.NewAdapter(e.Dialect))), 0644); err != nil {
		return "", errors.Wrap(err, errors.ErrTypeExport, "failed to write file")
	}
	return filePath, nil
}

// Dump renders CREATE TABLE and INSERT statements for every table in
// generation order.
func Dump(ds *types.Dataset, adapter database.DatabaseAdapter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "-- generated %s, seed %d\n", ds.GeneratedAt().Format(time.RFC3339), ds.Seed())

	for _, name := range ds.TableNames() {
		columns := ds.Columns(name)
		rows := ds.Rows(name)
		b.WriteString("\n")
		b.WriteString(database.GenerateCreateTableSQL(adapter, name, columns, database.ColumnKinds(columns, rows)))
		b.WriteString(";\n")

		quoted := make([]string, len(columns))
		for i, col := range columns {
			quoted[i] = adapter.QuoteIdentifier(col.Name)
		}
		prefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES (", adapter.QuoteIdentifier(name), strings.Join(quoted, ", "))
		for _, row := range rows {
			values := make([]string, len(columns))
			for i, col := range columns {
				values[i] = database.FormatValue(row[col.Name])
			}
			b.WriteString(prefix)
			b.WriteString(strings.Join(values, ", "))
			b.WriteString(");\n")
		}
	}
	return b.String()
}

func columnNames(columns []types.Column) []string {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}
	return names
}
