// Package database writes generated datasets into SQL databases.
package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/synthgen/internal/schema"
	"github.com/Rana718/synthgen/internal/types"
)

// ColumnKind is the storage class of a generated column.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindInteger
	KindFloat
	KindBool
	KindDate
	KindTimestamp
	KindUUID
)

type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error
	DB() *sql.DB

	// Builder returns a squirrel builder with the provider's placeholder format.
	Builder() squirrel.StatementBuilderType
	QuoteIdentifier(name string) string
	MapColumnType(kind ColumnKind) string
}

func NewAdapter(provider string) DatabaseAdapter {
	switch NormalizeProvider(provider) {
	case "mysql":
		return NewMySQLAdapter()
	case "sqlite":
		return NewSQLiteAdapter()
	default:
		return NewPostgresAdapter()
	}
}

// NormalizeProvider folds provider aliases onto postgres, mysql and sqlite.
// Unknown providers are returned lowercased.
func NormalizeProvider(provider string) string {
	switch p := strings.ToLower(strings.TrimSpace(provider)); p {
	case "postgresql", "postgres", "pg", "pgx":
		return "postgres"
	case "mysql", "mariadb":
		return "mysql"
	case "sqlite", "sqlite3":
		return "sqlite"
	default:
		return p
	}
}

// KindOf infers the storage class of a column from its type and a sample
// value. Masked or redacted values turn typed columns into text.
func KindOf(col types.Column, sample any) ColumnKind {
	switch v := sample.(type) {
	case int, int32, int64:
		return KindInteger
	case float32, float64:
		return KindFloat
	case bool:
		return KindBool
	case time.Time:
		return KindTimestamp
	case string:
		switch col.Type {
		case schema.TypeDate:
			if _, err := time.Parse(schema.DateLayout, v); err == nil {
				return KindDate
			}
			if _, err := time.Parse(schema.DatetimeLayout, v); err == nil {
				return KindTimestamp
			}
		case schema.TypeDatetime:
			if _, err := time.Parse(schema.DatetimeLayout, v); err == nil {
				return KindTimestamp
			}
		case schema.TypeUUID:
			if len(v) == 36 && strings.Count(v, "-") == 4 {
				return KindUUID
			}
		}
	}
	return KindText
}

// ColumnKinds infers one kind per column from the first non-nil value.
func ColumnKinds(columns []types.Column, rows []types.Row) []ColumnKind {
	kinds := make([]ColumnKind, len(columns))
	for i, col := range columns {
		var sample any
		for _, r := range rows {
			if v := r[col.Name]; v != nil {
				sample = v
				break
			}
		}
		kinds[i] = KindOf(col, sample)
	}
	return kinds
}

// GenerateCreateTableSQL renders CREATE TABLE IF NOT EXISTS for a generated table.
func GenerateCreateTableSQL(a DatabaseAdapter, table string, columns []types.Column, kinds []ColumnKind) string {
	var defs, keys []string
	for i, col := range columns {
		defs = append(defs, a.QuoteIdentifier(col.Name)+" "+a.MapColumnType(kinds[i]))
		if col.PrimaryKey {
			keys = append(keys, a.QuoteIdentifier(col.Name))
		}
	}
	if len(keys) > 0 {
		defs = append(defs, "PRIMARY KEY ("+strings.Join(keys, ", ")+")")
	}
	return "CREATE TABLE IF NOT EXISTS " + a.QuoteIdentifier(table) + " (\n  " + strings.Join(defs, ",\n  ") + "\n)"
}
