package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteAdapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

var sqliteTypeMap = map[ColumnKind]string{
	KindText:      "TEXT",
	KindInteger:   "INTEGER",
	KindFloat:     "REAL",
	KindBool:      "INTEGER",
	KindDate:      "TEXT",
	KindTimestamp: "TEXT",
	KindUUID:      "TEXT",
}

func NewSQLiteAdapter() *SQLiteAdapter {
	return &SQLiteAdapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (s *SQLiteAdapter) Connect(ctx context.Context, url string) error {
	// Remove sqlite:// prefix if present
	dbPath := strings.TrimPrefix(strings.TrimPrefix(url, "sqlite://"), "file:")

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteAdapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteAdapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteAdapter) DB() *sql.DB {
	return s.db
}

func (s *SQLiteAdapter) Builder() squirrel.StatementBuilderType {
	return s.qb
}

func (s *SQLiteAdapter) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (s *SQLiteAdapter) MapColumnType(kind ColumnKind) string {
	return sqliteTypeMap[kind]
}
