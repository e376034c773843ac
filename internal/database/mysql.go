package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
)

type MySQLAdapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

// Text is VARCHAR so it can carry a primary key.
var mysqlTypeMap = map[ColumnKind]string{
	KindText:      "VARCHAR(255)",
	KindInteger:   "BIGINT",
	KindFloat:     "DOUBLE",
	KindBool:      "BOOLEAN",
	KindDate:      "DATE",
	KindTimestamp: "DATETIME",
	KindUUID:      "CHAR(36)",
}

func NewMySQLAdapter() *MySQLAdapter {
	return &MySQLAdapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (m *MySQLAdapter) Connect(ctx context.Context, url string) error {
	db, err := sql.Open("mysql", strings.TrimPrefix(url, "mysql://"))
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	m.db = db
	return nil
}

func (m *MySQLAdapter) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *MySQLAdapter) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *MySQLAdapter) DB() *sql.DB {
	return m.db
}

func (m *MySQLAdapter) Builder() squirrel.StatementBuilderType {
	return m.qb
}

func (m *MySQLAdapter) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (m *MySQLAdapter) MapColumnType(kind ColumnKind) string {
	return mysqlTypeMap[kind]
}
