package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

type PostgresAdapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

var pgTypeMap = map[ColumnKind]string{
	KindText:      "TEXT",
	KindInteger:   "BIGINT",
	KindFloat:     "DOUBLE PRECISION",
	KindBool:      "BOOLEAN",
	KindDate:      "DATE",
	KindTimestamp: "TIMESTAMP",
	KindUUID:      "UUID",
}

func NewPostgresAdapter() *PostgresAdapter {
	return &PostgresAdapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (p *PostgresAdapter) Connect(ctx context.Context, url string) error {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}
	p.db = db
	return nil
}

func (p *PostgresAdapter) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *PostgresAdapter) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *PostgresAdapter) DB() *sql.DB {
	return p.db
}

func (p *PostgresAdapter) Builder() squirrel.StatementBuilderType {
	return p.qb
}

func (p *PostgresAdapter) QuoteIdentifier(name string) string {
	return pq.QuoteIdentifier(name)
}

func (p *PostgresAdapter) MapColumnType(kind ColumnKind) string {
	return pgTypeMap[kind]
}
