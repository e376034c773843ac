package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Rana718/synthgen/internal/errors"
	"github.com/Rana718/synthgen/internal/types"
	"go.uber.org/zap"
)

const DefaultBatch = 100

type Options struct {
	CreateTables  bool
	Truncate      bool
	NoTransaction bool
	Batch         int
}

// Seeder writes a dataset through an adapter, parents before children.
type Seeder struct {
	adapter DatabaseAdapter
	log     *zap.SugaredLogger
}

func NewSeeder(adapter DatabaseAdapter, log *zap.SugaredLogger) *Seeder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Seeder{adapter: adapter, log: log}
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Seeder) Seed(ctx context.Context, ds *types.Dataset, opts Options) error {
	if opts.Batch <= 0 {
		opts.Batch = DefaultBatch
	}
	order := ds.TableNames()
	if len(order) == 0 {
		return nil
	}

	db := s.adapter.DB()
	if db == nil {
		return errors.New(errors.ErrTypeDatabase, "database not connected")
	}

	if opts.CreateTables {
		for _, name := range order {
			columns := ds.Columns(name)
			stmt := GenerateCreateTableSQL(s.adapter, name, columns, ColumnKinds(columns, ds.Rows(name)))
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return errors.Wrapf(err, errors.ErrTypeDatabase, "failed to create table %s", name)
			}
			s.log.Debugw("table ready", "table", name)
		}
	}

	var target execer = db
	var tx *sql.Tx
	if !opts.NoTransaction {
		var err error
		tx, err = db.BeginTx(ctx, nil)
		if err != nil {
			return errors.Wrap(err, errors.ErrTypeDatabase, "failed to start transaction")
		}
		target = tx
	}

	if err := s.write(ctx, target, ds, order, opts); err != nil {
		if tx != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return errors.Wrapf(err, errors.ErrTypeDatabase, "seed failed and rollback failed: %v", rbErr)
			}
			s.log.Warnw("transaction rolled back", "error", err)
		}
		return err
	}

	if tx != nil {
		if err := tx.Commit(); err != nil {
			return errors.Wrap(err, errors.ErrTypeDatabase, "failed to commit transaction")
		}
	}
	return nil
}

func (s *Seeder) write(ctx context.Context, target execer, ds *types.Dataset, order []string, opts Options) error {
	if opts.Truncate {
		for i := len(order) - 1; i >= 0; i-- {
			query, args, err := s.adapter.Builder().Delete(s.adapter.QuoteIdentifier(order[i])).ToSql()
			if err != nil {
				return errors.Wrap(err, errors.ErrTypeInternal, "failed to build delete")
			}
			if _, err := target.ExecContext(ctx, query, args...); err != nil {
				return errors.Wrapf(err, errors.ErrTypeDatabase, "failed to truncate %s", order[i])
			}
		}
	}

	for _, name := range order {
		columns := ds.Columns(name)
		rows := ds.Rows(name)
		for start := 0; start < len(rows); start += opts.Batch {
			end := min(start+opts.Batch, len(rows))
			if err := s.insertBatch(ctx, target, name, columns, rows[start:end]); err != nil {
				return err
			}
		}
		s.log.Infow("seeded table", "table", name, "rows", len(rows))
	}
	return nil
}

func (s *Seeder) insertBatch(ctx context.Context, target execer, table string, columns []types.Column, rows []types.Row) error {
	if len(rows) == 0 {
		return nil
	}

	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = s.adapter.QuoteIdentifier(col.Name)
	}

	insert := s.adapter.Builder().Insert(s.adapter.QuoteIdentifier(table)).Columns(quoted...)
	for _, row := range rows {
		values := make([]any, len(columns))
		for i, col := range columns {
			values[i] = row[col.Name]
		}
		insert = insert.Values(values...)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return errors.Wrapf(err, errors.ErrTypeInternal, "failed to build insert for %s", table)
	}
	if _, err := target.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, errors.ErrTypeDatabase, "failed to insert into %s", table)
	}
	return nil
}

// FormatValue renders a generated value as a SQL literal.
func FormatValue(val any) string {
	if val == nil {
		return "NULL"
	}
	switch v := val.(type) {
	case string:
		escaped := strings.ReplaceAll(v, "'", "''")
		escaped = strings.ReplaceAll(escaped, "\\", "\\\\")
		return fmt.Sprintf("'%s'", escaped)
	case int, int32, int64, float32, float64:
		return fmt.Sprintf("%v", v)
	case bool:
		if v {
			return "1"
		}
		return "0"
	case time.Time:
		return fmt.Sprintf("'%s'", v.Format("2006-01-02 15:04:05"))
	default:
		escaped := strings.ReplaceAll(fmt.Sprintf("%v", v), "'", "''")
		return fmt.Sprintf("'%s'", escaped)
	}
}
