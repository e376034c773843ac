// Package mongodb loads generated datasets into MongoDB collections, one
// collection per table and one document per row.
package mongodb

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rana718/synthgen/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const defaultBatch = 500

type Sink struct {
	client   *mongo.Client
	database *mongo.Database
	dbName   string
	log      *zap.SugaredLogger
}

func New(log *zap.SugaredLogger) *Sink {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Sink{log: log}
}

func (s *Sink) Connect(ctx context.Context, url string) error {
	clientOpts := options.Client().ApplyURI(url)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	s.client = client
	s.dbName = DatabaseName(url, clientOpts)
	s.database = client.Database(s.dbName)
	s.log.Debugw("connected to MongoDB", "database", s.dbName)
	return nil
}

// DatabaseName picks the database from the URL path, then the auth source,
// and finally "test".
func DatabaseName(url string, opts *options.ClientOptions) string {
	parts := strings.Split(url, "/")
	if len(parts) > 3 {
		dbPart := parts[len(parts)-1]
		if idx := strings.Index(dbPart, "?"); idx >= 0 {
			dbPart = dbPart[:idx]
		}
		if dbPart != "" && dbPart != "admin" {
			return dbPart
		}
	}

	if opts != nil && opts.Auth != nil && opts.Auth.AuthSource != "" && opts.Auth.AuthSource != "admin" {
		return opts.Auth.AuthSource
	}

	return "test"
}

func (s *Sink) Close() error {
	if s.client != nil {
		return s.client.Disconnect(context.Background())
	}
	return nil
}

// Load inserts every table of ds in generation order. With drop set, each
// collection is dropped before it is filled.
func (s *Sink) Load(ctx context.Context, ds *types.Dataset, batch int, drop bool) error {
	if s.database == nil {
		return fmt.Errorf("database not connected")
	}
	if batch <= 0 {
		batch = defaultBatch
	}

	for _, name := range ds.TableNames() {
		coll := s.database.Collection(name)
		if drop {
			if err := coll.Drop(ctx); err != nil {
				return fmt.Errorf("failed to drop collection %s: %w", name, err)
			}
		}

		docs := Documents(ds.Columns(name), ds.Rows(name))
		for start := 0; start < len(docs); start += batch {
			end := min(start+batch, len(docs))
			if _, err := coll.InsertMany(ctx, docs[start:end]); err != nil {
				return fmt.Errorf("failed to insert into %s: %w", name, err)
			}
		}
		s.log.Infow("loaded collection", "collection", name, "documents", len(docs))
	}
	return nil
}

// Documents converts rows into ordered BSON documents following the column order.
func Documents(columns []types.Column, rows []types.Row) []interface{} {
	docs := make([]interface{}, len(rows))
	for i, row := range rows {
		doc := make(bson.D, 0, len(columns))
		for _, col := range columns {
			doc = append(doc, bson.E{Key: col.Name, Value: row[col.Name]})
		}
		docs[i] = doc
	}
	return docs
}
