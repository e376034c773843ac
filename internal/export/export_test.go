package export

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Rana718/synthgen/internal/database"
	"github.com/Rana718/synthgen/internal/errors"
	"github.com/Rana718/synthgen/internal/schema"
	"github.com/Rana718/synthgen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataset() *types.Dataset {
	return types.NewDataset(7, []*types.Table{
		{
			Name:    "Customer",
			Columns: []types.Column{{Name: "id", Type: schema.TypeInt, PrimaryKey: true}, {Name: "Name", Type: schema.TypeName}, {Name: "Email", Type: schema.TypeEmail}},
			Rows: []types.Row{
				{"id": int64(1), "Name": "Asha Rao", "Email": "asha.rao@example.com"},
				{"id": int64(2), "Name": "Dev O'Brien", "Email": nil},
			},
		},
		{
			Name:    "Order",
			Columns: []types.Column{{Name: "order_id", Type: schema.TypeInt, PrimaryKey: true}, {Name: "customer_id", Type: schema.TypeInt}, {Name: "Total", Type: schema.TypeFloat}},
			Rows: []types.Row{
				{"order_id": int64(1), "customer_id": int64(1), "Total": 99.5},
				{"order_id": int64(2), "customer_id": int64(2), "Total": 10.25},
				{"order_id": int64(3), "customer_id": int64(2), "Total": 5.0},
			},
		},
	})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("parquet")
	assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	path, err := New("sqlite", nil).Export(context.Background(), dataset(), dir, FormatJSON)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Seed   int64    `json:"seed"`
		Order  []string `json:"order"`
		Tables map[string]struct {
			Columns []string         `json:"columns"`
			Rows    []map[string]any `json:"rows"`
		} `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, int64(7), doc.Seed)
	assert.Equal(t, []string{"Customer", "Order"}, doc.Order)
	assert.Equal(t, []string{"id", "Name", "Email"}, doc.Tables["Customer"].Columns)
	assert.Len(t, doc.Tables["Order"].Rows, 3)
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := New("sqlite", nil).Export(context.Background(), dataset(), dir, FormatCSV)
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(path, "Customer.csv"))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"id", "Name", "Email"}, records[0])
	assert.Equal(t, []string{"2", "Dev O'Brien", ""}, records[2])
}

func TestExportSQLite(t *testing.T) {
	dir := t.TempDir()
	path, err := New("sqlite", nil).Export(context.Background(), dataset(), dir, FormatSQLite)
	require.NoError(t, err)

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "Order" WHERE "customer_id" = 2`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestDump(t *testing.T) {
	out := Dump(dataset(), database.NewPostgresAdapter())

	assert.Contains(t, out, `CREATE TABLE IF NOT EXISTS "Customer"`)
	assert.Contains(t, out, `INSERT INTO "Customer" ("id", "Name", "Email") VALUES (2, 'Dev O''Brien', NULL);`)
	assert.Less(t, strings.Index(out, `INSERT INTO "Customer"`), strings.Index(out, `INSERT INTO "Order"`))
	assert.Equal(t, 5, strings.Count(out, "INSERT INTO"))
}
