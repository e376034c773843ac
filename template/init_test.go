package template

import (
	"encoding/json"
	"testing"

	"github.com/Rana718/synthgen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleSchemaParses(t *testing.T) {
	doc, err := schema.Parse([]byte(NewProjectTemplate(SQLite).GetSchema()))
	require.NoError(t, err)

	require.Len(t, doc.Tables, 2)
	require.Len(t, doc.Relationships, 1)
	require.Len(t, doc.EdgeCases, 1)
	assert.Equal(t, schema.OpGte, doc.EdgeCases[0].Conditions[0].Operator)
	assert.NoError(t, schema.ValidateTables(doc.Tables))
	assert.NoError(t, schema.ValidateRelationships(doc.Tables, doc.Relationships))
}

func TestConfigIsJSON(t *testing.T) {
	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(NewProjectTemplate(PostgreSQL).GetConfig()), &cfg))
	assert.Equal(t, "postgresql", cfg["database"].(map[string]any)["provider"])
}

func TestValidateDatabaseType(t *testing.T) {
	assert.Equal(t, PostgreSQL, ValidateDatabaseType("postgres"))
	assert.Equal(t, MongoDB, ValidateDatabaseType("mongo"))
	assert.Equal(t, SQLite, ValidateDatabaseType("oracle"))
}
