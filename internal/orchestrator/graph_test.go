package orchestrator

import (
	"testing"

	"github.com/Rana718/synthgen/internal/errors"
	"github.com/Rana718/synthgen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rel(parent, child string) schema.Relationship {
	return schema.Relationship{ParentTable: parent, ParentPKField: "id", ChildTable: child, ChildFKField: parent + "_id"}
}

func TestBuildGenerationOrder(t *testing.T) {
	g := NewDependencyGraph()
	for _, name := range []string{"order_items", "orders", "users", "products"} {
		g.AddTable(name)
	}
	require.NoError(t, g.AddRelationship(rel("users", "orders")))
	require.NoError(t, g.AddRelationship(rel("orders", "order_items")))
	require.NoError(t, g.AddRelationship(rel("products", "order_items")))

	order, err := g.BuildGenerationOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "products", "orders", "order_items"}, order)
	assert.Equal(t, []string{"users", "products"}, g.Roots())
}

func TestBuildGenerationOrderCycle(t *testing.T) {
	g := NewDependencyGraph()
	g.AddTable("a")
	g.AddTable("b")
	g.AddTable("c")
	require.NoError(t, g.AddRelationship(rel("a", "b")))
	require.NoError(t, g.AddRelationship(rel("b", "a")))

	_, err := g.BuildGenerationOrder()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
	assert.Contains(t, err.Error(), "a, b")
}

func TestSelfReferenceIsCycle(t *testing.T) {
	g := NewDependencyGraph()
	g.AddTable("employees")
	require.NoError(t, g.AddRelationship(rel("employees", "employees")))

	_, err := g.BuildGenerationOrder()
	assert.Error(t, err)
}

func TestAddRelationshipUndefinedTable(t *testing.T) {
	g := NewDependencyGraph()
	g.AddTable("a")
	err := g.AddRelationship(rel("a", "ghost"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
}
