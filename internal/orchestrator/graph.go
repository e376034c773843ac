package orchestrator

import (
	"sort"
	"strings"

	"github.com/Rana718/synthgen/internal/errors"
	"github.com/Rana718/synthgen/internal/schema"
)

// DependencyGraph orders tables so every parent is generated before its children.
type DependencyGraph struct {
	tables   []string
	index    map[string]int
	children map[string][]string
	inDegree map[string]int
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		index:    make(map[string]int),
		children: make(map[string][]string),
		inDegree: make(map[string]int),
	}
}

func (g *DependencyGraph) AddTable(name string) {
	if _, ok := g.index[name]; ok {
		return
	}
	g.index[name] = len(g.tables)
	g.tables = append(g.tables, name)
	g.inDegree[name] = 0
}

// AddRelationship adds a parent -> child edge. Both tables must already exist.
func (g *DependencyGraph) AddRelationship(rel schema.Relationship) error {
	for _, name := range []string{rel.ParentTable, rel.ChildTable} {
		if _, ok := g.index[name]; !ok {
			return errors.NewConfigError("relationship "+rel.String()+" references undefined table", name)
		}
	}
	g.children[rel.ParentTable] = append(g.children[rel.ParentTable], rel.ChildTable)
	g.inDegree[rel.ChildTable]++
	return nil
}

// BuildGenerationOrder runs Kahn's algorithm. Ties resolve in table
// declaration order, so the order is stable across runs. Tables left with
// incoming edges form a cycle, which is a configuration error.
func (g *DependencyGraph) BuildGenerationOrder() ([]string, error) {
	inDegree := make(map[string]int, len(g.inDegree))
	for k, v := range g.inDegree {
		inDegree[k] = v
	}

	var ready []string
	for _, name := range g.tables {
		if inDegree[name] == 0 {
			ready = append(ready, name)
		}
	}

	order := make([]string, 0, len(g.tables))
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)

		var released []string
		for _, child := range g.children[name] {
			inDegree[child]--
			if inDegree[child] == 0 {
				released = append(released, child)
			}
		}
		sort.SliceStable(released, func(i, j int) bool {
			return g.index[released[i]] < g.index[released[j]]
		})
		ready = append(ready, released...)
	}

	if len(order) != len(g.tables) {
		var stuck []string
		for _, name := range g.tables {
			if inDegree[name] > 0 {
				stuck = append(stuck, name)
			}
		}
		return nil, errors.Newf(errors.ErrTypeConfig, "circular relationship detected involving tables: %s", strings.Join(stuck, ", ")).
			WithSuggestion("Relationships must form a directed acyclic graph")
	}

	return order, nil
}

// Roots returns tables that are never a child, in declaration order.
func (g *DependencyGraph) Roots() []string {
	var roots []string
	for _, name := range g.tables {
		if g.inDegree[name] == 0 {
			roots = append(roots, name)
		}
	}
	return roots
}
