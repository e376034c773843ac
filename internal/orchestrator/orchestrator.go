// Package orchestrator generates a self-consistent set of related tables:
// it orders tables parent-first, fans child rows out from parent rows,
// propagates keys and applies column-level privacy once a table is complete.
package orchestrator

import (
	"fmt"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/Rana718/synthgen/internal/canonical"
	"github.com/Rana718/synthgen/internal/dependency"
	"github.com/Rana718/synthgen/internal/edgecase"
	"github.com/Rana718/synthgen/internal/errors"
	"github.com/Rana718/synthgen/internal/faker"
	"github.com/Rana718/synthgen/internal/generator"
	"github.com/Rana718/synthgen/internal/privacy"
	"github.com/Rana718/synthgen/internal/schema"
	"github.com/Rana718/synthgen/internal/types"
)

// Request is one generation run.
type Request struct {
	Tables        []schema.TableSchema
	Relationships []schema.Relationship
	EdgeCases     []schema.EdgeCaseRule
	// RootRows is the row count of every root table unless TableRows overrides it.
	RootRows  int
	TableRows map[string]int
	// Every parent row gets MinChildren..MaxChildren rows in each child
	// table. The bounds are used as given: 0-0 leaves child tables empty.
	MinChildren int
	MaxChildren int
	Context     schema.GenerationContext
}

type Orchestrator struct {
	log *zap.SugaredLogger
}

func New(log *zap.SugaredLogger) *Orchestrator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Orchestrator{log: log}
}

// Plan is a validated request: completed tables, relationships naming the
// declared tables, and the generation order.
type Plan struct {
	Tables        []schema.TableSchema
	Relationships []schema.Relationship
	Order         []string
	// Roots are the tables sized by RootRows rather than by their parents.
	Roots []string
}

// run holds the state of one Generate call.
type run struct {
	req        Request
	rels       []schema.Relationship
	rng        *rand.Rand
	gen        *generator.Generator
	resolver   *dependency.Resolver
	advisories *types.Advisories

	tables map[string]schema.TableSchema
	keys   map[string]map[string]bool
	rows   map[string][]types.Row
}

// Plan validates req and computes the generation order without generating
// anything.
func (o *Orchestrator) Plan(req Request) (*Plan, error) {
	tables := canonical.CompleteTables(req.Tables)
	if err := schema.ValidateTables(tables); err != nil {
		return nil, err
	}
	if err := schema.ValidateRelationships(tables, req.Relationships); err != nil {
		return nil, err
	}
	if req.RootRows < 0 {
		return nil, errors.Newf(errors.ErrTypeConfig, "root row count must not be negative, got %d", req.RootRows)
	}
	if req.MinChildren < 0 || req.MaxChildren < req.MinChildren {
		return nil, errors.Newf(errors.ErrTypeConfig, "invalid children bounds %d-%d", req.MinChildren, req.MaxChildren)
	}
	rels := declaredNames(tables, req.Relationships)

	graph := NewDependencyGraph()
	for _, t := range tables {
		graph.AddTable(t.Name)
	}
	for _, rel := range rels {
		if err := graph.AddRelationship(rel); err != nil {
			return nil, err
		}
	}
	order, err := graph.BuildGenerationOrder()
	if err != nil {
		return nil, err
	}
	return &Plan{
		Tables:        addForeignKeyFields(tables, rels),
		Relationships: rels,
		Order:         order,
		Roots:         graph.Roots(),
	}, nil
}

// Generate runs the whole pipeline. Configuration errors abort the run and
// no partial dataset is returned; every other problem is reported as an advisory.
func (o *Orchestrator) Generate(req Request) (*types.Dataset, []types.Advisory, error) {
	plan, err := o.Plan(req)
	if err != nil {
		return nil, nil, err
	}
	tables, order := plan.Tables, plan.Order

	seed := req.Context.RunSeed()
	rng := rand.New(rand.NewSource(seed))
	advisories := types.NewAdvisories()
	r := &run{
		req:        req,
		rels:       plan.Relationships,
		rng:        rng,
		gen:        generator.New(rng, faker.NewGofakeitProvider(providerSeed(seed), req.Context.Locale), req.Context, advisories),
		resolver:   dependency.New(rng, req.Context),
		advisories: advisories,
		tables:     make(map[string]schema.TableSchema, len(tables)),
		keys:       keyFields(tables, plan.Relationships),
		rows:       make(map[string][]types.Row, len(tables)),
	}
	for _, t := range tables {
		r.tables[t.Name] = t
		for _, name := range privacy.SensitiveFields(t) {
			f, _ := t.Field(name)
			advisories.Add(errors.ErrTypeSensitive, t.Name, name,
				fmt.Sprintf("sensitive field handled as %s", privacy.EffectiveStrategy(f, req.Context)))
		}
	}

	o.log.Infow("generation started", "seed", seed, "tables", len(tables),
		"order", strings.Join(order, " -> "), "roots", strings.Join(plan.Roots, ", "))

	out := make([]*types.Table, 0, len(order))
	for _, name := range order {
		table := r.tables[name]
		rows := r.buildTable(table)

		skip := make(map[string]bool)
		for k := range r.keys[name] {
			skip[k] = true
		}
		for _, rel := range r.parentsOf(name) {
			if f, ok := table.Field(rel.ChildFKField); ok {
				skip[f.Name] = true
			}
		}
		if scrambled := privacy.ScrambleTable(table, rows, req.Context, skip, rng); len(scrambled) > 0 {
			o.log.Debugw("scrambled columns", "table", name, "fields", scrambled)
		}
		r.rows[name] = rows

		columns := make([]types.Column, len(table.Fields))
		for i, f := range table.Fields {
			columns[i] = types.Column{Name: f.Name, Type: f.Type, PrimaryKey: r.keys[name][f.Name]}
		}
		out = append(out, &types.Table{Name: name, Columns: columns, Rows: rows})
		o.log.Infow("table generated", "table", name, "rows", len(rows))
	}

	list := advisories.List()
	for _, a := range list {
		o.log.Debugw("advisory", "kind", a.Kind, "table", a.Table, "field", a.Field, "message", a.Message, "count", a.Count)
	}
	return types.NewDataset(seed, out), list, nil
}

func (r *run) buildTable(table schema.TableSchema) []types.Row {
	parents := r.parentsOf(table.Name)
	if len(parents) == 0 {
		n := r.req.RootRows
		if override, ok := r.lookupRows(table.Name); ok {
			n = override
		}
		rows := make([]types.Row, 0, n)
		for i := 0; i < n; i++ {
			rows = append(rows, r.buildRow(table, nil, i))
		}
		return rows
	}

	primary, secondary := parents[0], parents[1:]
	lo, hi := r.req.MinChildren, r.req.MaxChildren
	var rows []types.Row
	for _, parent := range r.rows[primary.ParentTable] {
		count := lo + r.rng.Intn(hi-lo+1)
		for j := 0; j < count; j++ {
			preset := types.Row{primary.ChildFKField: parent[r.pkName(primary)]}
			for _, rel := range secondary {
				preset[rel.ChildFKField] = r.randomKey(rel)
			}
			rows = append(rows, r.buildRow(table, preset, len(rows)))
		}
	}
	return rows
}

// buildRow fills one row. Preset foreign keys are never overwritten.
// Dependencies read the raw values so masking does not leak into derived fields.
func (r *run) buildRow(table schema.TableSchema, preset types.Row, index int) types.Row {
	row := make(types.Row, len(table.Fields))
	raw := make(types.Row, len(table.Fields))
	for k, v := range preset {
		if f, ok := table.Field(k); ok {
			k = f.Name
		}
		row[k] = v
		raw[k] = v
	}

	rule := edgecase.RowRule(r.rng, r.req.EdgeCases)
	for _, f := range table.Fields {
		if _, ok := row[f.Name]; ok {
			continue
		}
		if r.keys[table.Name][f.Name] {
			v := r.gen.PrimaryKey(f, index)
			row[f.Name], raw[f.Name] = v, v
			continue
		}

		cond, _ := edgecase.MatchCondition(rule, table.Name, f.Name)
		value, ok := r.resolver.Resolve(table, f, raw, cond)
		if !ok {
			if r.resolver.Applicable(table, f) && (cond == nil || cond.Operator != schema.OpEq) {
				r.advisories.Add(errors.ErrTypeDependency, table.Name, f.Name, "no value could be derived from its source, generated independently")
			}
			value = r.gen.Raw(table.Name, f, cond)
		}
		raw[f.Name] = value
		row[f.Name] = r.gen.Protect(f, value)
	}
	return row
}

func (r *run) parentsOf(table string) []schema.Relationship {
	var out []schema.Relationship
	for _, rel := range r.rels {
		if rel.ChildTable == table {
			out = append(out, rel)
		}
	}
	return out
}

func (r *run) pkName(rel schema.Relationship) string {
	if f, ok := r.tables[rel.ParentTable].Field(rel.ParentPKField); ok {
		return f.Name
	}
	return rel.ParentPKField
}

// randomKey picks a primary key of a secondary parent uniformly. This does
// not preserve co-occurrence across parents.
func (r *run) randomKey(rel schema.Relationship) any {
	rows := r.rows[rel.ParentTable]
	if len(rows) == 0 {
		r.advisories.Add(errors.ErrTypeDependency, rel.ChildTable, rel.ChildFKField,
			fmt.Sprintf("parent table %s has no rows, foreign key left empty", rel.ParentTable))
		return nil
	}
	return rows[r.rng.Intn(len(rows))][r.pkName(rel)]
}

func (r *run) lookupRows(table string) (int, bool) {
	for k, v := range r.req.TableRows {
		if strings.EqualFold(k, table) {
			return v, true
		}
	}
	return 0, false
}

// providerSeed derives the fake-value provider's seed from the run seed so
// both sources replay together.
func providerSeed(seed int64) int64 {
	return seed*6364136223846793005 + 1442695040888963407
}

// declaredNames rewrites relationship table names to the declared spelling.
func declaredNames(tables []schema.TableSchema, rels []schema.Relationship) []schema.Relationship {
	declared := func(name string) string {
		for _, t := range tables {
			if strings.EqualFold(t.Name, name) {
				return t.Name
			}
		}
		return name
	}
	out := make([]schema.Relationship, len(rels))
	for i, rel := range rels {
		rel.ParentTable = declared(rel.ParentTable)
		rel.ChildTable = declared(rel.ChildTable)
		out[i] = rel
	}
	return out
}

// keyFields marks generated key columns per table: declared primary keys and
// every parent_pk_field. Foreign key columns are preset, not generated.
func keyFields(tables []schema.TableSchema, rels []schema.Relationship) map[string]map[string]bool {
	keys := make(map[string]map[string]bool, len(tables))
	for _, t := range tables {
		keys[t.Name] = make(map[string]bool)
		for _, f := range t.Fields {
			if f.PrimaryKey {
				keys[t.Name][f.Name] = true
			}
		}
	}
	for _, rel := range rels {
		for _, t := range tables {
			if t.Name != rel.ParentTable {
				continue
			}
			if f, ok := t.Field(rel.ParentPKField); ok {
				keys[t.Name][f.Name] = true
			}
		}
	}
	return keys
}

// addForeignKeyFields declares a child FK column the schema left out, typed
// like the parent key.
func addForeignKeyFields(tables []schema.TableSchema, rels []schema.Relationship) []schema.TableSchema {
	byName := make(map[string]int, len(tables))
	for i, t := range tables {
		byName[t.Name] = i
	}
	for _, rel := range rels {
		ci, pi := byName[rel.ChildTable], byName[rel.ParentTable]
		if _, ok := tables[ci].Field(rel.ChildFKField); ok {
			continue
		}
		pk, _ := tables[pi].Field(rel.ParentPKField)
		tables[ci].Fields = append(tables[ci].Fields, schema.FieldSchema{
			Name: rel.ChildFKField,
			Type: pk.Type,
			PII:  schema.PIIRealisticFake,
		})
	}
	return tables
}
