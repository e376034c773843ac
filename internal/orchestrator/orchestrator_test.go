package orchestrator

import (
	"sort"
	"testing"
	"time"

	"github.com/Rana718/synthgen/internal/errors"
	"github.com/Rana718/synthgen/internal/schema"
	"github.com/Rana718/synthgen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedContext(seed int64) schema.GenerationContext {
	ctx := schema.DefaultGenerationContext()
	ctx.FixedSeed = true
	ctx.Seed = seed
	ctx.Now = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	return ctx
}

func customerOrderRequest(seed int64) Request {
	return Request{
		Tables: []schema.TableSchema{
			{Name: "Customer", Fields: []schema.FieldSchema{
				{Name: "id", Type: schema.TypeInt, PrimaryKey: true},
				{Name: "Name", Type: schema.TypeName},
				{Name: "Tier", Type: schema.TypeCategory, Constraint: "Gold, Silver, Bronze"},
			}},
			{Name: "Order", Fields: []schema.FieldSchema{
				{Name: "order_id", Type: schema.TypeInt, PrimaryKey: true},
				{Name: "customer_id", Type: schema.TypeInt},
				{Name: "Amount", Type: schema.TypeFloat, Constraint: "10-500"},
				{Name: "Placed", Type: schema.TypeDate, Constraint: "2024-01-01 - 2024-03-31"},
			}},
		},
		Relationships: []schema.Relationship{
			{ParentTable: "Customer", ParentPKField: "id", ChildTable: "Order", ChildFKField: "customer_id"},
		},
		RootRows:    10,
		MinChildren: 1,
		MaxChildren: 3,
		Context:     fixedContext(seed),
	}
}

func TestCustomerOrderIntegrity(t *testing.T) {
	ds, _, err := New(nil).Generate(customerOrderRequest(42))
	require.NoError(t, err)

	assert.Equal(t, []string{"Customer", "Order"}, ds.TableNames())
	require.Equal(t, 10, ds.RowCount("Customer"))

	ids := map[any]bool{}
	for _, v := range ds.Values("Customer", "id") {
		ids[v] = true
	}
	assert.Len(t, ids, 10, "customer ids are unique")

	n := ds.RowCount("Order")
	assert.GreaterOrEqual(t, n, 10)
	assert.LessOrEqual(t, n, 30)

	perCustomer := map[any]int{}
	for _, v := range ds.Values("Order", "customer_id") {
		assert.True(t, ids[v], "customer_id %v must reference a customer", v)
		perCustomer[v]++
	}
	assert.Len(t, perCustomer, 10, "every customer has at least one order")
	for _, c := range perCustomer {
		assert.LessOrEqual(t, c, 3)
	}

	for _, v := range ds.Values("Order", "Amount") {
		assert.GreaterOrEqual(t, v.(float64), 10.0)
		assert.LessOrEqual(t, v.(float64), 500.0)
	}
	for _, v := range ds.Values("Order", "Placed") {
		s := v.(string)
		assert.True(t, s >= "2024-01-01" && s <= "2024-03-31", s)
	}
	for _, v := range ds.Values("Customer", "Tier") {
		assert.Contains(t, []string{"Gold", "Silver", "Bronze"}, v)
	}
}

func TestReproducibleWithFixedSeed(t *testing.T) {
	a, _, err := New(nil).Generate(customerOrderRequest(7))
	require.NoError(t, err)
	b, _, err := New(nil).Generate(customerOrderRequest(7))
	require.NoError(t, err)

	for _, name := range a.TableNames() {
		assert.Equal(t, a.Rows(name), b.Rows(name), name)
	}
	assert.Equal(t, a.Seed(), b.Seed())

	c, _, err := New(nil).Generate(customerOrderRequest(8))
	require.NoError(t, err)
	assert.NotEqual(t, a.Rows("Customer"), c.Rows("Customer"))
}

func TestUnseededRunsDiffer(t *testing.T) {
	req := customerOrderRequest(0)
	req.Context.FixedSeed = false
	req.RootRows = 200

	a, _, err := New(nil).Generate(req)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	b, _, err := New(nil).Generate(req)
	require.NoError(t, err)

	assert.NotEqual(t, a.Rows("Customer"), b.Rows("Customer"))
}

func TestTopologicalOrder(t *testing.T) {
	field := []schema.FieldSchema{{Name: "id", Type: schema.TypeInt}, {Name: "ref", Type: schema.TypeInt}}
	req := Request{
		Tables: []schema.TableSchema{
			{Name: "C", Fields: field},
			{Name: "B", Fields: field},
			{Name: "A", Fields: field},
		},
		Relationships: []schema.Relationship{
			{ParentTable: "B", ParentPKField: "id", ChildTable: "C", ChildFKField: "ref"},
			{ParentTable: "A", ParentPKField: "id", ChildTable: "B", ChildFKField: "ref"},
		},
		RootRows:    3,
		MinChildren: 1,
		MaxChildren: 2,
		Context:     fixedContext(1),
	}

	ds, _, err := New(nil).Generate(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, ds.TableNames())
	assert.GreaterOrEqual(t, ds.RowCount("C"), 3)

	bIDs := map[any]bool{}
	for _, v := range ds.Values("B", "id") {
		bIDs[v] = true
	}
	for _, v := range ds.Values("C", "ref") {
		assert.True(t, bIDs[v])
	}
}

func TestCycleIsFatal(t *testing.T) {
	field := []schema.FieldSchema{{Name: "id", Type: schema.TypeInt}, {Name: "ref", Type: schema.TypeInt}}
	req := Request{
		Tables: []schema.TableSchema{{Name: "A", Fields: field}, {Name: "B", Fields: field}},
		Relationships: []schema.Relationship{
			{ParentTable: "A", ParentPKField: "id", ChildTable: "B", ChildFKField: "ref"},
			{ParentTable: "B", ParentPKField: "id", ChildTable: "A", ChildFKField: "ref"},
		},
		RootRows: 5,
		Context:  fixedContext(1),
	}

	ds, advisories, err := New(nil).Generate(req)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
	assert.Contains(t, err.Error(), "circular")
	assert.Nil(t, ds)
	assert.Nil(t, advisories)
}

func TestUndefinedTableIsFatal(t *testing.T) {
	req := customerOrderRequest(1)
	req.Relationships = append(req.Relationships, schema.Relationship{
		ParentTable: "Product", ParentPKField: "id", ChildTable: "Order", ChildFKField: "product_id",
	})

	ds, _, err := New(nil).Generate(req)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
	assert.Nil(t, ds)
}

func TestInvalidChildBounds(t *testing.T) {
	req := customerOrderRequest(1)
	req.MinChildren, req.MaxChildren = 4, 2
	_, _, err := New(nil).Generate(req)
	assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
}

func TestZeroChildBoundsLeaveChildTablesEmpty(t *testing.T) {
	req := customerOrderRequest(1)
	req.MinChildren, req.MaxChildren = 0, 0

	ds, _, err := New(nil).Generate(req)
	require.NoError(t, err)
	assert.Equal(t, 10, ds.RowCount("Customer"))
	assert.Equal(t, 0, ds.RowCount("Order"))
	assert.Equal(t, []string{"Customer", "Order"}, ds.TableNames())
}

func TestAgeEdgeCaseScenario(t *testing.T) {
	req := Request{
		Tables: []schema.TableSchema{{Name: "People", Fields: []schema.FieldSchema{
			{Name: "Age", Type: schema.TypeInt, Constraint: "18-80"},
		}}},
		EdgeCases: []schema.EdgeCaseRule{{
			Percentage: 100,
			Conditions: []schema.Condition{{Field: "Age", Operator: schema.OpGte, Value: 75}},
		}},
		RootRows: 50,
		Context:  fixedContext(3),
	}

	ds, advisories, err := New(nil).Generate(req)
	require.NoError(t, err)
	require.Equal(t, 50, ds.RowCount("People"))
	for _, v := range ds.Values("People", "Age") {
		assert.GreaterOrEqual(t, v.(int64), int64(75))
		assert.LessOrEqual(t, v.(int64), int64(80))
	}
	assert.Empty(t, advisories)
}

func TestEdgeRuleOverridesSeveralFields(t *testing.T) {
	req := Request{
		Tables: []schema.TableSchema{{Name: "Orders", Fields: []schema.FieldSchema{
			{Name: "Status", Type: schema.TypeCategory, Constraint: "Pending, Shipped, Delivered"},
			{Name: "Rating", Type: schema.TypeInt, Constraint: "1-5"},
		}}},
		EdgeCases: []schema.EdgeCaseRule{{
			Percentage: 100,
			Conditions: []schema.Condition{
				{Table: "Orders", Field: "Status", Operator: schema.OpEq, Value: "Delivered"},
				{Table: "Orders", Field: "Rating", Operator: schema.OpEq, Value: 5},
			},
		}},
		RootRows: 20,
		Context:  fixedContext(4),
	}

	ds, _, err := New(nil).Generate(req)
	require.NoError(t, err)
	for _, r := range ds.Rows("Orders") {
		assert.Equal(t, "Delivered", r["Status"])
		assert.Equal(t, int64(5), r["Rating"])
	}
}

func TestForeignKeysAreNotOverwritten(t *testing.T) {
	req := customerOrderRequest(5)
	req.EdgeCases = []schema.EdgeCaseRule{{
		Percentage: 100,
		Conditions: []schema.Condition{{Table: "Order", Field: "customer_id", Operator: schema.OpEq, Value: 999}},
	}}

	ds, _, err := New(nil).Generate(req)
	require.NoError(t, err)
	for _, v := range ds.Values("Order", "customer_id") {
		assert.NotEqual(t, int64(999), v)
	}
}

func TestSecondaryParentsAndMissingForeignKeyField(t *testing.T) {
	req := customerOrderRequest(6)
	req.Tables = append(req.Tables, schema.TableSchema{Name: "Product", Fields: []schema.FieldSchema{
		{Name: "sku", Type: schema.TypeString, Hint: schema.CodeHint{Prefix: "SKU-", Length: 5}},
		{Name: "Price", Type: schema.TypeFloat, Constraint: "1-99"},
	}})
	req.Relationships = append(req.Relationships, schema.Relationship{
		ParentTable: "product", ParentPKField: "SKU", ChildTable: "Order", ChildFKField: "product_sku",
	})

	ds, _, err := New(nil).Generate(req)
	require.NoError(t, err)

	assert.Equal(t, []string{"Customer", "Product", "Order"}, ds.TableNames())
	skus := map[any]bool{}
	for _, v := range ds.Values("Product", "sku") {
		skus[v] = true
	}
	assert.Len(t, skus, 10)
	assert.True(t, skus["SKU-00001"])

	cols := ds.Columns("Order")
	assert.Equal(t, "product_sku", cols[len(cols)-1].Name)
	for _, v := range ds.Values("Order", "product_sku") {
		assert.True(t, skus[v], "product_sku %v", v)
	}
}

func TestScrambleIsPermutation(t *testing.T) {
	build := func(pii schema.PIIStrategy) *types.Dataset {
		req := Request{
			Tables: []schema.TableSchema{{Name: "Staff", Fields: []schema.FieldSchema{
				{Name: "id", Type: schema.TypeInt, PrimaryKey: true},
				{Name: "Dept", Type: schema.TypeCategory, Constraint: "Ops, Sales"},
				{Name: "Salary", Type: schema.TypeFloat, Constraint: "30000-90000", PII: pii},
			}}},
			RootRows: 40,
			Context:  fixedContext(11),
		}
		ds, _, err := New(nil).Generate(req)
		require.NoError(t, err)
		return ds
	}

	plain := build(schema.PIIRealisticFake)
	scrambled := build(schema.PIIScramble)

	require.Equal(t, plain.RowCount("Staff"), scrambled.RowCount("Staff"))
	assert.Equal(t, sortedFloats(plain.Values("Staff", "Salary")), sortedFloats(scrambled.Values("Staff", "Salary")))
	assert.NotEqual(t, plain.Values("Staff", "Salary"), scrambled.Values("Staff", "Salary"))
	assert.Equal(t, plain.Values("Staff", "id"), scrambled.Values("Staff", "id"))
	assert.Equal(t, plain.Values("Staff", "Dept"), scrambled.Values("Staff", "Dept"))
}

func TestDependenciesInsideRows(t *testing.T) {
	req := Request{
		Tables: []schema.TableSchema{{Name: "Admissions", Fields: []schema.FieldSchema{
			{Name: "Admission Date", Type: schema.TypeAuto, Constraint: "2024-01-01 - 2024-01-31"},
			{Name: "Discharge Date", Type: schema.TypeAuto},
			{Name: "State", Type: schema.TypeAuto},
			{Name: "City", Type: schema.TypeAuto},
		}}},
		RootRows: 30,
		Context:  fixedContext(12),
	}

	ds, _, err := New(nil).Generate(req)
	require.NoError(t, err)
	for _, r := range ds.Rows("Admissions") {
		in, out := r["Admission Date"].(string), r["Discharge Date"].(string)
		assert.Greater(t, out, in)
		assert.NotEmpty(t, r["City"])
	}
}

func TestDerivedAgeRespectsAgeConstraint(t *testing.T) {
	req := Request{
		Tables: []schema.TableSchema{{Name: "Person", Fields: []schema.FieldSchema{
			{Name: "Date of Birth", Type: schema.TypeDate, Constraint: "2015-01-01 - 2018-12-31"},
			{Name: "Age", Type: schema.TypeInt, Constraint: "30-40"},
		}}},
		RootRows: 20,
		Context:  fixedContext(21),
	}

	ds, advisories, err := New(nil).Generate(req)
	require.NoError(t, err)
	require.Equal(t, 20, ds.RowCount("Person"))
	for _, v := range ds.Values("Person", "Age") {
		assert.GreaterOrEqual(t, v.(int64), int64(30))
		assert.LessOrEqual(t, v.(int64), int64(40))
	}

	var dependency int
	for _, a := range advisories {
		if a.Kind == errors.ErrTypeDependency && a.Field == "Age" {
			dependency += a.Count
		}
	}
	assert.Equal(t, 20, dependency, "every row fell back to ordinary generation")
}

func TestDerivedDateStaysInsideTargetRange(t *testing.T) {
	req := Request{
		Tables: []schema.TableSchema{{Name: "Stay", Fields: []schema.FieldSchema{
			{Name: "Admission Date", Type: schema.TypeDate, Constraint: "2024-01-01 - 2024-01-31"},
			{Name: "Discharge Date", Type: schema.TypeDate, Constraint: "2024-01-01 - 2024-01-31"},
		}}},
		RootRows: 30,
		Context:  fixedContext(22),
	}

	ds, _, err := New(nil).Generate(req)
	require.NoError(t, err)
	require.Equal(t, 30, ds.RowCount("Stay"))
	for _, r := range ds.Rows("Stay") {
		in, out := r["Admission Date"].(string), r["Discharge Date"].(string)
		assert.True(t, out >= "2024-01-01" && out <= "2024-01-31", out)
		if in < "2024-01-31" {
			assert.Greater(t, out, in)
		}
	}
}

func TestPrivacyAndSensitiveAdvisories(t *testing.T) {
	req := Request{
		Tables: []schema.TableSchema{{Name: "Users", Fields: []schema.FieldSchema{
			{Name: "Full Name", Type: schema.TypeName},
			{Name: "Email", Type: schema.TypeEmail},
			{Name: "PAN", Type: schema.TypePAN, PII: schema.PIIRedacted},
		}}},
		RootRows: 5,
		Context:  fixedContext(13),
	}
	req.Context.DefaultPII = schema.PIIMasked

	ds, advisories, err := New(nil).Generate(req)
	require.NoError(t, err)
	for _, r := range ds.Rows("Users") {
		assert.Regexp(t, `^[a-z]\*\*\*@`, r["Email"])
		assert.Equal(t, "[REDACTED]", r["PAN"])
	}

	var sensitive []string
	for _, a := range advisories {
		if a.Kind == errors.ErrTypeSensitive {
			sensitive = append(sensitive, a.Field)
		}
	}
	assert.ElementsMatch(t, []string{"Full Name", "Email", "PAN"}, sensitive)
}

func TestRootRowOverrides(t *testing.T) {
	req := customerOrderRequest(14)
	req.TableRows = map[string]int{"customer": 4}

	ds, _, err := New(nil).Generate(req)
	require.NoError(t, err)
	assert.Equal(t, 4, ds.RowCount("Customer"))
}

func TestPlan(t *testing.T) {
	plan, err := New(nil).Plan(customerOrderRequest(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"Customer", "Order"}, plan.Order)
	assert.Equal(t, []string{"Customer"}, plan.Roots)
	require.Len(t, plan.Relationships, 1)
}

func sortedFloats(values []any) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v.(float64)
	}
	sort.Float64s(out)
	return out
}
