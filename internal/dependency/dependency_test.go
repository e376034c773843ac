package dependency

import (
	"math/rand"
	"testing"
	"time"

	"github.com/Rana718/synthgen/internal/canonical"
	"github.com/Rana718/synthgen/internal/schema"
	"github.com/Rana718/synthgen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(seed int64) *Resolver {
	ctx := schema.DefaultGenerationContext()
	ctx.Now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	return New(rand.New(rand.NewSource(seed)), ctx)
}

var admissions = schema.TableSchema{Name: "Admissions", Fields: []schema.FieldSchema{
	{Name: "Admitted On", Type: schema.TypeDate, Role: canonical.RoleAdmissionDate},
	{Name: "Released On", Type: schema.TypeDate, Role: canonical.RoleDischargeDate},
}}

func TestDischargeFollowsAdmissionByRole(t *testing.T) {
	r := newResolver(1)
	field := admissions.Fields[1]

	for i := 0; i < 200; i++ {
		v, ok := r.Resolve(admissions, field, types.Row{"admitted on": "2024-01-10"}, nil)
		require.True(t, ok)
		d, err := schema.ParseDate(v.(string))
		require.NoError(t, err)
		assert.True(t, d.After(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))
		assert.False(t, d.After(time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC)))
	}
}

func TestResolveFallsBack(t *testing.T) {
	r := newResolver(1)
	field := admissions.Fields[1]

	_, ok := r.Resolve(admissions, field, types.Row{}, nil)
	assert.False(t, ok, "missing source")

	_, ok = r.Resolve(admissions, field, types.Row{"Admitted On": "not a date"}, nil)
	assert.False(t, ok, "invalid source")

	eq := &schema.Condition{Field: "Released On", Operator: schema.OpEq, Value: "2024-01-01"}
	_, ok = r.Resolve(admissions, field, types.Row{"Admitted On": "2024-01-10"}, eq)
	assert.False(t, ok, "== condition takes precedence")

	_, ok = r.Resolve(admissions, schema.FieldSchema{Name: "Released On"}, types.Row{"Admitted On": "2024-01-10"}, nil)
	assert.False(t, ok, "no role")
}

func TestDateOffsetHonoursCondition(t *testing.T) {
	r := newResolver(5)
	gt := &schema.Condition{Operator: schema.OpGt, Value: "2024-01-30"}

	v, ok := r.Resolve(admissions, admissions.Fields[1], types.Row{"Admitted On": "2024-01-10"}, gt)
	if ok {
		d, err := schema.ParseDate(v.(string))
		require.NoError(t, err)
		assert.True(t, d.After(time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)))
	}

	impossible := &schema.Condition{Operator: schema.OpLt, Value: "2023-01-01"}
	_, ok = r.Resolve(admissions, admissions.Fields[1], types.Row{"Admitted On": "2024-01-10"}, impossible)
	assert.False(t, ok)
}

func TestCityFromState(t *testing.T) {
	r := newResolver(2)
	table := schema.TableSchema{Fields: []schema.FieldSchema{
		{Name: "Region", Type: schema.TypeState, Role: canonical.RoleState},
		{Name: "Town", Type: schema.TypeCity, Role: canonical.RoleCity},
	}}

	for i := 0; i < 50; i++ {
		v, ok := r.Resolve(table, table.Fields[1], types.Row{"Region": "Kerala"}, nil)
		require.True(t, ok)
		assert.Contains(t, []string{"Thiruvananthapuram", "Kochi", "Kozhikode"}, v)
	}

	_, ok := r.Resolve(table, table.Fields[1], types.Row{"Region": "Atlantis"}, nil)
	assert.False(t, ok)

	ne := &schema.Condition{Operator: schema.OpNe, Value: "Kochi"}
	for i := 0; i < 50; i++ {
		v, ok := r.Resolve(table, table.Fields[1], types.Row{"Region": "Kerala"}, ne)
		require.True(t, ok)
		assert.NotEqual(t, "Kochi", v)
	}
}

func TestCurrencyFromCountry(t *testing.T) {
	r := newResolver(2)
	table := schema.TableSchema{Fields: []schema.FieldSchema{
		{Name: "country", Role: canonical.RoleCountry},
		{Name: "currency", Role: canonical.RoleCurrency},
	}}

	v, ok := r.Resolve(table, table.Fields[1], types.Row{"country": "Japan"}, nil)
	require.True(t, ok)
	assert.Equal(t, "JPY", v)

	_, ok = r.Resolve(table, table.Fields[1], types.Row{"country": "Japan"}, &schema.Condition{Operator: schema.OpNe, Value: "JPY"})
	assert.False(t, ok)
}

func TestEmailFromName(t *testing.T) {
	r := newResolver(9)
	table := schema.TableSchema{Fields: []schema.FieldSchema{
		{Name: "Name", Type: schema.TypeName, Role: canonical.RoleFullName},
		{Name: "Email", Type: schema.TypeEmail, Role: canonical.RoleEmail},
	}}

	v, ok := r.Resolve(table, table.Fields[1], types.Row{"Name": "Priya Sharma"}, nil)
	require.True(t, ok)
	assert.Regexp(t, `^priya\.sharma\d{1,2}@[a-z.]+$`, v)
}

func TestAgeFromBirthDate(t *testing.T) {
	r := newResolver(9)
	table := schema.TableSchema{Fields: []schema.FieldSchema{
		{Name: "DOB", Type: schema.TypeDate, Role: canonical.RoleDateOfBirth},
		{Name: "Age", Type: schema.TypeInt, Role: canonical.RoleAge},
	}}

	v, ok := r.Resolve(table, table.Fields[1], types.Row{"DOB": "1990-06-16"}, nil)
	require.True(t, ok)
	assert.Equal(t, int64(33), v)

	v, ok = r.Resolve(table, table.Fields[1], types.Row{"DOB": "1990-06-15"}, nil)
	require.True(t, ok)
	assert.Equal(t, int64(34), v)

	_, ok = r.Resolve(table, table.Fields[1], types.Row{"DOB": "1990-06-15"}, &schema.Condition{Operator: schema.OpGte, Value: 75})
	assert.False(t, ok)
}

func TestAgeOutsideDeclaredRangeFallsBack(t *testing.T) {
	r := newResolver(9)
	table := schema.TableSchema{Fields: []schema.FieldSchema{
		{Name: "DOB", Type: schema.TypeDate, Role: canonical.RoleDateOfBirth},
		{Name: "Age", Type: schema.TypeInt, Constraint: "30-40", Role: canonical.RoleAge},
	}}

	_, ok := r.Resolve(table, table.Fields[1], types.Row{"DOB": "2016-03-01"}, nil)
	assert.False(t, ok, "an 8 year old does not fit 30-40")

	v, ok := r.Resolve(table, table.Fields[1], types.Row{"DOB": "1990-01-01"}, nil)
	require.True(t, ok)
	assert.Equal(t, int64(34), v)
}

func TestDateOffsetClippedToDeclaredRange(t *testing.T) {
	r := newResolver(3)
	table := schema.TableSchema{Fields: []schema.FieldSchema{
		{Name: "Admission", Type: schema.TypeDate, Constraint: "2024-01-01 - 2024-01-31", Role: canonical.RoleAdmissionDate},
		{Name: "Discharge", Type: schema.TypeDate, Constraint: "2024-01-01 - 2024-01-31", Role: canonical.RoleDischargeDate},
	}}
	last := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		v, ok := r.Resolve(table, table.Fields[1], types.Row{"Admission": "2024-01-25"}, nil)
		require.True(t, ok)
		d, err := schema.ParseDate(v.(string))
		require.NoError(t, err)
		assert.True(t, d.After(time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC)))
		assert.False(t, d.After(last))
	}

	_, ok := r.Resolve(table, table.Fields[1], types.Row{"Admission": "2024-01-31"}, nil)
	assert.False(t, ok, "no day after the admission is left in range")
}

func TestRegisterCustomRule(t *testing.T) {
	r := newResolver(1)
	assert.False(t, r.HasRule("grade"))
	r.Register(Rule{Target: "grade", Source: "score", Handler: func(in Input) (any, bool) {
		return "A", true
	}})
	assert.True(t, r.HasRule("grade"))

	table := schema.TableSchema{Fields: []schema.FieldSchema{{Name: "s", Role: "score"}, {Name: "g", Role: "grade"}}}
	v, ok := r.Resolve(table, table.Fields[1], types.Row{"s": 91}, nil)
	require.True(t, ok)
	assert.Equal(t, "A", v)
}

func TestApplicable(t *testing.T) {
	r := newResolver(1)
	assert.True(t, r.Applicable(admissions, admissions.Fields[1]))
	assert.False(t, r.Applicable(admissions, admissions.Fields[0]))

	lonely := schema.TableSchema{Fields: []schema.FieldSchema{admissions.Fields[1]}}
	assert.False(t, r.Applicable(lonely, admissions.Fields[1]))
}
