package canonical

import (
	"testing"

	"github.com/Rana718/synthgen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupLongestMatch(t *testing.T) {
	tests := []struct {
		name     string
		wantKey  string
		wantType schema.FieldType
	}{
		{name: "IP Address", wantKey: "ip address", wantType: schema.TypeIPv4},
		{name: "Home Address", wantKey: "address", wantType: schema.TypeAddress},
		{name: "HTTP Status Code", wantKey: "status code", wantType: schema.TypeString},
		{name: "order_status", wantKey: "order status", wantType: schema.TypeCategory},
		{name: "Voter-ID", wantKey: "voter id", wantType: schema.TypeVoterID},
		{name: "Customer ID", wantKey: "id", wantType: schema.TypeInt},
		{name: "Date of Admission", wantKey: "date of admission", wantType: schema.TypeDate},
		{name: "PAN", wantKey: "pan", wantType: schema.TypePAN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := Lookup(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.wantKey, e.Key)
			assert.Equal(t, tt.wantType, e.Type)
		})
	}
}

func TestLookupWholeWordsOnly(t *testing.T) {
	_, ok := Lookup("Company Expansion")
	assert.True(t, ok)
	e, _ := Lookup("Company Expansion")
	assert.Equal(t, "company", e.Key)

	_, ok = Lookup("zzz")
	assert.False(t, ok)
	_, ok = Lookup("   ")
	assert.False(t, ok)
}

func TestCompleteAssignsRoleRegardlessOfLabel(t *testing.T) {
	for _, label := range []string{"Admission Date", "admission_date", "Date of Admission"} {
		f := Complete(schema.FieldSchema{Name: label, Type: schema.TypeAuto})
		assert.Equal(t, schema.TypeDate, f.Type, label)
		assert.Equal(t, RoleAdmissionDate, f.Role, label)
	}
}

func TestCompleteRespectsExplicitSettings(t *testing.T) {
	f := Complete(schema.FieldSchema{Name: "Age", Type: schema.TypeInt, Constraint: "30-40", Role: "custom"})
	assert.Equal(t, "30-40", f.Constraint)
	assert.Equal(t, "custom", f.Role)

	f = Complete(schema.FieldSchema{Name: "Age", Type: schema.TypeFloat})
	assert.Equal(t, "", f.Constraint, "constraint of a different type is not borrowed")
	assert.Equal(t, RoleAge, f.Role)

	f = Complete(schema.FieldSchema{Name: "Mystery", Type: schema.TypeAuto})
	assert.Equal(t, schema.TypeString, f.Type)
}

func TestInferTable(t *testing.T) {
	table := InferTable("patients", []string{"Patient Name", "Age", "Aadhaar", "API Endpoint", " "})
	require.Len(t, table.Fields, 4)
	assert.Equal(t, schema.TypeName, table.Fields[0].Type)
	assert.Equal(t, "18-80", table.Fields[1].Constraint)
	assert.Equal(t, schema.TypeAadhaar, table.Fields[2].Type)
	assert.Equal(t, schema.PatternHint{Pattern: schema.PatternAPIPath}, table.Fields[3].Hint)
}
