package types

import (
	"testing"

	"github.com/Rana718/synthgen/internal/errors"
	"github.com/Rana718/synthgen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() *Dataset {
	return NewDataset(42, []*Table{
		{
			Name:    "Customer",
			Columns: []Column{{Name: "id", Type: schema.TypeInt}},
			Rows:    []Row{{"id": int64(1)}, {"id": int64(2)}},
		},
		{
			Name:    "Order",
			Columns: []Column{{Name: "customer_id", Type: schema.TypeInt}},
			Rows:    []Row{{"customer_id": int64(2)}},
		},
	})
}

func TestDatasetAccessorsReturnCopies(t *testing.T) {
	ds := sampleDataset()

	assert.Equal(t, []string{"Customer", "Order"}, ds.TableNames())
	assert.Equal(t, int64(42), ds.Seed())
	assert.Equal(t, 3, ds.TotalRows())

	rows := ds.Rows("Customer")
	require.Len(t, rows, 2)
	rows[0]["id"] = int64(99)
	assert.Equal(t, int64(1), ds.Rows("Customer")[0]["id"])

	names := ds.TableNames()
	names[0] = "Mutated"
	assert.Equal(t, "Customer", ds.TableNames()[0])

	assert.Equal(t, []any{int64(1), int64(2)}, ds.Values("Customer", "id"))
	assert.Nil(t, ds.Rows("Missing"))
	assert.False(t, ds.HasTable("Missing"))
}

func TestAdvisoriesFoldRepeats(t *testing.T) {
	adv := NewAdvisories()
	adv.Add(errors.ErrTypeConstraint, "Customer", "Age", "invalid range")
	adv.Add(errors.ErrTypeConstraint, "Customer", "Age", "invalid range")
	adv.Addf(errors.ErrTypeUnknownType, "Customer", "Blob", "unknown type %q", "blob")

	list := adv.List()
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].Count)
	assert.Equal(t, "[constraint] Customer.Age: invalid range (x2)", list[0].String())
	assert.Len(t, adv.OfKind(errors.ErrTypeUnknownType), 1)

	var nilAdv *Advisories
	nilAdv.Add(errors.ErrTypeConstraint, "t", "f", "ignored")
	assert.Equal(t, 0, nilAdv.Len())
}
