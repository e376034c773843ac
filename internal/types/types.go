package types

import (
	"fmt"
	"time"

	"github.com/Rana718/synthgen/internal/errors"
	"github.com/Rana718/synthgen/internal/schema"
)

// Row maps field name to generated value.
type Row map[string]any

func (r Row) clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

type Column struct {
	Name       string
	Type       schema.FieldType
	PrimaryKey bool
}

// Table is a finished table handed to NewDataset, which takes ownership of it.
type Table struct {
	Name    string
	Columns []Column
	Rows    []Row
}

// Dataset is the immutable result of a generation run: table name -> ordered
// rows. Accessors return copies.
type Dataset struct {
	order       []string
	tables      map[string]*Table
	seed        int64
	generatedAt time.Time
}

// NewDataset takes ownership of tables; their order is the generation order.
func NewDataset(seed int64, tables []*Table) *Dataset {
	d := &Dataset{
		tables:      make(map[string]*Table, len(tables)),
		seed:        seed,
		generatedAt: time.Now().UTC(),
	}
	for _, t := range tables {
		d.order = append(d.order, t.Name)
		d.tables[t.Name] = t
	}
	return d
}

func (d *Dataset) Seed() int64 {
	return d.seed
}

func (d *Dataset) GeneratedAt() time.Time {
	return d.generatedAt
}

// TableNames lists tables in generation order.
func (d *Dataset) TableNames() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

func (d *Dataset) HasTable(name string) bool {
	_, ok := d.tables[name]
	return ok
}

func (d *Dataset) Columns(table string) []Column {
	t, ok := d.tables[table]
	if !ok {
		return nil
	}
	out := make([]Column, len(t.Columns))
	copy(out, t.Columns)
	return out
}

func (d *Dataset) RowCount(table string) int {
	if t, ok := d.tables[table]; ok {
		return len(t.Rows)
	}
	return 0
}

func (d *Dataset) Rows(table string) []Row {
	t, ok := d.tables[table]
	if !ok {
		return nil
	}
	out := make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.clone()
	}
	return out
}

// Values returns one column of a table in row order.
func (d *Dataset) Values(table, field string) []any {
	t, ok := d.tables[table]
	if !ok {
		return nil
	}
	out := make([]any, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[field]
	}
	return out
}

func (d *Dataset) TotalRows() int {
	total := 0
	for _, t := range d.tables {
		total += len(t.Rows)
	}
	return total
}

// Advisory is a non-fatal diagnostic. It never alters control flow.
type Advisory struct {
	Kind    errors.ErrorType
	Table   string
	Field   string
	Message string
	Count   int
}

func (a Advisory) String() string {
	loc := a.Table
	if a.Field != "" {
		loc = fmt.Sprintf("%s.%s", a.Table, a.Field)
	}
	if a.Count > 1 {
		return fmt.Sprintf("[%s] %s: %s (x%d)", a.Kind, loc, a.Message, a.Count)
	}
	return fmt.Sprintf("[%s] %s: %s", a.Kind, loc, a.Message)
}

// Advisories collects diagnostics, folding repeats of the same message into
// one entry with a count. A nil *Advisories discards everything.
type Advisories struct {
	items []Advisory
	index map[string]int
}

func NewAdvisories() *Advisories {
	return &Advisories{index: make(map[string]int)}
}

func (a *Advisories) Add(kind errors.ErrorType, table, field, message string) {
	if a == nil {
		return
	}
	if a.index == nil {
		a.index = make(map[string]int)
	}
	key := string(kind) + "\x00" + table + "\x00" + field + "\x00" + message
	if i, ok := a.index[key]; ok {
		a.items[i].Count++
		return
	}
	a.index[key] = len(a.items)
	a.items = append(a.items, Advisory{Kind: kind, Table: table, Field: field, Message: message, Count: 1})
}

func (a *Advisories) Addf(kind errors.ErrorType, table, field, format string, args ...any) {
	a.Add(kind, table, field, fmt.Sprintf(format, args...))
}

func (a *Advisories) List() []Advisory {
	if a == nil {
		return nil
	}
	out := make([]Advisory, len(a.items))
	copy(out, a.items)
	return out
}

func (a *Advisories) OfKind(kind errors.ErrorType) []Advisory {
	var out []Advisory
	for _, item := range a.List() {
		if item.Kind == kind {
			out = append(out, item)
		}
	}
	return out
}

func (a *Advisories) Len() int {
	if a == nil {
		return 0
	}
	return len(a.items)
}
