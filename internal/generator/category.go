package generator

import (
	"fmt"
	"strings"

	"github.com/Rana718/synthgen/internal/errors"
	"github.com/Rana718/synthgen/internal/schema"
)

func (g *Generator) categories(table string, f schema.FieldSchema) []string {
	values, err := schema.ParseCategories(f.Constraint)
	if err != nil {
		values = schema.DefaultCategories()
		g.adviseError(table, f.Name, err, "using default "+strings.Join(values, ", "))
	}
	return values
}

// category picks uniformly. An == condition is honoured only for a member of
// the list; anything else is reported and ignored.
func (g *Generator) category(table string, f schema.FieldSchema, cond *schema.Condition) any {
	values := g.categories(table, f)
	if cond == nil {
		return g.pick(values)
	}

	want := strings.TrimSpace(cond.ValueString())
	switch cond.Operator {
	case schema.OpEq:
		for _, v := range values {
			if strings.EqualFold(v, want) {
				return v
			}
		}
		g.advise(errors.ErrTypeEdgeValue, table, f.Name, fmt.Sprintf("edge value %q is not one of the categories, choosing randomly", want))
	case schema.OpNe:
		rest := make([]string, 0, len(values))
		for _, v := range values {
			if !strings.EqualFold(v, want) {
				rest = append(rest, v)
			}
		}
		if len(rest) > 0 {
			return g.pick(rest)
		}
		g.advise(errors.ErrTypeEdgeValue, table, f.Name, fmt.Sprintf("edge condition != %q excludes every category", want))
	default:
		g.advise(errors.ErrTypeEdgeValue, table, f.Name, fmt.Sprintf("operator %s does not apply to categories", cond.Operator))
	}
	return g.pick(values)
}

func (g *Generator) pick(values []string) string {
	return values[g.rng.Intn(len(values))]
}
