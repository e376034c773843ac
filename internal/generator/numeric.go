package generator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Rana718/synthgen/internal/canonical"
	"github.com/Rana718/synthgen/internal/errors"
	"github.com/Rana718/synthgen/internal/privacy"
	"github.com/Rana718/synthgen/internal/schema"
)

// fallbackRange is used when neither the narrowed, corrective nor base
// interval is usable.
var fallbackRange = schema.NumericRange{Min: 0, Max: 100}

var nonNegativeTokens = map[string]bool{
	"age": true, "salary": true, "price": true, "amount": true, "quantity": true,
	"qty": true, "count": true, "cost": true, "fee": true, "income": true,
	"weight": true, "height": true, "rating": true, "stock": true,
}

// nonNegative reports field names whose values cannot sensibly be negative.
func nonNegative(f schema.FieldSchema) bool {
	if f.Role == canonical.RoleAge || f.Role == canonical.RoleSalary {
		return true
	}
	for _, tok := range strings.Fields(canonical.Normalize(f.Name)) {
		if nonNegativeTokens[tok] {
			return true
		}
	}
	return false
}

func clampNonNegative(r schema.NumericRange) schema.NumericRange {
	return schema.NumericRange{Min: math.Max(r.Min, 0), Max: math.Max(r.Max, 0)}
}

// numericRange returns the field's base interval, falling back to the type
// default for a missing or malformed constraint.
func (g *Generator) numericRange(table string, f schema.FieldSchema) schema.NumericRange {
	c := strings.TrimSpace(f.Constraint)
	if c == "" {
		return schema.DefaultNumericRange(f.Type)
	}
	r, err := schema.ParseNumericRange(c)
	if err != nil {
		def := schema.DefaultNumericRange(f.Type)
		g.adviseError(table, f.Name, err, "using default "+formatRange(def))
		return def
	}
	return r
}

func (g *Generator) numeric(table string, f schema.FieldSchema, cond *schema.Condition) any {
	base := g.numericRange(table, f)
	if nonNegative(f) {
		base = clampNonNegative(base)
	}

	step := 1.0
	if f.Type == schema.TypeFloat {
		step = 0.01
	}

	target := base
	var avoid *float64
	if cond != nil {
		v, err := strconv.ParseFloat(strings.TrimSpace(cond.ValueString()), 64)
		if err != nil {
			g.advise(errors.ErrTypeEdgeValue, table, f.Name, fmt.Sprintf("edge value %q is not numeric, ignoring condition", cond.ValueString()))
		} else if cond.Operator == schema.OpNe {
			avoid = &v
		} else {
			target = g.narrowNumeric(table, f, base, cond.Operator, v, step)
		}
	}

	value := g.sampleNumeric(f.Type, target)
	if avoid != nil && target.Max > target.Min {
		for i := 0; i < maxAttempts && value == *avoid; i++ {
			value = g.sampleNumeric(f.Type, target)
		}
	}

	if g.ctx.DifferentialPrivacy {
		value = privacy.AddNoise(g.rng, value, target.Min, target.Max, g.ctx.Epsilon, decimals(f.Type))
		if f.Type == schema.TypeInt {
			value = clampInt(value, target)
		}
	}

	if f.Type == schema.TypeInt {
		return int64(math.Max(minIntFloat, math.Min(maxIntFloat, value)))
	}
	return value
}

// narrowNumeric intersects base with the edge condition. An == condition
// collapses to its value even outside base.
func (g *Generator) narrowNumeric(table string, f schema.FieldSchema, base schema.NumericRange, op schema.Operator, v, step float64) schema.NumericRange {
	r := base
	switch op {
	case schema.OpEq:
		return schema.NumericRange{Min: v, Max: v}
	case schema.OpGt:
		r.Min = math.Max(r.Min, v+step)
	case schema.OpGte:
		r.Min = math.Max(r.Min, v)
	case schema.OpLt:
		r.Max = math.Min(r.Max, v-step)
	case schema.OpLte:
		r.Max = math.Min(r.Max, v)
	}
	if g.sampleable(f.Type, r) {
		return r
	}

	window := correctiveWindow(op, v, step)
	usable := g.sampleable(f.Type, window)
	if nonNegative(f) {
		usable = usable && window.Max >= 0
		window = clampNonNegative(window)
		usable = usable && g.sampleable(f.Type, window)
	}
	if usable {
		g.advise(errors.ErrTypeEdgeValue, table, f.Name,
			fmt.Sprintf("edge condition %s %s lies outside %s; using %s", op, formatNumber(v), formatRange(base), formatRange(window)))
		return window
	}
	if g.sampleable(f.Type, base) {
		g.advise(errors.ErrTypeEdgeValue, table, f.Name,
			fmt.Sprintf("edge condition %s %s cannot be satisfied; using %s", op, formatNumber(v), formatRange(base)))
		return base
	}
	g.advise(errors.ErrTypeEdgeValue, table, f.Name,
		fmt.Sprintf("edge condition %s %s cannot be satisfied; using %s", op, formatNumber(v), formatRange(fallbackRange)))
	return fallbackRange
}

// correctiveWindow is a small interval on the satisfying side of v.
func correctiveWindow(op schema.Operator, v, step float64) schema.NumericRange {
	width := math.Max(math.Abs(v)*0.1, 10*step)
	switch op {
	case schema.OpGt:
		return schema.NumericRange{Min: v + step, Max: v + step + width}
	case schema.OpGte:
		return schema.NumericRange{Min: v, Max: v + width}
	case schema.OpLt:
		return schema.NumericRange{Min: v - step - width, Max: v - step}
	case schema.OpLte:
		return schema.NumericRange{Min: v - width, Max: v}
	}
	return schema.NumericRange{Min: v, Max: v}
}

// sampleable reports whether r holds at least one value of type t.
func (g *Generator) sampleable(t schema.FieldType, r schema.NumericRange) bool {
	if !r.Valid() {
		return false
	}
	if t == schema.TypeInt {
		return math.Ceil(r.Min) <= math.Floor(r.Max)
	}
	return true
}

// Bounds of the float64 values that convert to int64 without overflow.
var (
	minIntFloat = float64(math.MinInt64)
	maxIntFloat = math.Nextafter(float64(math.MaxInt64), 0)
)

func (g *Generator) sampleNumeric(t schema.FieldType, r schema.NumericRange) float64 {
	if t == schema.TypeInt {
		lo := math.Max(math.Ceil(r.Min), minIntFloat)
		hi := math.Min(math.Floor(r.Max), maxIntFloat)
		if lo > hi {
			return math.Round(r.Min)
		}
		span := hi - lo
		if span < 1<<62 {
			return lo + float64(g.rng.Int63n(int64(span)+1))
		}
		return math.Min(hi, lo+math.Floor(g.rng.Float64()*span))
	}
	v := privacy.Round(r.Min+g.rng.Float64()*(r.Max-r.Min), 2)
	return math.Max(r.Min, math.Min(r.Max, v))
}

func clampInt(v float64, r schema.NumericRange) float64 {
	lo, hi := math.Ceil(r.Min), math.Floor(r.Max)
	if lo > hi {
		return v
	}
	return math.Max(lo, math.Min(hi, v))
}

func decimals(t schema.FieldType) int {
	if t == schema.TypeInt {
		return 0
	}
	return 2
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatRange(r schema.NumericRange) string {
	return formatNumber(r.Min) + "-" + formatNumber(r.Max)
}
