package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rana718/synthgen/internal/errors"
	"github.com/Rana718/synthgen/internal/schema"
)

const (
	day              = 24 * time.Hour
	correctiveDays   = 30
	secondsPerDay    = 24 * 60 * 60
	dateRangeDisplay = "%s - %s"
)

func timestamped(f schema.FieldSchema) bool {
	return f.Type == schema.TypeDatetime || strings.EqualFold(strings.TrimSpace(f.Constraint), schema.DatetimeLiteral)
}

func (g *Generator) dateRange(table string, f schema.FieldSchema) schema.DateRange {
	c := strings.TrimSpace(f.Constraint)
	if c == "" || strings.EqualFold(c, schema.DatetimeLiteral) {
		return schema.DefaultDateRange(g.today)
	}
	r, err := schema.ParseDateRange(c)
	if err != nil {
		def := schema.DefaultDateRange(g.today)
		g.adviseError(table, f.Name, err, "using default "+formatDateRange(def))
		return def
	}
	return r
}

func (g *Generator) date(table string, f schema.FieldSchema, cond *schema.Condition) any {
	base := g.dateRange(table, f)
	target := base
	var avoid *time.Time

	if cond != nil {
		v, err := schema.ParseDate(cond.ValueString())
		if err != nil {
			g.advise(errors.ErrTypeEdgeValue, table, f.Name, fmt.Sprintf("edge value %q is not a date, ignoring condition", cond.ValueString()))
		} else if cond.Operator == schema.OpNe {
			avoid = &v
		} else {
			target = g.narrowDate(table, f, base, cond.Operator, v)
		}
	}

	d := g.sampleDate(target)
	if avoid != nil && target.Days() > 0 {
		for i := 0; i < maxAttempts && d.Equal(*avoid); i++ {
			d = g.sampleDate(target)
		}
	}

	if timestamped(f) {
		return d.Add(time.Duration(g.rng.Intn(secondsPerDay)) * time.Second).Format(schema.DatetimeLayout)
	}
	return d.Format(schema.DateLayout)
}

// narrowDate is narrowNumeric with day granularity.
func (g *Generator) narrowDate(table string, f schema.FieldSchema, base schema.DateRange, op schema.Operator, v time.Time) schema.DateRange {
	r := base
	switch op {
	case schema.OpEq:
		return schema.DateRange{Start: v, End: v}
	case schema.OpGt:
		r.Start = later(r.Start, v.Add(day))
	case schema.OpGte:
		r.Start = later(r.Start, v)
	case schema.OpLt:
		r.End = earlier(r.End, v.Add(-day))
	case schema.OpLte:
		r.End = earlier(r.End, v)
	}
	if r.Valid() {
		return r
	}

	window := dateWindow(op, v)
	g.advise(errors.ErrTypeEdgeValue, table, f.Name,
		fmt.Sprintf("edge condition %s %s lies outside %s; using %s", op, v.Format(schema.DateLayout), formatDateRange(base), formatDateRange(window)))
	return window
}

func dateWindow(op schema.Operator, v time.Time) schema.DateRange {
	switch op {
	case schema.OpGt:
		return schema.DateRange{Start: v.Add(day), End: v.AddDate(0, 0, 1+correctiveDays)}
	case schema.OpGte:
		return schema.DateRange{Start: v, End: v.AddDate(0, 0, correctiveDays)}
	case schema.OpLt:
		return schema.DateRange{Start: v.AddDate(0, 0, -1-correctiveDays), End: v.Add(-day)}
	case schema.OpLte:
		return schema.DateRange{Start: v.AddDate(0, 0, -correctiveDays), End: v}
	}
	return schema.DateRange{Start: v, End: v}
}

func (g *Generator) sampleDate(r schema.DateRange) time.Time {
	days := r.Days()
	if days <= 0 {
		return r.Start
	}
	return r.Start.AddDate(0, 0, g.rng.Intn(days+1))
}

func later(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

func earlier(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func formatDateRange(r schema.DateRange) string {
	return fmt.Sprintf(dateRangeDisplay, r.Start.Format(schema.DateLayout), r.End.Format(schema.DateLayout))
}
