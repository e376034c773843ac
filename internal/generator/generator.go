// Package generator produces one value per field. Every generator is
// constraint-aware, takes an optional edge condition, and never fails: bad
// input degrades to a documented default plus an advisory.
package generator

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/Rana718/synthgen/internal/errors"
	"github.com/Rana718/synthgen/internal/faker"
	"github.com/Rana718/synthgen/internal/privacy"
	"github.com/Rana718/synthgen/internal/schema"
	"github.com/Rana718/synthgen/internal/types"
	"github.com/google/uuid"
)

// UnknownValue is emitted for fields whose type has no generator.
const UnknownValue = "N/A"

// maxAttempts bounds resampling for != conditions.
const maxAttempts = 16

type Generator struct {
	rng        *rand.Rand
	provider   faker.Provider
	ctx        schema.GenerationContext
	advisories *types.Advisories
	today      time.Time
}

// New builds a generator drawing from rng and provider. advisories may be nil.
func New(rng *rand.Rand, provider faker.Provider, ctx schema.GenerationContext, advisories *types.Advisories) *Generator {
	return &Generator{
		rng:        rng,
		provider:   provider,
		ctx:        ctx,
		advisories: advisories,
		today:      ctx.Today(),
	}
}

// Protect applies f's effective PII strategy to a raw or derived value.
func (g *Generator) Protect(f schema.FieldSchema, raw any) any {
	return privacy.Apply(raw, f.Type, privacy.EffectiveStrategy(f, g.ctx))
}

// Raw produces a value before any PII strategy is applied.
func (g *Generator) Raw(table string, f schema.FieldSchema, cond *schema.Condition) any {
	switch f.Type {
	case schema.TypeInt, schema.TypeFloat:
		return g.numeric(table, f, cond)
	case schema.TypeDate, schema.TypeDatetime:
		return g.date(table, f, cond)
	case schema.TypeCategory:
		return g.category(table, f, cond)
	case schema.TypeBool:
		return g.boolean(table, f, cond)
	case schema.TypeUUID:
		return g.literalOr(cond, g.uuid)
	case schema.TypeString, schema.TypeAuto, "":
		return g.literalOr(cond, func() any { return g.text(f) })
	}
	if fn, ok := g.contactFunc(f); ok {
		return g.literalOr(cond, fn)
	}
	g.advise(errors.ErrTypeUnknownType, table, f.Name, fmt.Sprintf("unknown field type %q, emitting %s", f.Type, UnknownValue))
	return UnknownValue
}

// PrimaryKey returns the index-th value (0-based) of a unique key sequence.
func (g *Generator) PrimaryKey(f schema.FieldSchema, index int) any {
	switch f.Type {
	case schema.TypeUUID:
		return g.uuid()
	case schema.TypeInt, schema.TypeFloat, schema.TypeAuto, "":
		start := int64(1)
		if r, err := schema.ParseNumericRange(f.Constraint); err == nil {
			start = int64(r.Min)
		}
		return start + int64(index)
	}
	prefix, width := "", 6
	if h, ok := f.Hint.(schema.CodeHint); ok {
		prefix = h.Prefix
		if h.Length > 0 {
			width = h.Length
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, width, index+1)
}

// literalOr short-circuits to the condition literal on ==, resamples on !=,
// and otherwise returns fn().
func (g *Generator) literalOr(cond *schema.Condition, fn func() any) any {
	if cond == nil {
		return fn()
	}
	switch cond.Operator {
	case schema.OpEq:
		return cond.ValueString()
	case schema.OpNe:
		return resample(fn, cond.ValueString())
	}
	return fn()
}

func resample(fn func() any, avoid string) any {
	v := fn()
	for i := 0; i < maxAttempts && fmt.Sprint(v) == avoid; i++ {
		v = fn()
	}
	return v
}

func (g *Generator) uuid() any {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (g *Generator) boolean(table string, f schema.FieldSchema, cond *schema.Condition) any {
	if cond != nil && (cond.Operator == schema.OpEq || cond.Operator == schema.OpNe) {
		want, err := strconv.ParseBool(strings.TrimSpace(cond.ValueString()))
		if err != nil {
			g.advise(errors.ErrTypeEdgeValue, table, f.Name, fmt.Sprintf("edge value %q is not a boolean", cond.ValueString()))
			return g.rng.Intn(2) == 1
		}
		if cond.Operator == schema.OpNe {
			return !want
		}
		return want
	}
	return g.rng.Intn(2) == 1
}

func (g *Generator) advise(kind errors.ErrorType, table, field, message string) {
	g.advisories.Add(kind, table, field, message)
}

// adviseError records a recovered error together with the fallback taken.
func (g *Generator) adviseError(table, field string, err error, fallback string) {
	kind, message := errors.Advisory(err)
	g.advise(kind, table, field, message+"; "+fallback)
}
