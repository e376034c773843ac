// Package dependency derives field values from values generated earlier in
// the same row. Rules are keyed by semantic role, so a rule written for
// "admission_date -> discharge_date" keeps working when the display labels change.
package dependency

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/Rana718/synthgen/internal/canonical"
	"github.com/Rana718/synthgen/internal/faker"
	"github.com/Rana718/synthgen/internal/schema"
	"github.com/Rana718/synthgen/internal/types"
)

// Input is what a handler sees for one derived field.
type Input struct {
	Field     schema.FieldSchema
	Source    any
	Condition *schema.Condition
	Rand      *rand.Rand
	Locale    string
	Today     time.Time
}

// Handler computes a derived value. ok=false means "no opinion": the caller
// falls back to ordinary generation.
type Handler func(in Input) (value any, ok bool)

// Rule derives the field with role Target from the field with role Source.
type Rule struct {
	Target  string
	Source  string
	Handler Handler
}

type Resolver struct {
	rules  []Rule
	rng    *rand.Rand
	locale string
	today  time.Time
}

// New returns a resolver loaded with DefaultRules.
func New(rng *rand.Rand, ctx schema.GenerationContext) *Resolver {
	return &Resolver{
		rules:  DefaultRules(),
		rng:    rng,
		locale: schema.NormalizeLocale(ctx.Locale),
		today:  ctx.Today(),
	}
}

// Register appends a rule. Rules for the same target are tried in
// registration order.
func (r *Resolver) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// Resolve tries every rule targeting f's role whose source role is present
// in row. An == condition on f always wins over a derived value, so Resolve
// steps aside for it.
func (r *Resolver) Resolve(table schema.TableSchema, f schema.FieldSchema, row types.Row, cond *schema.Condition) (any, bool) {
	if f.Role == "" {
		return nil, false
	}
	if cond != nil && cond.Operator == schema.OpEq {
		return nil, false
	}
	locale := r.locale
	if f.Locale != "" {
		locale = schema.NormalizeLocale(f.Locale)
	}
	for _, rule := range r.rules {
		if rule.Target != f.Role {
			continue
		}
		src, ok := sourceValue(table, rule.Source, row)
		if !ok {
			continue
		}
		v, ok := rule.Handler(Input{
			Field:     f,
			Source:    src,
			Condition: cond,
			Rand:      r.rng,
			Locale:    locale,
			Today:     r.today,
		})
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Applicable reports whether some rule can derive f from a field of table.
func (r *Resolver) Applicable(table schema.TableSchema, f schema.FieldSchema) bool {
	if f.Role == "" || !r.HasRule(f.Role) {
		return false
	}
	for _, rule := range r.rules {
		if rule.Target != f.Role {
			continue
		}
		for _, src := range table.Fields {
			if src.Role == rule.Source && !strings.EqualFold(src.Name, f.Name) {
				return true
			}
		}
	}
	return false
}

// HasRule reports whether any rule targets role.
func (r *Resolver) HasRule(role string) bool {
	for _, rule := range r.rules {
		if rule.Target == role {
			return true
		}
	}
	return false
}

func sourceValue(table schema.TableSchema, role string, row types.Row) (any, bool) {
	for _, f := range table.Fields {
		if f.Role != role {
			continue
		}
		if v, ok := lookup(row, f.Name); ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// lookup matches field names case-insensitively.
func lookup(row types.Row, name string) (any, bool) {
	if v, ok := row[name]; ok {
		return v, true
	}
	for k, v := range row {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

func DefaultRules() []Rule {
	return []Rule{
		{Target: canonical.RoleDischargeDate, Source: canonical.RoleAdmissionDate, Handler: DateOffset(1, 30)},
		{Target: canonical.RoleEndDate, Source: canonical.RoleStartDate, Handler: DateOffset(1, 365)},
		{Target: canonical.RoleDeliveryDate, Source: canonical.RoleOrderDate, Handler: DateOffset(1, 14)},
		{Target: canonical.RoleCity, Source: canonical.RoleState, Handler: Lookup(faker.CitiesForState)},
		{Target: canonical.RoleCurrency, Source: canonical.RoleCountry, Handler: Lookup(single(faker.CurrencyForCountry))},
		{Target: canonical.RoleEmail, Source: canonical.RoleFullName, Handler: EmailFromName},
		{Target: canonical.RoleAge, Source: canonical.RoleDateOfBirth, Handler: AgeFromBirthDate},
	}
}

const maxAttempts = 8

// DateOffset derives a date minDays..maxDays after the source date. When the
// target declares its own date range the offset window is clipped to it, and
// an empty intersection yields no opinion.
func DateOffset(minDays, maxDays int) Handler {
	return func(in Input) (any, bool) {
		base, ok := asDate(in.Source)
		if !ok {
			return nil, false
		}
		lo, hi := base.AddDate(0, 0, minDays), base.AddDate(0, 0, maxDays)
		if r, ok := declaredDateRange(in.Field); ok {
			if r.Start.After(lo) {
				lo = r.Start
			}
			if r.End.Before(hi) {
				hi = r.End
			}
		}
		if lo.After(hi) {
			return nil, false
		}
		span := int(hi.Sub(lo).Hours() / 24)
		for i := 0; i < maxAttempts; i++ {
			d := lo.AddDate(0, 0, in.Rand.Intn(span+1))
			if dateSatisfies(d, in.Condition) {
				return formatDate(d, in.Field), true
			}
		}
		return nil, false
	}
}

// Lookup derives a value drawn from the table entries of the source value.
// A source value with no entry yields no opinion.
func Lookup(table func(string) ([]string, bool)) Handler {
	return func(in Input) (any, bool) {
		key, ok := in.Source.(string)
		if !ok {
			return nil, false
		}
		values, ok := table(key)
		if !ok || len(values) == 0 {
			return nil, false
		}
		if in.Condition != nil && in.Condition.Operator == schema.OpNe {
			values = without(values, in.Condition.ValueString())
			if len(values) == 0 {
				return nil, false
			}
		}
		return values[in.Rand.Intn(len(values))], true
	}
}

func single(fn func(string) (string, bool)) func(string) ([]string, bool) {
	return func(key string) ([]string, bool) {
		v, ok := fn(key)
		if !ok {
			return nil, false
		}
		return []string{v}, true
	}
}

// EmailFromName builds "first.last<NN>@host" from a generated full name.
func EmailFromName(in Input) (any, bool) {
	name, ok := in.Source.(string)
	if !ok {
		return nil, false
	}
	var parts []string
	for _, w := range strings.Fields(strings.ToLower(name)) {
		w = strings.Map(func(r rune) rune {
			if r >= 'a' && r <= 'z' {
				return r
			}
			return -1
		}, w)
		if w != "" {
			parts = append(parts, w)
		}
	}
	if len(parts) == 0 {
		return nil, false
	}
	hosts := faker.MailHosts(in.Locale)
	return fmt.Sprintf("%s%d@%s", strings.Join(parts, "."), 1+in.Rand.Intn(99), hosts[in.Rand.Intn(len(hosts))]), true
}

// AgeFromBirthDate computes completed years between the birth date and today.
func AgeFromBirthDate(in Input) (any, bool) {
	dob, ok := asDate(in.Source)
	if !ok || dob.After(in.Today) {
		return nil, false
	}
	age := in.Today.Year() - dob.Year()
	if in.Today.Month() < dob.Month() || (in.Today.Month() == dob.Month() && in.Today.Day() < dob.Day()) {
		age--
	}
	if !numberSatisfies(float64(age), in.Condition) {
		return nil, false
	}
	if r, ok := declaredNumericRange(in.Field); ok && (float64(age) < r.Min || float64(age) > r.Max) {
		return nil, false
	}
	if in.Field.Type == schema.TypeFloat {
		return float64(age), true
	}
	return int64(age), true
}

func asDate(v any) (time.Time, bool) {
	switch s := v.(type) {
	case time.Time:
		return time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC), true
	case string:
		t, err := schema.ParseDate(s)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// declaredDateRange reads f's own "start - end" constraint, if it has one.
func declaredDateRange(f schema.FieldSchema) (schema.DateRange, bool) {
	c := strings.TrimSpace(f.Constraint)
	if c == "" || strings.EqualFold(c, schema.DatetimeLiteral) {
		return schema.DateRange{}, false
	}
	r, err := schema.ParseDateRange(c)
	if err != nil {
		return schema.DateRange{}, false
	}
	return r, true
}

func declaredNumericRange(f schema.FieldSchema) (schema.NumericRange, bool) {
	c := strings.TrimSpace(f.Constraint)
	if c == "" {
		return schema.NumericRange{}, false
	}
	r, err := schema.ParseNumericRange(c)
	if err != nil {
		return schema.NumericRange{}, false
	}
	return r, true
}

func formatDate(d time.Time, f schema.FieldSchema) string {
	if f.Type == schema.TypeDatetime || strings.EqualFold(strings.TrimSpace(f.Constraint), schema.DatetimeLiteral) {
		return d.Format(schema.DatetimeLayout)
	}
	return d.Format(schema.DateLayout)
}

func dateSatisfies(d time.Time, c *schema.Condition) bool {
	if c == nil {
		return true
	}
	want, err := schema.ParseDate(c.ValueString())
	if err != nil {
		return true
	}
	return compare(d.Sub(want).Hours(), c.Operator)
}

func numberSatisfies(v float64, c *schema.Condition) bool {
	if c == nil {
		return true
	}
	want, err := strconv.ParseFloat(strings.TrimSpace(c.ValueString()), 64)
	if err != nil {
		return true
	}
	return compare(v-want, c.Operator)
}

// compare checks the sign of diff (value - condition value) against op.
func compare(diff float64, op schema.Operator) bool {
	switch op {
	case schema.OpEq:
		return diff == 0
	case schema.OpNe:
		return diff != 0
	case schema.OpGt:
		return diff > 0
	case schema.OpLt:
		return diff < 0
	case schema.OpGte:
		return diff >= 0
	case schema.OpLte:
		return diff <= 0
	}
	return true
}

func without(values []string, drop string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !strings.EqualFold(v, drop) {
			out = append(out, v)
		}
	}
	return out
}
