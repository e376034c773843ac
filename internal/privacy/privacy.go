// Package privacy applies PII-handling strategies to generated values and columns.
package privacy

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/Rana718/synthgen/internal/schema"
	"github.com/Rana718/synthgen/internal/types"
)

const RedactedValue = "[REDACTED]"

// EffectiveStrategy picks the strategy for a field: its own pii setting, else
// the context default for sensitive fields, else realistic-fake.
func EffectiveStrategy(f schema.FieldSchema, ctx schema.GenerationContext) schema.PIIStrategy {
	if f.PII != "" {
		return f.PII
	}
	if IsSensitive(f) && ctx.DefaultPII != "" {
		return ctx.DefaultPII
	}
	return schema.PIIRealisticFake
}

// Apply transforms one value. Scramble is column-level and passes values
// through here; see ScrambleColumn.
func Apply(value any, fieldType schema.FieldType, strategy schema.PIIStrategy) any {
	if value == nil {
		return nil
	}
	switch strategy {
	case schema.PIIMasked:
		return Mask(value, fieldType)
	case schema.PIIRedacted:
		return RedactedValue
	}
	return value
}

// Mask partially hides a value: identifier-like types keep their last four
// characters, emails keep the first character and the domain.
func Mask(value any, fieldType schema.FieldType) string {
	s := fmt.Sprintf("%v", value)
	switch {
	case fieldType == schema.TypeEmail || fieldType == schema.TypeUPI:
		return maskEmail(s)
	case fieldType == schema.TypePhone || fieldType.IsNationalID() || fieldType.IsNumeric():
		return maskTrailing(s, 4)
	default:
		return maskLeading(s)
	}
}

func maskEmail(s string) string {
	at := strings.LastIndex(s, "@")
	if at <= 0 {
		return maskLeading(s)
	}
	return s[:1] + "***" + s[at:]
}

// maskTrailing replaces every letter or digit except the last keep with 'X',
// leaving separators in place so the shape stays recognizable.
func maskTrailing(s string, keep int) string {
	runes := []rune(s)
	visible := 0
	for i := len(runes) - 1; i >= 0; i-- {
		r := runes[i]
		if !isAlnum(r) {
			continue
		}
		if visible < keep {
			visible++
			continue
		}
		runes[i] = 'X'
	}
	return string(runes)
}

func maskLeading(s string) string {
	runes := []rune(s)
	if len(runes) <= 1 {
		return "*"
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-1)
}

func isAlnum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// ScrambleColumn permutes one column across rows in place. Columns with fewer
// than two distinct values are left untouched. It reports whether a shuffle
// happened.
func ScrambleColumn(rows []types.Row, field string, rng *rand.Rand) bool {
	if len(rows) < 2 {
		return false
	}
	values := make([]any, len(rows))
	distinct := make(map[string]struct{})
	for i, r := range rows {
		values[i] = r[field]
		distinct[fmt.Sprintf("%T:%v", r[field], r[field])] = struct{}{}
	}
	if len(distinct) < 2 {
		return false
	}
	rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
	for i, r := range rows {
		r[field] = values[i]
	}
	return true
}

// ScrambleTable shuffles every column of table whose effective strategy is
// scramble-column. It must run once, after all rows of the table exist.
func ScrambleTable(table schema.TableSchema, rows []types.Row, ctx schema.GenerationContext, skip map[string]bool, rng *rand.Rand) []string {
	var scrambled []string
	for _, f := range table.Fields {
		if skip[f.Name] {
			continue
		}
		if EffectiveStrategy(f, ctx) != schema.PIIScramble {
			continue
		}
		if ScrambleColumn(rows, f.Name, rng) {
			scrambled = append(scrambled, f.Name)
		}
	}
	return scrambled
}
