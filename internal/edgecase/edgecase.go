// Package edgecase decides, per row, which edge-case rule applies and which
// of its conditions target a given field.
//
// Selection runs in two steps. SampleTrials draws one Bernoulli trial per rule;
// Select picks exactly one rule uniformly among the successes. A row therefore
// has zero or one applied rule, and that rule may override several fields.
package edgecase

import (
	"math/rand"
	"strings"

	"github.com/Rana718/synthgen/internal/schema"
)

// SampleTrials returns the indices of rules whose trial succeeded, in rule order.
func SampleTrials(rng *rand.Rand, rules []schema.EdgeCaseRule) []int {
	var hits []int
	for i, r := range rules {
		if trial(rng, r.Percentage) {
			hits = append(hits, i)
		}
	}
	return hits
}

func trial(rng *rand.Rand, percentage float64) bool {
	switch {
	case percentage <= 0:
		// still consume a draw so the random stream does not depend on the
		// percentage values
		rng.Float64()
		return false
	case percentage >= 100:
		rng.Float64()
		return true
	}
	return rng.Float64()*100 < percentage
}

// Select picks one index uniformly from hits.
func Select(rng *rand.Rand, hits []int) (int, bool) {
	switch len(hits) {
	case 0:
		return -1, false
	case 1:
		return hits[0], true
	}
	return hits[rng.Intn(len(hits))], true
}

// RowRule runs both steps and returns the rule applied to the next row, or nil.
func RowRule(rng *rand.Rand, rules []schema.EdgeCaseRule) *schema.EdgeCaseRule {
	if len(rules) == 0 {
		return nil
	}
	idx, ok := Select(rng, SampleTrials(rng, rules))
	if !ok {
		return nil
	}
	return &rules[idx]
}

// MatchCondition returns the first condition of rule aimed at table.field.
// An empty condition table matches any table; names compare case-insensitively.
func MatchCondition(rule *schema.EdgeCaseRule, table, field string) (*schema.Condition, bool) {
	if rule == nil {
		return nil, false
	}
	for i := range rule.Conditions {
		c := &rule.Conditions[i]
		if c.Table != "" && !strings.EqualFold(strings.TrimSpace(c.Table), table) {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(c.Field), field) {
			return c, true
		}
	}
	return nil, false
}

// Targets reports whether any condition of any rule names table.field.
func Targets(rules []schema.EdgeCaseRule, table, field string) bool {
	for i := range rules {
		if _, ok := MatchCondition(&rules[i], table, field); ok {
			return true
		}
	}
	return false
}
