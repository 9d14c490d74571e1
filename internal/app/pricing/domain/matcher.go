package domain

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// MatchEligible returns the rules whose conditions all hold for facts, ordered by
// ascending priority and then by ID. Inactive and malformed rules are skipped.
func MatchEligible(facts Facts, rules []*CustomerPricingRule) []*CustomerPricingRule {
	eligible := lo.Filter(rules, func(rule *CustomerPricingRule, _ int) bool {
		return isEligible(rule, facts)
	})
	slices.SortStableFunc(eligible, compareRules)
	return eligible
}

func compareRules(a, b *CustomerPricingRule) int {
	if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func isEligible(rule *CustomerPricingRule, facts Facts) bool {
	if rule == nil || !rule.Active || !rule.IsWellFormed() {
		return false
	}
	for _, cond := range rule.Conditions {
		if cond == nil {
			continue
		}
		if !conditionHolds(cond, facts) {
			return false
		}
	}
	return true
}

func conditionHolds(cond Condition, facts Facts) bool {
	switch c := cond.(type) {
	case TierCondition:
		return c.Allows(facts.Tier)
	case MinQuantityCondition:
		return facts.TotalQuantity >= c.Min
	case MinSubtotalCondition:
		return !facts.Subtotal.LessThan(c.Min)
	case CategoryCondition:
		return NormalizeCategory(c.Category) == "" || facts.HasCategory(c.Category)
	case DateRangeCondition:
		return c.Contains(facts.OrderDate)
	default:
		return false
	}
}
