package domain

import "slices"

// Contribution is the share of the total discount one applied rule produced.
type Contribution struct {
	Rule *CustomerPricingRule
	// Amount is rounded to cents for display. The total is summed before rounding.
	Amount *Money
}

// EvaluationResult is the outcome of evaluating one quote against a rule set.
// It is computed fresh on every call and never cached.
type EvaluationResult struct {
	Discount      *Money
	AppliedRules  []*CustomerPricingRule
	Contributions []Contribution
	Subtotal      *Money
}

// HasDiscount reports whether any rule applied.
func (r *EvaluationResult) HasDiscount() bool {
	return r != nil && len(r.AppliedRules) > 0
}

// Resolve selects which eligible rules apply and computes the discount.
//
// eligible must be in matcher order. The first non-stackable rule takes the
// exclusive slot and every other non-stackable rule is dropped; all stackable
// rules apply alongside it. Applied rules keep matcher order and a rule ID
// applies at most once.
//
// The discount is rounded to cents and never exceeds the subtotal truncated
// to cents.
func Resolve(eligible []*CustomerPricingRule, facts Facts) *EvaluationResult {
	subtotal := facts.Subtotal
	if subtotal == nil || subtotal.IsNegative() {
		subtotal = Zero()
	}

	result := &EvaluationResult{
		Discount:      Zero(),
		AppliedRules:  []*CustomerPricingRule{},
		Contributions: []Contribution{},
		Subtotal:      subtotal.Copy(),
	}

	winner := slices.IndexFunc(eligible, func(rule *CustomerPricingRule) bool {
		return rule.IsWellFormed() && !rule.Stackable
	})
	ceiling := subtotal.Truncate(2)

	total := Zero()
	applied := make(map[string]bool, len(eligible))
	for i, rule := range eligible {
		if !rule.IsWellFormed() || (!rule.Stackable && i != winner) || applied[rule.ID] {
			continue
		}
		applied[rule.ID] = true

		amount := contribution(rule, subtotal)
		total = total.Add(amount)

		result.AppliedRules = append(result.AppliedRules, rule)
		result.Contributions = append(result.Contributions, Contribution{
			Rule:   rule,
			Amount: amount.Round(2).Min(ceiling),
		})
	}

	result.Discount = total.Round(2).Min(ceiling)
	return result
}

func contribution(rule *CustomerPricingRule, subtotal *Money) *Money {
	switch rule.DiscountType {
	case DiscountPercentage:
		return subtotal.Percent(rule.DiscountValue)
	case DiscountFixed:
		return rule.DiscountValue.Min(subtotal)
	default:
		return Zero()
	}
}
