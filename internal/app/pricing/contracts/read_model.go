package contracts

import (
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
)

// RuleView is a rule with its display strings, as returned by rule queries.
type RuleView struct {
	Rule              *domain.CustomerPricingRule
	EffectDescription string
	ConditionsSummary string
}

// NewRuleView renders the display strings for rule.
func NewRuleView(rule *domain.CustomerPricingRule) *RuleView {
	return &RuleView{
		Rule:              rule,
		EffectDescription: domain.FormatDiscountDescription(rule),
		ConditionsSummary: domain.FormatConditionsSummary(rule),
	}
}

// RuleList is the result of a list query.
type RuleList struct {
	Rules      []*RuleView
	TotalCount int64
}
