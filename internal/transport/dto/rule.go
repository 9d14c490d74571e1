package dto

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/queries/list_rules"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/usecases/create_rule"
)

// RuleConditions holds the optional restrictions of a rule. Absent fields
// leave the rule unrestricted on that axis.
type RuleConditions struct {
	Tiers       []string         `json:"tiers,omitempty"`
	MinQuantity *int64           `json:"min_quantity,omitempty"`
	MinSubtotal *decimal.Decimal `json:"min_subtotal,omitempty"`
	Category    string           `json:"category,omitempty"`
	StartDate   *time.Time       `json:"start_date,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
}

// CreateRuleRequest is the body of a rule creation.
type CreateRuleRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	DiscountType  string           `json:"discount_type"`
	DiscountValue *decimal.Decimal `json:"discount_value"`
	Priority      int64            `json:"priority"`
	Stackable     bool             `json:"stackable"`
	Active        bool             `json:"active"`
	Conditions    RuleConditions   `json:"conditions"`
}

// SetRuleActiveRequest is the body of an active flag change.
type SetRuleActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// ChangeRuleActiveRequest names a rule and its new active flag. It is the
// RPC form of SetRuleActiveRequest, which takes the rule id from the path.
type ChangeRuleActiveRequest struct {
	RuleID string `json:"rule_id" validate:"required"`
	Active *bool  `json:"active" validate:"required"`
}

// GetRuleRequest names a rule.
type GetRuleRequest struct {
	RuleID string `json:"rule_id" validate:"required"`
}

// ListRulesRequest filters a rule listing.
type ListRulesRequest struct {
	ActiveOnly bool `json:"active_only" form:"active_only"`
	Limit      int  `json:"limit" form:"limit" validate:"gte=0"`
	Offset     int  `json:"offset" form:"offset" validate:"gte=0"`
}

// RuleResponse is a rule with its display strings.
type RuleResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	DiscountType      string          `json:"discount_type"`
	DiscountValue     decimal.Decimal `json:"discount_value"`
	Priority          int64           `json:"priority"`
	Stackable         bool            `json:"stackable"`
	Active            bool            `json:"active"`
	Conditions        RuleConditions  `json:"conditions"`
	Effect            string          `json:"effect"`
	ConditionsSummary string          `json:"conditions_summary"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ListRulesResponse is a page of rules.
type ListRulesResponse struct {
	Rules      []RuleResponse `json:"rules"`
	TotalCount int64          `json:"total_count"`
}

// ToRequest converts the body into a create rule request.
func (r *CreateRuleRequest) ToRequest() *create_rule.Request {
	return &create_rule.Request{
		Name:          r.Name,
		Description:   r.Description,
		DiscountType:  r.DiscountType,
		DiscountValue: optionalMoney(r.DiscountValue),
		Priority:      r.Priority,
		Stackable:     r.Stackable,
		Active:        r.Active,
		Tiers:         r.Conditions.Tiers,
		MinQuantity:   r.Conditions.MinQuantity,
		MinSubtotal:   optionalMoney(r.Conditions.MinSubtotal),
		Category:      r.Conditions.Category,
		StartDate:     r.Conditions.StartDate,
		EndDate:       r.Conditions.EndDate,
	}
}

// ToRequest converts the filter into a list rules request.
func (r *ListRulesRequest) ToRequest() *list_rules.Request {
	return &list_rules.Request{ActiveOnly: r.ActiveOnly, Limit: r.Limit, Offset: r.Offset}
}

// FromRuleView renders a rule view.
func FromRuleView(view *contracts.RuleView) RuleResponse {
	resp := FromRule(view.Rule)
	resp.Effect = view.EffectDescription
	resp.ConditionsSummary = view.ConditionsSummary
	return resp
}

// FromRule renders a rule, computing its display strings.
func FromRule(rule *domain.CustomerPricingRule) RuleResponse {
	return RuleResponse{
		ID:                rule.ID,
		Name:              rule.Name,
		Description:       rule.Description,
		DiscountType:      string(rule.DiscountType),
		DiscountValue:     decimalFromMoney(rule.DiscountValue),
		Priority:          rule.Priority,
		Stackable:         rule.Stackable,
		Active:            rule.Active,
		Conditions:        fromConditions(rule.Conditions),
		Effect:            domain.FormatDiscountDescription(rule),
		ConditionsSummary: domain.FormatConditionsSummary(rule),
		CreatedAt:         rule.CreatedAt,
		UpdatedAt:         rule.UpdatedAt,
	}
}

// FromRuleList renders a list result.
func FromRuleList(list *contracts.RuleList) ListRulesResponse {
	return ListRulesResponse{
		Rules: lo.Map(list.Rules, func(v *contracts.RuleView, _ int) RuleResponse {
			return FromRuleView(v)
		}),
		TotalCount: list.TotalCount,
	}
}

func fromConditions(conditions []domain.Condition) RuleConditions {
	var out RuleConditions
	for _, cond := range conditions {
		switch c := cond.(type) {
		case domain.TierCondition:
			out.Tiers = lo.Map(c.Tiers, func(t domain.CustomerTier, _ int) string { return t.String() })
		case domain.MinQuantityCondition:
			out.MinQuantity = lo.ToPtr(c.Min)
		case domain.MinSubtotalCondition:
			out.MinSubtotal = lo.ToPtr(decimalFromMoney(c.Min))
		case domain.CategoryCondition:
			out.Category = c.Category
		case domain.DateRangeCondition:
			out.StartDate = c.Start
			out.EndDate = c.End
		}
	}
	return out
}
