package domain

import (
	"fmt"
	"strings"
	"time"
)

// DiscountType selects how a rule's DiscountValue is interpreted.
type DiscountType string

const (
	// DiscountPercentage takes DiscountValue percent of the order subtotal.
	DiscountPercentage DiscountType = "percentage"
	// DiscountFixed takes DiscountValue off the order, never more than the subtotal.
	DiscountFixed DiscountType = "fixed"
)

// ParseDiscountType normalizes s into a DiscountType.
func ParseDiscountType(s string) (DiscountType, error) {
	dt := DiscountType(strings.ToLower(strings.TrimSpace(s)))
	switch dt {
	case DiscountPercentage, DiscountFixed:
		return dt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDiscountType, s)
}

var hundredPercent = MustMoney(100, 1)

// CustomerPricingRule is a discount rule configured by shop staff.
// The engine only ever reads rules; it never persists or mutates them.
type CustomerPricingRule struct {
	ID          string
	Name        string
	Description string

	// Conditions are ANDed together. A nil entry is ignored.
	Conditions []Condition

	DiscountType  DiscountType
	DiscountValue *Money

	// Priority orders rules ascending; ties are broken by ID.
	Priority int64
	// Stackable rules combine with every other applied rule. Non-stackable
	// rules compete for a single exclusive slot.
	Stackable bool
	// Active is a manual toggle independent of any date range.
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RuleParams carries the configurable fields of a new rule.
type RuleParams struct {
	Name          string
	Description   string
	Conditions    []Condition
	DiscountType  DiscountType
	DiscountValue *Money
	Priority      int64
	Stackable     bool
	Active        bool
}

// NewCustomerPricingRule creates a validated rule. Configuration surfaces use this so
// staff see configuration mistakes immediately; the matcher separately excludes any
// malformed rule that reaches it from elsewhere.
func NewCustomerPricingRule(id string, params RuleParams, now time.Time) (*CustomerPricingRule, error) {
	rule := &CustomerPricingRule{
		ID:           id,
		Name:         strings.TrimSpace(params.Name),
		Description:  params.Description,
		Conditions:   params.Conditions,
		DiscountType: params.DiscountType,
		Priority:     params.Priority,
		Stackable:    params.Stackable,
		Active:       params.Active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if params.DiscountValue != nil {
		rule.DiscountValue = params.DiscountValue.Copy()
	}

	if rule.Name == "" {
		return nil, ErrEmptyRuleName
	}
	if err := rule.validateTerms(); err != nil {
		return nil, err
	}

	return rule, nil
}

// IsWellFormed reports whether the rule's discount terms and conditions are usable.
// Malformed rules are never eligible.
func (r *CustomerPricingRule) IsWellFormed() bool {
	return r != nil && r.validateTerms() == nil
}

func (r *CustomerPricingRule) validateTerms() error {
	switch r.DiscountType {
	case DiscountPercentage, DiscountFixed:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDiscountType, r.DiscountType)
	}

	if r.DiscountValue == nil || r.DiscountValue.IsNegative() {
		return ErrInvalidDiscountValue
	}
	if r.DiscountType == DiscountPercentage && r.DiscountValue.GreaterThan(hundredPercent) {
		return ErrInvalidPercentage
	}

	for _, cond := range r.Conditions {
		if cond == nil {
			continue
		}
		if err := cond.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Condition returns the first condition of the given kind, if the rule carries one.
func (r *CustomerPricingRule) Condition(kind ConditionKind) (Condition, bool) {
	for _, cond := range r.Conditions {
		if cond != nil && cond.Kind() == kind {
			return cond, true
		}
	}
	return nil, false
}

// IsPercentage reports whether the rule discounts by percentage.
func (r *CustomerPricingRule) IsPercentage() bool {
	return r.DiscountType == DiscountPercentage
}

// Copy returns a copy that shares no mutable state with r.
func (r *CustomerPricingRule) Copy() *CustomerPricingRule {
	if r == nil {
		return nil
	}
	c := *r
	if r.DiscountValue != nil {
		c.DiscountValue = r.DiscountValue.Copy()
	}
	c.Conditions = append([]Condition(nil), r.Conditions...)
	return &c
}
