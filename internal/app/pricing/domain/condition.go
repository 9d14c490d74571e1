package domain

import (
	"fmt"
	"strings"
	"time"
)

// ConditionKind tags each condition variant a rule may carry.
type ConditionKind string

const (
	KindTier        ConditionKind = "tier"
	KindMinQuantity ConditionKind = "min_quantity"
	KindMinSubtotal ConditionKind = "min_subtotal"
	KindCategory    ConditionKind = "category"
	KindDateRange   ConditionKind = "date_range"
)

// Condition is one predicate of a pricing rule. The set of variants is closed:
// only the types in this file implement it, and the matcher dispatches on them
// with a type switch.
//
// A rule that does not carry a condition of some kind is unrestricted on that
// axis: absent conditions always pass.
type Condition interface {
	Kind() ConditionKind
	validate() error
}

// TierCondition restricts a rule to customers in one of Tiers.
// An empty list, or a list containing TierAny, matches every customer.
type TierCondition struct {
	Tiers []CustomerTier
}

// MinQuantityCondition requires the total unit quantity across all line items
// to be at least Min.
type MinQuantityCondition struct {
	Min int64
}

// MinSubtotalCondition requires the order subtotal to be at least Min.
type MinSubtotalCondition struct {
	Min *Money
}

// CategoryCondition requires at least one line item in Category.
// An empty category leaves the rule unrestricted.
type CategoryCondition struct {
	Category string
}

// DateRangeCondition requires the order date to fall within [Start, End].
// A nil bound is unbounded on that side. An End that falls exactly on UTC
// midnight is a date-only bound and covers that whole day.
type DateRangeCondition struct {
	Start *time.Time
	End   *time.Time
}

func (TierCondition) Kind() ConditionKind        { return KindTier }
func (MinQuantityCondition) Kind() ConditionKind { return KindMinQuantity }
func (MinSubtotalCondition) Kind() ConditionKind { return KindMinSubtotal }
func (CategoryCondition) Kind() ConditionKind    { return KindCategory }
func (DateRangeCondition) Kind() ConditionKind   { return KindDateRange }

func (c TierCondition) validate() error {
	for _, tier := range c.Tiers {
		if !tier.IsConfigurable() {
			return fmt.Errorf("%w: %q", ErrInvalidTier, tier)
		}
	}
	return nil
}

func (c MinQuantityCondition) validate() error {
	if c.Min < 0 {
		return fmt.Errorf("%w: min quantity %d", ErrInvalidMinimum, c.Min)
	}
	return nil
}

func (c MinSubtotalCondition) validate() error {
	if c.Min.IsNegative() {
		return fmt.Errorf("%w: min subtotal %s", ErrInvalidMinimum, c.Min)
	}
	return nil
}

func (c CategoryCondition) validate() error {
	return nil
}

func (c DateRangeCondition) validate() error {
	if c.Start != nil && c.End != nil && c.effectiveEnd().Before(c.Start.UTC()) {
		return ErrInvalidDateRange
	}
	return nil
}

// AllowsAnyTier reports whether the condition places no restriction on tier.
func (c TierCondition) AllowsAnyTier() bool {
	if len(c.Tiers) == 0 {
		return true
	}
	for _, tier := range c.Tiers {
		if tier == TierAny {
			return true
		}
	}
	return false
}

// Allows reports whether a customer in tier satisfies the condition.
func (c TierCondition) Allows(tier CustomerTier) bool {
	if c.AllowsAnyTier() {
		return true
	}
	for _, allowed := range c.Tiers {
		if allowed == tier {
			return true
		}
	}
	return false
}

// Contains reports whether t falls inside the range, both ends inclusive.
func (c DateRangeCondition) Contains(t time.Time) bool {
	if c.Start == nil && c.End == nil {
		return true
	}
	if t.IsZero() {
		return false
	}
	t = t.UTC()
	if c.Start != nil && t.Before(c.Start.UTC()) {
		return false
	}
	if c.End != nil && t.After(c.effectiveEnd()) {
		return false
	}
	return true
}

func (c DateRangeCondition) effectiveEnd() time.Time {
	end := c.End.UTC()
	if isDateOnly(end) {
		return end.Add(24*time.Hour - time.Nanosecond)
	}
	return end
}

func isDateOnly(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// NormalizeCategory is the comparison key for product categories.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
