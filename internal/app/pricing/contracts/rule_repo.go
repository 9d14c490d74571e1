package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
)

// RuleFilter narrows List results.
type RuleFilter struct {
	ActiveOnly bool

	// Limit of zero means no limit. Offset only applies to a limited list.
	Limit  int
	Offset int
}

// RuleRepository defines persistence for pricing rules.
// Write methods return mutations; use cases apply them through a CommitPlan.
type RuleRepository interface {
	// InsertMut creates a mutation inserting a new rule.
	InsertMut(rule *domain.CustomerPricingRule) (*spanner.Mutation, error)

	// SetActiveMut creates a mutation toggling a rule's active flag.
	SetActiveMut(ruleID string, active bool, at time.Time) *spanner.Mutation

	// GetByID returns domain.ErrRuleNotFound when the rule does not exist.
	GetByID(ctx context.Context, ruleID string) (*domain.CustomerPricingRule, error)

	// List returns rules ordered by priority, then id.
	List(ctx context.Context, filter *RuleFilter) ([]*domain.CustomerPricingRule, error)

	// Count returns how many rules match filter, ignoring Limit and Offset.
	Count(ctx context.Context, filter *RuleFilter) (int64, error)
}

// ActiveRuleSource supplies the rule set evaluations run against.
type ActiveRuleSource interface {
	ActiveRules(ctx context.Context) ([]*domain.CustomerPricingRule, error)
}

// RuleCacheInvalidator drops any cached copy of the active rule set.
// Rule writes call it after commit.
type RuleCacheInvalidator interface {
	Invalidate(ctx context.Context) error
}
