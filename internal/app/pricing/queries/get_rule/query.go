package get_rule

import (
	"context"
	"fmt"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
)

// Query handles the get rule query use case.
type Query struct {
	repo contracts.RuleRepository
}

// NewQuery creates a new get rule query.
func NewQuery(repo contracts.RuleRepository) *Query {
	return &Query{repo: repo}
}

// Execute retrieves a rule with its display strings.
func (q *Query) Execute(ctx context.Context, ruleID string) (*contracts.RuleView, error) {
	if ruleID == "" {
		return nil, fmt.Errorf("%w: rule id is required", domain.ErrInvalidRuleRequest)
	}

	rule, err := q.repo.GetByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	return contracts.NewRuleView(rule), nil
}
