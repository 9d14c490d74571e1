package list_rules

import (
	"context"

	"github.com/samber/lo"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// Request contains filtering parameters.
type Request struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}

// Query handles the list rules query use case.
type Query struct {
	repo contracts.RuleRepository
}

// NewQuery creates a new list rules query.
func NewQuery(repo contracts.RuleRepository) *Query {
	return &Query{repo: repo}
}

// Execute lists one page of rules ordered by priority, then id. TotalCount
// counts every matching rule, not just the page.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.RuleList, error) {
	if req == nil {
		req = &Request{}
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	filter := &contracts.RuleFilter{
		ActiveOnly: req.ActiveOnly,
		Limit:      limit,
		Offset:     max(req.Offset, 0),
	}

	rules, err := q.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := q.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &contracts.RuleList{
		Rules: lo.Map(rules, func(r *domain.CustomerPricingRule, _ int) *contracts.RuleView {
			return contracts.NewRuleView(r)
		}),
		TotalCount: total,
	}, nil
}
