package list_rules

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/printshop-pricing/internal/testutil"
)

func seededRepo(t *testing.T) *testutil.FakeRuleRepo {
	t.Helper()

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var rules []*domain.CustomerPricingRule
	for _, p := range []struct {
		id       string
		priority int64
		active   bool
	}{
		{"c", 2, true},
		{"a", 2, true},
		{"b", 1, false},
	} {
		rule, err := domain.NewCustomerPricingRule(p.id, domain.RuleParams{
			Name:          "Rule " + p.id,
			DiscountType:  domain.DiscountFixed,
			DiscountValue: domain.MustMoney(5, 1),
			Priority:      p.priority,
			Active:        p.active,
		}, created)
		require.NoError(t, err)
		rules = append(rules, rule)
	}
	return testutil.NewFakeRuleRepo(rules...)
}

func TestListRules(t *testing.T) {
	tests := []struct {
		name      string
		req       *Request
		wantIDs   []string
		wantTotal int64
		wantLimit int
	}{
		{name: "defaults", req: nil, wantIDs: []string{"b", "a", "c"}, wantTotal: 3, wantLimit: defaultLimit},
		{name: "active only", req: &Request{ActiveOnly: true}, wantIDs: []string{"a", "c"}, wantTotal: 2, wantLimit: defaultLimit},
		{name: "limited", req: &Request{Limit: 1}, wantIDs: []string{"b"}, wantTotal: 3, wantLimit: 1},
		{name: "second page", req: &Request{Limit: 2, Offset: 2}, wantIDs: []string{"c"}, wantTotal: 3, wantLimit: 2},
		{name: "past the end", req: &Request{Limit: 2, Offset: 9}, wantIDs: []string{}, wantTotal: 3, wantLimit: 2},
		{name: "negative offset", req: &Request{ActiveOnly: true, Offset: -4}, wantIDs: []string{"a", "c"}, wantTotal: 2, wantLimit: defaultLimit},
		{name: "capped", req: &Request{Limit: 10_000}, wantIDs: []string{"b", "a", "c"}, wantTotal: 3, wantLimit: maxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seededRepo(t)

			list, err := NewQuery(repo).Execute(context.Background(), tt.req)
			require.NoError(t, err)

			got := make([]string, len(list.Rules))
			for i, v := range list.Rules {
				got[i] = v.Rule.ID
				assert.NotEmpty(t, v.EffectDescription)
			}
			assert.Equal(t, tt.wantIDs, got)
			assert.Equal(t, tt.wantTotal, list.TotalCount)
			assert.Equal(t, tt.wantLimit, repo.LastFilter.Limit)
		})
	}
}

func TestListRules_RepoError(t *testing.T) {
	repo := seededRepo(t)
	repo.ListErr = errors.New("deadline exceeded")

	_, err := NewQuery(repo).Execute(context.Background(), &Request{})

	assert.EqualError(t, err, "deadline exceeded")
}
