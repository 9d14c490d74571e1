package testutil

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/printshop-pricing/internal/models/m_pricing_rule"
	"github.com/light-bringer/printshop-pricing/internal/pkg/committer"
)

// FakeRuleRepo is an in-memory contracts.RuleRepository. Writes are staged by
// the *Mut methods and only become visible once Flush runs, which FakeApplier
// does on a successful commit.
type FakeRuleRepo struct {
	mu     sync.Mutex
	rules  map[string]*domain.CustomerPricingRule
	staged []func()

	ListErr    error
	LastFilter *contracts.RuleFilter
}

// NewFakeRuleRepo creates a repo holding copies of rules.
func NewFakeRuleRepo(rules ...*domain.CustomerPricingRule) *FakeRuleRepo {
	repo := &FakeRuleRepo{rules: make(map[string]*domain.CustomerPricingRule)}
	for _, r := range rules {
		repo.rules[r.ID] = r.Copy()
	}
	return repo
}

func (f *FakeRuleRepo) InsertMut(rule *domain.CustomerPricingRule) (*spanner.Mutation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := rule.Copy()
	f.staged = append(f.staged, func() { f.rules[stored.ID] = stored })
	return spanner.Insert(m_pricing_rule.TableName, []string{m_pricing_rule.RuleID}, []interface{}{rule.ID}), nil
}

func (f *FakeRuleRepo) SetActiveMut(ruleID string, active bool, at time.Time) *spanner.Mutation {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.staged = append(f.staged, func() {
		if r, ok := f.rules[ruleID]; ok {
			r.Active = active
			r.UpdatedAt = at
		}
	})
	return spanner.Update(m_pricing_rule.TableName,
		[]string{m_pricing_rule.RuleID, m_pricing_rule.Active},
		[]interface{}{ruleID, active})
}

func (f *FakeRuleRepo) GetByID(_ context.Context, ruleID string) (*domain.CustomerPricingRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.rules[ruleID]
	if !ok {
		return nil, domain.ErrRuleNotFound
	}
	return r.Copy(), nil
}

func (f *FakeRuleRepo) List(_ context.Context, filter *contracts.RuleFilter) ([]*domain.CustomerPricingRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.LastFilter = filter
	if f.ListErr != nil {
		return nil, f.ListErr
	}

	out := f.matching(filter)
	if filter != nil && filter.Limit > 0 {
		out = out[min(filter.Offset, len(out)):]
		out = out[:min(filter.Limit, len(out))]
	}
	return out, nil
}

func (f *FakeRuleRepo) Count(_ context.Context, filter *contracts.RuleFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ListErr != nil {
		return 0, f.ListErr
	}
	return int64(len(f.matching(filter))), nil
}

func (f *FakeRuleRepo) matching(filter *contracts.RuleFilter) []*domain.CustomerPricingRule {
	out := make([]*domain.CustomerPricingRule, 0, len(f.rules))
	for _, r := range f.rules {
		if filter != nil && filter.ActiveOnly && !r.Active {
			continue
		}
		out = append(out, r.Copy())
	}
	slices.SortFunc(out, func(a, b *domain.CustomerPricingRule) int {
		return cmp.Or(cmp.Compare(a.Priority, b.Priority), cmp.Compare(a.ID, b.ID))
	})
	return out
}

// ActiveRules lets the fake stand in for a contracts.ActiveRuleSource.
func (f *FakeRuleRepo) ActiveRules(ctx context.Context) ([]*domain.CustomerPricingRule, error) {
	return f.List(ctx, &contracts.RuleFilter{ActiveOnly: true})
}

// Has reports whether a rule is stored.
func (f *FakeRuleRepo) Has(ruleID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rules[ruleID]
	return ok
}

// Flush makes staged writes visible.
func (f *FakeRuleRepo) Flush() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, apply := range f.staged {
		apply()
	}
	f.staged = nil
}

// Discard drops staged writes.
func (f *FakeRuleRepo) Discard() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.staged = nil
}

// FakeApplier records plans instead of talking to Spanner.
type FakeApplier struct {
	Repo  *FakeRuleRepo
	Err   error
	Plans []*committer.CommitPlan
}

func (a *FakeApplier) Apply(_ context.Context, plan *committer.CommitPlan) error {
	if a.Err != nil {
		a.Repo.Discard()
		return a.Err
	}
	a.Plans = append(a.Plans, plan)
	a.Repo.Flush()
	return nil
}

func (a *FakeApplier) ApplyIfExists(ctx context.Context, guard committer.RowGuard, plan *committer.CommitPlan) error {
	if id, ok := guard.Key[0].(string); !ok || !a.Repo.Has(id) {
		a.Repo.Discard()
		return committer.ErrRowNotFound
	}
	return a.Apply(ctx, plan)
}

// FakeInvalidator counts invalidations.
type FakeInvalidator struct {
	mu    sync.Mutex
	Calls int
	Err   error
}

func (f *FakeInvalidator) Invalidate(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	return f.Err
}

// FakeQuoteReader serves quotes from a map.
type FakeQuoteReader struct {
	Quotes map[string]*domain.Quote
}

func (f *FakeQuoteReader) GetByID(_ context.Context, quoteID string) (*domain.Quote, error) {
	q, ok := f.Quotes[quoteID]
	if !ok {
		return nil, domain.ErrQuoteNotFound
	}
	return q, nil
}
