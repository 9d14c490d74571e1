//go:build integration

package repo

import (
	"context"
	"math/big"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/printshop-pricing/internal/models/m_pricing_rule"
	"github.com/light-bringer/printshop-pricing/internal/pkg/committer"
	"github.com/light-bringer/printshop-pricing/internal/testutil"
)

func TestRuleRepo_InsertAndGet(t *testing.T) {
	client := testutil.SetupSpannerTest(t)
	ctx := context.Background()
	repository := NewRuleRepo(client)

	rule := sampleRule(t)
	mut, err := repository.InsertMut(rule)
	require.NoError(t, err)
	_, err = client.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err)

	testutil.AssertRowCount(t, client, m_pricing_rule.TableName, 1)

	got, err := repository.GetByID(ctx, rule.ID)
	require.NoError(t, err)
	assert.Equal(t, rule.Name, got.Name)
	assert.True(t, rule.DiscountValue.Equals(got.DiscountValue))
	assert.Equal(t, domain.FormatConditionsSummary(rule), domain.FormatConditionsSummary(got))
}

func TestRuleRepo_GetMissing(t *testing.T) {
	client := testutil.SetupSpannerTest(t)

	_, err := NewRuleRepo(client).GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrRuleNotFound)
}

func TestRuleRepo_ListOrderingAndFilter(t *testing.T) {
	client := testutil.SetupSpannerTest(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, row := range []*m_pricing_rule.Data{
		{RuleID: "c", Name: "C", DiscountType: "fixed", DiscountValue: big.NewRat(5, 1), Priority: 2, Active: true, CreatedAt: now, UpdatedAt: now},
		{RuleID: "a", Name: "A", DiscountType: "fixed", DiscountValue: big.NewRat(5, 1), Priority: 2, Active: true, CreatedAt: now, UpdatedAt: now},
		{RuleID: "b", Name: "B", DiscountType: "fixed", DiscountValue: big.NewRat(5, 1), Priority: 1, Active: false, CreatedAt: now, UpdatedAt: now},
	} {
		testutil.SeedRawRule(t, client, row)
	}

	repository := NewRuleRepo(client)

	all, err := repository.List(ctx, &contracts.RuleFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, ruleIDs(all))

	active, err := repository.ActiveRules(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ruleIDs(active))

	limited, err := repository.List(ctx, &contracts.RuleFilter{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ruleIDs(limited))

	page, err := repository.List(ctx, &contracts.RuleFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ruleIDs(page))

	total, err := repository.Count(ctx, &contracts.RuleFilter{Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	activeTotal, err := repository.Count(ctx, &contracts.RuleFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, activeTotal)
}

func TestRuleRepo_SetActiveGuarded(t *testing.T) {
	client := testutil.SetupSpannerTest(t)
	ctx := context.Background()
	repository := NewRuleRepo(client)
	comm := committer.NewCommitter(client)

	rule := sampleRule(t)
	mut, err := repository.InsertMut(rule)
	require.NoError(t, err)
	_, err = client.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err)

	guard := committer.RowGuard{Table: m_pricing_rule.TableName, KeyColumn: m_pricing_rule.RuleID, Key: spanner.Key{rule.ID}}
	plan := committer.NewPlan()
	plan.Add(repository.SetActiveMut(rule.ID, false, time.Now().UTC()))
	require.NoError(t, comm.ApplyIfExists(ctx, guard, plan))

	got, err := repository.GetByID(ctx, rule.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	missing := committer.RowGuard{Table: m_pricing_rule.TableName, KeyColumn: m_pricing_rule.RuleID, Key: spanner.Key{"missing"}}
	plan = committer.NewPlan()
	plan.Add(repository.SetActiveMut("missing", true, time.Now().UTC()))
	assert.ErrorIs(t, comm.ApplyIfExists(ctx, missing, plan), committer.ErrRowNotFound)
}

func TestQuoteReader_GetByID(t *testing.T) {
	client := testutil.SetupSpannerTest(t)
	ctx := context.Background()
	created := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	quoteID := testutil.SeedQuote(t, client, "gold", created,
		testutil.LineFixture{Category: "banners", Quantity: 50, Total: 750},
		testutil.LineFixture{Category: "banners", Quantity: 25, Total: 250},
	)

	quote, err := NewQuoteReader(client).GetByID(ctx, quoteID)
	require.NoError(t, err)

	require.NotNil(t, quote.Customer)
	assert.Equal(t, domain.TierGold, quote.Customer.Tier)
	assert.Len(t, quote.LineItems, 2)
	assert.True(t, quote.CreatedAt.Equal(created))

	_, err = NewQuoteReader(client).GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrQuoteNotFound)
}

func ruleIDs(rules []*domain.CustomerPricingRule) []string {
	ids := make([]string, len(rules))
	for i, r := range rules {
		ids[i] = r.ID
	}
	return ids
}
