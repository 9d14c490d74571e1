package domain

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func percentRule(id string, priority int64, pct int64, stackable bool, conds ...Condition) *CustomerPricingRule {
	return &CustomerPricingRule{
		ID:            id,
		Name:          "rule " + id,
		Conditions:    conds,
		DiscountType:  DiscountPercentage,
		DiscountValue: MustMoney(pct, 1),
		Priority:      priority,
		Stackable:     stackable,
		Active:        true,
	}
}

func fixedRule(id string, priority int64, amount int64, stackable bool, conds ...Condition) *CustomerPricingRule {
	return &CustomerPricingRule{
		ID:            id,
		Name:          "rule " + id,
		Conditions:    conds,
		DiscountType:  DiscountFixed,
		DiscountValue: MustMoney(amount, 1),
		Priority:      priority,
		Stackable:     stackable,
		Active:        true,
	}
}

func quoteFor(tier CustomerTier, subtotal int64, createdAt time.Time, items ...LineItem) *Quote {
	return &Quote{
		ID:        "q-1",
		Customer:  &Customer{ID: "c-1", Name: "Acme Signs", Tier: tier},
		LineItems: items,
		Subtotal:  MustMoney(subtotal, 1),
		CreatedAt: createdAt,
	}
}

func item(category string, qty int64, total int64) LineItem {
	return LineItem{ProductCategory: category, Quantity: qty, LineTotal: MustMoney(total, 1)}
}

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func appliedIDs(result *EvaluationResult) []string {
	ids := make([]string, len(result.AppliedRules))
	for i, r := range result.AppliedRules {
		ids[i] = r.ID
	}
	return ids
}

func TestCalculateAutomaticDiscount_Scenarios(t *testing.T) {
	orderDate := utcDate(2024, 1, 15)

	t.Run("gold customer volume rule", func(t *testing.T) {
		rule := percentRule("vol-gold", 1, 10, false,
			TierCondition{Tiers: []CustomerTier{TierGold, TierPlatinum}},
			MinQuantityCondition{Min: 50},
		)
		quote := quoteFor(TierGold, 1000, orderDate, item("banners", 75, 1000))

		result := CalculateAutomaticDiscount(quote, []*CustomerPricingRule{rule})

		assert.Equal(t, "100.00", result.Discount.String())
		assert.Equal(t, []*CustomerPricingRule{rule}, result.AppliedRules)
	})

	t.Run("two stackable rules add up", func(t *testing.T) {
		rules := []*CustomerPricingRule{
			percentRule("five-pct", 1, 5, true),
			fixedRule("twenty-off", 2, 20, true),
		}
		quote := quoteFor(TierSilver, 500, orderDate, item("cards", 10, 500))

		result := CalculateAutomaticDiscount(quote, rules)

		assert.Equal(t, "45.00", result.Discount.String())
		assert.Equal(t, []string{"five-pct", "twenty-off"}, appliedIDs(result))
		require.Len(t, result.Contributions, 2)
		assert.Equal(t, "25.00", result.Contributions[0].Amount.String())
		assert.Equal(t, "20.00", result.Contributions[1].Amount.String())
	})

	t.Run("order after date range is excluded", func(t *testing.T) {
		start, end := utcDate(2024, 1, 1), utcDate(2024, 1, 31)
		rule := percentRule("january", 1, 15, true, DateRangeCondition{Start: &start, End: &end})
		quote := quoteFor(TierGold, 1000, utcDate(2024, 2, 1), item("banners", 75, 1000))

		result := CalculateAutomaticDiscount(quote, []*CustomerPricingRule{rule})

		assert.True(t, result.Discount.IsZero())
		assert.Empty(t, result.AppliedRules)
	})
}

func TestCalculateAutomaticDiscount_NoEligibleRules(t *testing.T) {
	quote := quoteFor(TierBronze, 200, utcDate(2024, 3, 1), item("flyers", 5, 200))

	t.Run("empty rule set", func(t *testing.T) {
		result := CalculateAutomaticDiscount(quote, nil)
		assert.True(t, result.Discount.IsZero())
		assert.Empty(t, result.AppliedRules)
		assert.False(t, result.HasDiscount())
	})

	t.Run("nothing matches", func(t *testing.T) {
		rules := []*CustomerPricingRule{
			percentRule("gold-only", 1, 10, false, TierCondition{Tiers: []CustomerTier{TierGold}}),
			percentRule("bulk", 2, 10, true, MinQuantityCondition{Min: 100}),
		}
		result := CalculateAutomaticDiscount(quote, rules)
		assert.True(t, result.Discount.IsZero())
		assert.Empty(t, result.AppliedRules)
	})

	t.Run("nil quote", func(t *testing.T) {
		result := CalculateAutomaticDiscount(nil, []*CustomerPricingRule{percentRule("all", 1, 10, true)})
		assert.True(t, result.Discount.IsZero())
		assert.True(t, result.Subtotal.IsZero())
	})
}

func TestCalculateAutomaticDiscount_Exclusivity(t *testing.T) {
	quote := quoteFor(TierGold, 1000, utcDate(2024, 5, 1), item("banners", 10, 1000))

	t.Run("lowest priority exclusive wins", func(t *testing.T) {
		rules := []*CustomerPricingRule{
			percentRule("p2", 2, 20, false),
			percentRule("p1", 1, 10, false),
		}
		result := CalculateAutomaticDiscount(quote, rules)

		assert.Equal(t, []string{"p1"}, appliedIDs(result))
		assert.Equal(t, "100.00", result.Discount.String())
	})

	t.Run("stackable rule joins the exclusive winner", func(t *testing.T) {
		rules := []*CustomerPricingRule{
			percentRule("p2", 2, 20, false),
			fixedRule("s3", 3, 50, true),
			percentRule("p1", 1, 10, false),
		}
		result := CalculateAutomaticDiscount(quote, rules)

		assert.Equal(t, []string{"p1", "s3"}, appliedIDs(result))
		assert.Equal(t, "150.00", result.Discount.String())
	})
}

func TestCalculateAutomaticDiscount_Capping(t *testing.T) {
	t.Run("fixed discount capped at subtotal", func(t *testing.T) {
		rule := fixedRule("big", 1, 500, false)
		quote := quoteFor(TierNone, 100, utcDate(2024, 5, 1), item("stickers", 1, 100))

		result := CalculateAutomaticDiscount(quote, []*CustomerPricingRule{rule})

		require.Len(t, result.Contributions, 1)
		assert.Equal(t, "100.00", result.Contributions[0].Amount.String())
		assert.Equal(t, "100.00", result.Discount.String())
	})

	t.Run("stacked total capped at subtotal", func(t *testing.T) {
		rules := []*CustomerPricingRule{
			percentRule("a", 1, 80, true),
			percentRule("b", 2, 60, true),
		}
		quote := quoteFor(TierNone, 250, utcDate(2024, 5, 1), item("stickers", 1, 250))

		result := CalculateAutomaticDiscount(quote, rules)

		assert.Equal(t, "250.00", result.Discount.String())
		assert.Len(t, result.AppliedRules, 2)
	})
}

func TestCalculateAutomaticDiscount_Rounding(t *testing.T) {
	rule := &CustomerPricingRule{
		ID:            "third",
		Name:          "odd percentage",
		DiscountType:  DiscountPercentage,
		DiscountValue: MustMoney(3333, 1000),
		Active:        true,
	}
	quote := quoteFor(TierNone, 100, utcDate(2024, 5, 1), item("posters", 1, 100))

	result := CalculateAutomaticDiscount(quote, []*CustomerPricingRule{rule})

	assert.Equal(t, "3.33", result.Discount.String())
}

func TestCalculateAutomaticDiscount_MalformedRulesFailClosed(t *testing.T) {
	start, end := utcDate(2024, 2, 1), utcDate(2024, 1, 1)
	rules := []*CustomerPricingRule{
		nil,
		fixedRule("negative", 1, -10, true),
		percentRule("over-100", 2, 150, true),
		percentRule("inverted-dates", 3, 10, true, DateRangeCondition{Start: &start, End: &end}),
		percentRule("bad-tier", 4, 10, true, TierCondition{Tiers: []CustomerTier{"diamond"}}),
		{ID: "no-value", Name: "no value", DiscountType: DiscountFixed, Active: true},
		{ID: "no-type", Name: "no type", DiscountValue: MustMoney(5, 1), Active: true},
		percentRule("good", 9, 10, true),
	}
	quote := quoteFor(TierGold, 100, utcDate(2024, 1, 15), item("banners", 1, 100))

	result := CalculateAutomaticDiscount(quote, rules)

	assert.Equal(t, []string{"good"}, appliedIDs(result))
	assert.Equal(t, "10.00", result.Discount.String())
}

func TestCalculateAutomaticDiscount_DoesNotMutateInputs(t *testing.T) {
	rules := []*CustomerPricingRule{
		percentRule("b", 1, 10, true),
		percentRule("a", 1, 10, true),
	}
	quote := quoteFor(TierGold, 100, utcDate(2024, 1, 15), item("banners", 1, 100))

	_ = CalculateAutomaticDiscount(quote, rules)

	assert.Equal(t, "b", rules[0].ID)
	assert.Equal(t, "a", rules[1].ID)
	assert.Equal(t, "100.00", quote.Subtotal.String())
}

func TestCalculateAutomaticDiscount_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tiers := []CustomerTier{TierBronze, TierSilver, TierGold, TierPlatinum, TierNone}
	categories := []string{"banners", "cards", "flyers", "stickers"}

	for i := 0; i < 200; i++ {
		var rules []*CustomerPricingRule
		for j := 0; j < rng.Intn(8); j++ {
			id := fmt.Sprintf("r%02d", rng.Intn(20))
			var conds []Condition
			if rng.Intn(2) == 0 {
				conds = append(conds, TierCondition{Tiers: []CustomerTier{tiers[rng.Intn(4)]}})
			}
			if rng.Intn(2) == 0 {
				conds = append(conds, MinQuantityCondition{Min: int64(rng.Intn(100))})
			}
			if rng.Intn(2) == 0 {
				conds = append(conds, CategoryCondition{Category: categories[rng.Intn(len(categories))]})
			}
			if rng.Intn(2) == 0 {
				rules = append(rules, percentRule(id, int64(rng.Intn(5)), int64(rng.Intn(101)), rng.Intn(2) == 0, conds...))
			} else {
				rules = append(rules, fixedRule(id, int64(rng.Intn(5)), int64(rng.Intn(1000)), rng.Intn(2) == 0, conds...))
			}
		}

		var items []LineItem
		for j := 0; j < 1+rng.Intn(4); j++ {
			items = append(items, item(categories[rng.Intn(len(categories))], int64(rng.Intn(60)), int64(rng.Intn(500))))
		}
		quote := quoteFor(tiers[rng.Intn(len(tiers))], 0, utcDate(2024, 6, 1), items...)
		// Sub-cent subtotals exercise rounding against the cap.
		quote.Subtotal = MustMoney(int64(rng.Intn(2_000_000)), 1000)

		first := CalculateAutomaticDiscount(quote, rules)
		second := CalculateAutomaticDiscount(quote, rules)

		assert.False(t, first.Discount.IsNegative())
		assert.False(t, first.Discount.GreaterThan(quote.Subtotal))
		assert.True(t, first.Discount.Equals(first.Discount.Round(2)))
		assert.True(t, first.Discount.Equals(second.Discount))
		assert.Equal(t, appliedIDs(first), appliedIDs(second))

		exclusive := 0
		for k, rule := range first.AppliedRules {
			if !rule.Stackable {
				exclusive++
			}
			if k > 0 {
				assert.LessOrEqual(t, compareRules(first.AppliedRules[k-1], rule), 0)
			}
		}
		assert.LessOrEqual(t, exclusive, 1)
	}
}

func TestCalculateAutomaticDiscount_SameCategoryRulesStack(t *testing.T) {
	tests := []struct {
		name         string
		rules        []*CustomerPricingRule
		subtotal     int64
		wantApplied  []string
		wantDiscount string
	}{
		{
			name: "both apply to the full subtotal",
			rules: []*CustomerPricingRule{
				percentRule("banner-10", 1, 10, true, CategoryCondition{Category: "banners"}),
				percentRule("banner-15", 2, 15, true, CategoryCondition{Category: "banners"}),
			},
			subtotal:     1000,
			wantApplied:  []string{"banner-10", "banner-15"},
			wantDiscount: "250.00",
		},
		{
			name: "category match ignores case",
			rules: []*CustomerPricingRule{
				percentRule("banners-a", 1, 10, true, CategoryCondition{Category: "banners"}),
				percentRule("banners-b", 2, 5, true, CategoryCondition{Category: "Banners"}),
			},
			subtotal:     400,
			wantApplied:  []string{"banners-a", "banners-b"},
			wantDiscount: "60.00",
		},
		{
			name: "sum is still capped at the subtotal",
			rules: []*CustomerPricingRule{
				percentRule("banner-60", 1, 60, true, CategoryCondition{Category: "banners"}),
				percentRule("banner-70", 2, 70, true, CategoryCondition{Category: "banners"}),
			},
			subtotal:     1000,
			wantApplied:  []string{"banner-60", "banner-70"},
			wantDiscount: "1000.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := quoteFor(TierGold, tt.subtotal, utcDate(2024, 1, 15), item("banners", 10, tt.subtotal))

			result := CalculateAutomaticDiscount(quote, tt.rules)

			assert.Equal(t, tt.wantApplied, appliedIDs(result))
			assert.Equal(t, tt.wantDiscount, result.Discount.String())
		})
	}
}
