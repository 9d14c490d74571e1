package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFacts(t *testing.T) {
	t.Run("aggregates quantities and categories", func(t *testing.T) {
		quote := quoteFor(TierPlatinum, 900, utcDate(2024, 4, 2),
			item("Banners", 30, 300),
			item("banners", 20, 200),
			item("cards", 100, 400),
		)

		facts := ExtractFacts(quote)

		assert.Equal(t, TierPlatinum, facts.Tier)
		assert.Equal(t, int64(150), facts.TotalQuantity)
		assert.Equal(t, "900.00", facts.Subtotal.String())
		assert.Equal(t, utcDate(2024, 4, 2), facts.OrderDate)

		require.Contains(t, facts.Categories, "banners")
		assert.Equal(t, int64(50), facts.Categories["banners"].Quantity)
		assert.Equal(t, "500.00", facts.Categories["banners"].Subtotal.String())
		assert.Equal(t, int64(100), facts.Categories["cards"].Quantity)
	})

	t.Run("nil quote yields empty facts", func(t *testing.T) {
		facts := ExtractFacts(nil)

		assert.Equal(t, TierNone, facts.Tier)
		assert.Zero(t, facts.TotalQuantity)
		assert.True(t, facts.Subtotal.IsZero())
		assert.Empty(t, facts.Categories)
		assert.True(t, facts.OrderDate.IsZero())
	})

	t.Run("missing customer or tier reads as none", func(t *testing.T) {
		noCustomer := &Quote{}
		noTier := &Quote{Customer: &Customer{ID: "c-9"}}

		assert.Equal(t, TierNone, ExtractFacts(noCustomer).Tier)
		assert.Equal(t, TierNone, ExtractFacts(noTier).Tier)
	})

	t.Run("subtotal derived from line totals when unset", func(t *testing.T) {
		quote := &Quote{LineItems: []LineItem{item("flyers", 10, 120), item("cards", 5, 80)}}

		assert.Equal(t, "200.00", ExtractFacts(quote).Subtotal.String())
	})

	t.Run("negative subtotal normalizes to zero", func(t *testing.T) {
		quote := &Quote{Subtotal: MustMoney(-50, 1)}

		assert.True(t, ExtractFacts(quote).Subtotal.IsZero())
	})

	t.Run("non-positive quantities do not count", func(t *testing.T) {
		quote := &Quote{LineItems: []LineItem{item("flyers", -5, 0), item("flyers", 0, 0), item("cards", 3, 30)}}

		facts := ExtractFacts(quote)

		assert.Equal(t, int64(3), facts.TotalQuantity)
		assert.True(t, facts.HasCategory("flyers"))
		assert.Zero(t, facts.Categories["flyers"].Quantity)
	})

	t.Run("uncategorized items are not a category", func(t *testing.T) {
		quote := &Quote{LineItems: []LineItem{item("  ", 3, 30)}}

		facts := ExtractFacts(quote)

		assert.Empty(t, facts.Categories)
		assert.Equal(t, int64(3), facts.TotalQuantity)
	})

	t.Run("does not alias the quote subtotal", func(t *testing.T) {
		quote := quoteFor(TierGold, 100, utcDate(2024, 1, 1))

		facts := ExtractFacts(quote)

		assert.NotSame(t, quote.Subtotal, facts.Subtotal)
	})
}
