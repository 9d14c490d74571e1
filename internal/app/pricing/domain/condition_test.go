package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateRangeCondition_Contains(t *testing.T) {
	start := utcDate(2025, 1, 1)
	end := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)
	c := DateRangeCondition{Start: &start, End: &end}

	t.Run("valid during period", func(t *testing.T) {
		assert.True(t, c.Contains(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)))
	})

	t.Run("invalid before start", func(t *testing.T) {
		assert.False(t, c.Contains(time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)))
	})

	t.Run("invalid after end", func(t *testing.T) {
		assert.False(t, c.Contains(utcDate(2026, 1, 1)))
	})

	t.Run("valid on start", func(t *testing.T) {
		assert.True(t, c.Contains(start))
	})

	t.Run("valid on end", func(t *testing.T) {
		assert.True(t, c.Contains(end))
	})

	t.Run("date-only end covers the whole day", func(t *testing.T) {
		dayStart, dayEnd := utcDate(2024, 1, 1), utcDate(2024, 1, 31)
		january := DateRangeCondition{Start: &dayStart, End: &dayEnd}

		assert.True(t, january.Contains(time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)))
		assert.False(t, january.Contains(utcDate(2024, 2, 1)))
	})

	t.Run("compares instants across zones", func(t *testing.T) {
		est := time.FixedZone("EST", -5*60*60)
		// 2024-12-31 20:00 EST is 2025-01-01 01:00 UTC.
		assert.True(t, c.Contains(time.Date(2024, 12, 31, 20, 0, 0, 0, est)))
	})
}

func TestTierCondition_Allows(t *testing.T) {
	c := TierCondition{Tiers: []CustomerTier{TierGold, TierPlatinum}}

	assert.True(t, c.Allows(TierGold))
	assert.True(t, c.Allows(TierPlatinum))
	assert.False(t, c.Allows(TierSilver))
	assert.False(t, c.Allows(TierNone))
	assert.True(t, TierCondition{Tiers: []CustomerTier{TierAny}}.Allows(TierNone))
}

func TestConditionKinds(t *testing.T) {
	assert.Equal(t, KindTier, TierCondition{}.Kind())
	assert.Equal(t, KindMinQuantity, MinQuantityCondition{}.Kind())
	assert.Equal(t, KindMinSubtotal, MinSubtotalCondition{}.Kind())
	assert.Equal(t, KindCategory, CategoryCondition{}.Kind())
	assert.Equal(t, KindDateRange, DateRangeCondition{}.Kind())
}
