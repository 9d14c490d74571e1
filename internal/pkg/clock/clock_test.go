package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_IsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, NewRealClock().Now().Location())
}

func TestMockClock(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	clk := NewMockClock(start)
	assert.Equal(t, start, clk.Now())

	clk.Advance(36 * time.Hour)
	assert.Equal(t, time.Date(2024, 1, 16, 21, 0, 0, 0, time.UTC), clk.Now())

	clk.Set(start)
	assert.Equal(t, start, clk.Now())
}
