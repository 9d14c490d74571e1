package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `json:"name" validate:"required,max=10"`
	Kind  string   `json:"kind" validate:"required,oneof=percentage fixed"`
	Tiers []string `json:"tiers" validate:"dive,oneof=bronze silver gold"`
	Qty   int64    `json:"min_quantity" validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := Struct(sample{Name: "ok", Kind: "fixed", Tiers: []string{"gold"}})
		assert.NoError(t, err)
	})

	t.Run("reports fields by json name", func(t *testing.T) {
		err := Struct(sample{Kind: "bogo", Tiers: []string{"diamond"}, Qty: -1})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)

		var fields FieldErrors
		require.ErrorAs(t, err, &fields)
		assert.Equal(t, "is required", fields["name"])
		assert.Equal(t, "must be one of percentage fixed", fields["kind"])
		assert.Equal(t, "must be at least 0", fields["min_quantity"])
		assert.Contains(t, fields, "tiers[0]")
	})

	t.Run("message is stable", func(t *testing.T) {
		err := Struct(sample{Kind: "fixed", Qty: -1})
		assert.EqualError(t, err, "validation failed: min_quantity: must be at least 0; name: is required")
	})
}

func TestGetIsShared(t *testing.T) {
	assert.Same(t, Get(), Get())
}
