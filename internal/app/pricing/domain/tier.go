package domain

import (
	"fmt"
	"strings"
)

// CustomerTier is the loyalty tier a customer is billed under.
type CustomerTier string

const (
	TierBronze   CustomerTier = "bronze"
	TierSilver   CustomerTier = "silver"
	TierGold     CustomerTier = "gold"
	TierPlatinum CustomerTier = "platinum"

	// TierAny is only meaningful inside a tier condition: it matches every customer.
	TierAny CustomerTier = "any"
	// TierNone is what the extractor reports for a quote without a tiered customer.
	TierNone CustomerTier = "none"
)

// ParseTier normalizes s and checks it names a configurable tier (including "any").
func ParseTier(s string) (CustomerTier, error) {
	tier := CustomerTier(strings.ToLower(strings.TrimSpace(s)))
	if !tier.IsConfigurable() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTier, s)
	}
	return tier, nil
}

// IsConfigurable reports whether the tier may appear in a rule condition.
func (t CustomerTier) IsConfigurable() bool {
	switch t {
	case TierBronze, TierSilver, TierGold, TierPlatinum, TierAny:
		return true
	}
	return false
}

func (t CustomerTier) String() string {
	return string(t)
}
