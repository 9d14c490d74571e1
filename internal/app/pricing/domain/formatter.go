package domain

import (
	"fmt"
	"strings"
	"time"
)

// FormatDiscountDescription renders a rule's effect for display, e.g. "10% off"
// or "$25.00 off". It has no bearing on computed totals.
func FormatDiscountDescription(rule *CustomerPricingRule) string {
	if rule == nil {
		return ""
	}
	if rule.IsPercentage() {
		return FormatPercent(rule.DiscountValue) + " off"
	}
	return FormatMoney(rule.DiscountValue) + " off"
}

// FormatPercent renders a percentage without trailing zeros: 10%, 12.5%.
func FormatPercent(value *Money) string {
	s := value.Rat().FloatString(4)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s + "%"
}

// FormatMoney renders an amount in dollars with thousands separators: $1,250.00.
func FormatMoney(value *Money) string {
	s := value.Round(2).String()

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	whole, cents, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	return fmt.Sprintf("%s$%s.%s", sign, b.String(), cents)
}

// FormatConditionsSummary renders a rule's conditions for audit display, e.g.
// "tier gold/platinum; min qty 50; category banners". Rules without conditions
// read "all quotes".
func FormatConditionsSummary(rule *CustomerPricingRule) string {
	if rule == nil {
		return ""
	}

	parts := make([]string, 0, len(rule.Conditions))
	for _, cond := range rule.Conditions {
		switch c := cond.(type) {
		case TierCondition:
			if c.AllowsAnyTier() {
				continue
			}
			tiers := make([]string, len(c.Tiers))
			for i, tier := range c.Tiers {
				tiers[i] = tier.String()
			}
			parts = append(parts, "tier "+strings.Join(tiers, "/"))
		case MinQuantityCondition:
			parts = append(parts, fmt.Sprintf("min qty %d", c.Min))
		case MinSubtotalCondition:
			parts = append(parts, "min subtotal "+FormatMoney(c.Min))
		case CategoryCondition:
			if NormalizeCategory(c.Category) == "" {
				continue
			}
			parts = append(parts, "category "+NormalizeCategory(c.Category))
		case DateRangeCondition:
			if s := formatDateRange(c); s != "" {
				parts = append(parts, s)
			}
		}
	}

	if len(parts) == 0 {
		return "all quotes"
	}
	return strings.Join(parts, "; ")
}

func formatDateRange(c DateRangeCondition) string {
	const layout = time.DateOnly
	switch {
	case c.Start != nil && c.End != nil:
		return c.Start.UTC().Format(layout) + " to " + c.End.UTC().Format(layout)
	case c.Start != nil:
		return "from " + c.Start.UTC().Format(layout)
	case c.End != nil:
		return "until " + c.End.UTC().Format(layout)
	}
	return ""
}
