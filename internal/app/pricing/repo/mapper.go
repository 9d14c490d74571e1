package repo

import (
	"fmt"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/printshop-pricing/internal/models/m_pricing_rule"
)

// ruleToData converts a rule into a pricing_rules row. The table holds at most
// one condition of each kind, so a rule carrying two of the same kind cannot be
// stored.
func ruleToData(rule *domain.CustomerPricingRule) (*m_pricing_rule.Data, error) {
	if rule.DiscountValue == nil {
		return nil, domain.ErrInvalidDiscountValue
	}

	data := &m_pricing_rule.Data{
		RuleID:        rule.ID,
		Name:          rule.Name,
		Description:   rule.Description,
		DiscountType:  string(rule.DiscountType),
		DiscountValue: rule.DiscountValue.Rat(),
		Priority:      rule.Priority,
		Stackable:     rule.Stackable,
		Active:        rule.Active,
		CreatedAt:     rule.CreatedAt,
		UpdatedAt:     rule.UpdatedAt,
	}

	seen := make(map[domain.ConditionKind]bool, len(rule.Conditions))
	for _, cond := range rule.Conditions {
		if cond == nil {
			continue
		}
		if seen[cond.Kind()] {
			return nil, fmt.Errorf("%w: more than one %s condition", domain.ErrInvalidRuleRequest, cond.Kind())
		}
		seen[cond.Kind()] = true

		switch c := cond.(type) {
		case domain.TierCondition:
			data.Tiers = make([]string, len(c.Tiers))
			for i, tier := range c.Tiers {
				data.Tiers[i] = tier.String()
			}
		case domain.MinQuantityCondition:
			data.MinQuantity = spanner.NullInt64{Int64: c.Min, Valid: true}
		case domain.MinSubtotalCondition:
			data.MinSubtotal = spanner.NullNumeric{Numeric: *c.Min.Rat(), Valid: true}
		case domain.CategoryCondition:
			data.Category = spanner.NullString{StringVal: domain.NormalizeCategory(c.Category), Valid: true}
		case domain.DateRangeCondition:
			data.StartDate = nullTime(c.Start)
			data.EndDate = nullTime(c.End)
		}
	}

	return data, nil
}

// dataToRule converts a stored row back into a rule. It never rejects a row:
// a malformed stored rule is returned as-is and the matcher excludes it.
func dataToRule(data *m_pricing_rule.Data) *domain.CustomerPricingRule {
	rule := &domain.CustomerPricingRule{
		ID:           data.RuleID,
		Name:         data.Name,
		Description:  data.Description,
		DiscountType: domain.DiscountType(data.DiscountType),
		Priority:     data.Priority,
		Stackable:    data.Stackable,
		Active:       data.Active,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
	if data.DiscountValue != nil {
		rule.DiscountValue = domain.NewMoneyFromRat(data.DiscountValue)
	}

	if data.Tiers != nil {
		tiers := make([]domain.CustomerTier, len(data.Tiers))
		for i, tier := range data.Tiers {
			tiers[i] = domain.CustomerTier(tier)
		}
		rule.Conditions = append(rule.Conditions, domain.TierCondition{Tiers: tiers})
	}
	if data.MinQuantity.Valid {
		rule.Conditions = append(rule.Conditions, domain.MinQuantityCondition{Min: data.MinQuantity.Int64})
	}
	if data.MinSubtotal.Valid {
		rule.Conditions = append(rule.Conditions, domain.MinSubtotalCondition{
			Min: domain.NewMoneyFromRat(&data.MinSubtotal.Numeric),
		})
	}
	if data.Category.Valid {
		rule.Conditions = append(rule.Conditions, domain.CategoryCondition{Category: data.Category.StringVal})
	}
	if data.StartDate.Valid || data.EndDate.Valid {
		rule.Conditions = append(rule.Conditions, domain.DateRangeCondition{
			Start: timePtr(data.StartDate),
			End:   timePtr(data.EndDate),
		})
	}

	return rule
}

func nullTime(t *time.Time) spanner.NullTime {
	if t == nil {
		return spanner.NullTime{}
	}
	return spanner.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t spanner.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
