package m_pricing_rule

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data is one row of pricing_rules. Condition columns are nullable: NULL means
// the rule does not restrict on that axis. It also serves as the cached form
// of the active rule set, hence the json tags.
type Data struct {
	RuleID        string              `spanner:"rule_id" json:"rule_id"`
	Name          string              `spanner:"name" json:"name"`
	Description   string              `spanner:"description" json:"description"`
	DiscountType  string              `spanner:"discount_type" json:"discount_type"`
	DiscountValue *big.Rat            `spanner:"discount_value" json:"discount_value"`
	Priority      int64               `spanner:"priority" json:"priority"`
	Stackable     bool                `spanner:"stackable" json:"stackable"`
	Active        bool                `spanner:"active" json:"active"`
	Tiers         []string            `spanner:"tiers" json:"tiers"`
	MinQuantity   spanner.NullInt64   `spanner:"min_quantity" json:"min_quantity"`
	MinSubtotal   spanner.NullNumeric `spanner:"min_subtotal" json:"min_subtotal"`
	Category      spanner.NullString  `spanner:"category" json:"category"`
	StartDate     spanner.NullTime    `spanner:"start_date" json:"start_date"`
	EndDate       spanner.NullTime    `spanner:"end_date" json:"end_date"`
	CreatedAt     time.Time           `spanner:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `spanner:"updated_at" json:"updated_at"`
}
