package m_pricing_rule

// Field name constants for the pricing_rules table.
const (
	TableName = "pricing_rules"

	RuleID        = "rule_id"
	Name          = "name"
	Description   = "description"
	DiscountType  = "discount_type"
	DiscountValue = "discount_value"
	Priority      = "priority"
	Stackable     = "stackable"
	Active        = "active"
	Tiers         = "tiers"
	MinQuantity   = "min_quantity"
	MinSubtotal   = "min_subtotal"
	Category      = "category"
	StartDate     = "start_date"
	EndDate       = "end_date"
	CreatedAt     = "created_at"
	UpdatedAt     = "updated_at"
)

// Columns lists every column in Data order.
var Columns = []string{
	RuleID,
	Name,
	Description,
	DiscountType,
	DiscountValue,
	Priority,
	Stackable,
	Active,
	Tiers,
	MinQuantity,
	MinSubtotal,
	Category,
	StartDate,
	EndDate,
	CreatedAt,
	UpdatedAt,
}
