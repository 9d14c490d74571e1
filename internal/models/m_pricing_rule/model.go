package m_pricing_rule

import (
	"cloud.google.com/go/spanner"
)

// Model provides type-safe mutations on the pricing_rules table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a new rule. It fails at commit if the
// rule id already exists.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		data.RuleID,
		data.Name,
		data.Description,
		data.DiscountType,
		data.DiscountValue,
		data.Priority,
		data.Stackable,
		data.Active,
		data.Tiers,
		data.MinQuantity,
		data.MinSubtotal,
		data.Category,
		data.StartDate,
		data.EndDate,
		data.CreatedAt,
		data.UpdatedAt,
	})
}

// UpdateMut creates a mutation updating the given columns of one rule.
// It returns nil when there is nothing to update.
func (m *Model) UpdateMut(ruleID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, RuleID)
	values = append(values, ruleID)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}
