package m_quote

import (
	"cloud.google.com/go/spanner"
)

// Model builds mutations for the quote tables. The service never writes quotes
// in production; these exist for seeding fixtures and local data.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

func (m *Model) InsertCustomerMut(data *CustomerData) *spanner.Mutation {
	return spanner.InsertOrUpdate(CustomersTable, CustomerColumns, []interface{}{
		data.CustomerID,
		data.Name,
		data.Tier,
	})
}

func (m *Model) InsertQuoteMut(data *QuoteData) *spanner.Mutation {
	return spanner.InsertOrUpdate(QuotesTable, QuoteColumns, []interface{}{
		data.QuoteID,
		data.CustomerID,
		data.Subtotal,
		data.CreatedAt,
	})
}

func (m *Model) InsertLineItemMut(data *LineItemData) *spanner.Mutation {
	return spanner.InsertOrUpdate(LineItemsTable, LineItemColumns, []interface{}{
		data.QuoteID,
		data.LineItemID,
		data.Description,
		data.Quantity,
		data.ProductCategory,
		data.LineTotal,
	})
}
