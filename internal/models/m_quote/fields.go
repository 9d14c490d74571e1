package m_quote

// Tables read by the quote reader. Quotes are owned by the quoting service;
// this service only reads them.
const (
	CustomersTable = "customers"
	QuotesTable    = "quotes"
	LineItemsTable = "quote_line_items"
)

// customers columns.
const (
	CustomerID   = "customer_id"
	CustomerName = "name"
	CustomerTier = "tier"
)

// quotes columns.
const (
	QuoteID         = "quote_id"
	QuoteCustomerID = "customer_id"
	Subtotal        = "subtotal"
	CreatedAt       = "created_at"
)

// quote_line_items columns. The table is interleaved in quotes.
const (
	LineQuoteID     = "quote_id"
	LineItemID      = "line_item_id"
	LineDescription = "description"
	Quantity        = "quantity"
	ProductCategory = "product_category"
	LineTotal       = "line_total"
)

var (
	CustomerColumns = []string{CustomerID, CustomerName, CustomerTier}
	QuoteColumns    = []string{QuoteID, QuoteCustomerID, Subtotal, CreatedAt}
	LineItemColumns = []string{LineQuoteID, LineItemID, LineDescription, Quantity, ProductCategory, LineTotal}
)
