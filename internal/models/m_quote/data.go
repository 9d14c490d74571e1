package m_quote

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// CustomerData is one row of customers.
type CustomerData struct {
	CustomerID string             `spanner:"customer_id"`
	Name       string             `spanner:"name"`
	Tier       spanner.NullString `spanner:"tier"`
}

// QuoteData is one row of quotes. A NULL subtotal is derived from line totals.
type QuoteData struct {
	QuoteID    string              `spanner:"quote_id"`
	CustomerID spanner.NullString  `spanner:"customer_id"`
	Subtotal   spanner.NullNumeric `spanner:"subtotal"`
	CreatedAt  time.Time           `spanner:"created_at"`
}

// LineItemData is one row of quote_line_items.
type LineItemData struct {
	QuoteID         string   `spanner:"quote_id"`
	LineItemID      string   `spanner:"line_item_id"`
	Description     string   `spanner:"description"`
	Quantity        int64    `spanner:"quantity"`
	ProductCategory string   `spanner:"product_category"`
	LineTotal       *big.Rat `spanner:"line_total"`
}
