package testutil

import (
	"context"
	"math/big"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/printshop-pricing/internal/models/m_pricing_rule"
	"github.com/light-bringer/printshop-pricing/internal/models/m_quote"
)

// LineFixture describes one seeded line item.
type LineFixture struct {
	Category string
	Quantity int64
	Total    int64
}

// SeedQuote inserts a customer (when tier is not empty) and a quote with the
// given lines, returning the quote id.
func SeedQuote(t *testing.T, client *spanner.Client, tier string, createdAt time.Time, lines ...LineFixture) string {
	t.Helper()

	model := m_quote.NewModel()
	quoteID := uuid.NewString()
	plan := make([]*spanner.Mutation, 0, len(lines)+2)

	quote := &m_quote.QuoteData{QuoteID: quoteID, CreatedAt: createdAt}
	if tier != "" {
		customerID := uuid.NewString()
		plan = append(plan, model.InsertCustomerMut(&m_quote.CustomerData{
			CustomerID: customerID,
			Name:       "Customer " + customerID[:8],
			Tier:       spanner.NullString{StringVal: tier, Valid: true},
		}))
		quote.CustomerID = spanner.NullString{StringVal: customerID, Valid: true}
	}
	plan = append(plan, model.InsertQuoteMut(quote))

	for _, line := range lines {
		plan = append(plan, model.InsertLineItemMut(&m_quote.LineItemData{
			QuoteID:         quoteID,
			LineItemID:      uuid.NewString(),
			Description:     line.Category + " order",
			Quantity:        line.Quantity,
			ProductCategory: line.Category,
			LineTotal:       big.NewRat(line.Total, 1),
		}))
	}

	_, err := client.Apply(context.Background(), plan)
	require.NoError(t, err, "failed to seed quote")
	return quoteID
}

// SeedRawRule writes a rule row directly, bypassing domain validation.
func SeedRawRule(t *testing.T, client *spanner.Client, data *m_pricing_rule.Data) {
	t.Helper()

	_, err := client.Apply(context.Background(), []*spanner.Mutation{m_pricing_rule.NewModel().InsertMut(data)})
	require.NoError(t, err, "failed to seed rule")
}
