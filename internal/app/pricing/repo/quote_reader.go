package repo

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/printshop-pricing/internal/models/m_quote"
	"github.com/light-bringer/printshop-pricing/internal/pkg/query"
)

// QuoteReader implements contracts.QuoteReader for Spanner.
type QuoteReader struct {
	client *spanner.Client
}

// NewQuoteReader creates a new QuoteReader.
func NewQuoteReader(client *spanner.Client) *QuoteReader {
	return &QuoteReader{client: client}
}

var _ contracts.QuoteReader = (*QuoteReader)(nil)

// GetByID loads a quote, its customer and its line items from one snapshot.
func (r *QuoteReader) GetByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	row, err := txn.ReadRow(ctx, m_quote.QuotesTable, spanner.Key{quoteID}, m_quote.QuoteColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to read quote: %w", err)
	}

	var quoteData m_quote.QuoteData
	if err := row.ToStruct(&quoteData); err != nil {
		return nil, fmt.Errorf("failed to parse quote: %w", err)
	}

	var customer *m_quote.CustomerData
	if quoteData.CustomerID.Valid {
		customer, err = readCustomer(ctx, txn, quoteData.CustomerID.StringVal)
		if err != nil {
			return nil, err
		}
	}

	items, err := readLineItems(ctx, txn, quoteID)
	if err != nil {
		return nil, err
	}

	return quoteToDomain(&quoteData, customer, items), nil
}

// readCustomer returns nil without error when the customer row is missing;
// the quote then evaluates as having no tier.
func readCustomer(ctx context.Context, txn *spanner.ReadOnlyTransaction, customerID string) (*m_quote.CustomerData, error) {
	row, err := txn.ReadRow(ctx, m_quote.CustomersTable, spanner.Key{customerID}, m_quote.CustomerColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read customer: %w", err)
	}

	var data m_quote.CustomerData
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse customer: %w", err)
	}
	return &data, nil
}

func readLineItems(ctx context.Context, txn *spanner.ReadOnlyTransaction, quoteID string) ([]*m_quote.LineItemData, error) {
	stmt := query.From(m_quote.LineItemsTable).
		Select(m_quote.LineItemColumns...).
		Where(query.Eq(m_quote.LineQuoteID, quoteID)).
		OrderBy(m_quote.LineItemID).
		Build()

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	var items []*m_quote.LineItemData
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate line items: %w", err)
		}

		var data m_quote.LineItemData
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse line item: %w", err)
		}
		items = append(items, &data)
	}
	return items, nil
}

func quoteToDomain(q *m_quote.QuoteData, c *m_quote.CustomerData, items []*m_quote.LineItemData) *domain.Quote {
	quote := &domain.Quote{
		ID:        q.QuoteID,
		LineItems: make([]domain.LineItem, 0, len(items)),
		CreatedAt: q.CreatedAt,
	}
	if q.Subtotal.Valid {
		quote.Subtotal = domain.NewMoneyFromRat(&q.Subtotal.Numeric)
	}

	if c != nil {
		quote.Customer = &domain.Customer{ID: c.CustomerID, Name: c.Name}
		if c.Tier.Valid {
			quote.Customer.Tier = domain.CustomerTier(strings.ToLower(strings.TrimSpace(c.Tier.StringVal)))
		}
	}

	for _, item := range items {
		quote.LineItems = append(quote.LineItems, domain.LineItem{
			ID:              item.LineItemID,
			Description:     item.Description,
			Quantity:        item.Quantity,
			ProductCategory: item.ProductCategory,
			LineTotal:       domain.NewMoneyFromRat(item.LineTotal),
		})
	}
	return quote
}
