package contracts

import (
	"context"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
)

// QuoteReader loads quotes owned by the quoting service.
type QuoteReader interface {
	// GetByID returns domain.ErrQuoteNotFound when the quote does not exist.
	GetByID(ctx context.Context, quoteID string) (*domain.Quote, error)
}
