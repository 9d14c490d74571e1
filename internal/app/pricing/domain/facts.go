package domain

import "time"

// CategoryTotals aggregates the line items of one product category.
type CategoryTotals struct {
	Quantity int64
	Subtotal *Money
}

// Facts are the quote-derived values rule conditions are evaluated against.
type Facts struct {
	Tier          CustomerTier
	TotalQuantity int64
	// Categories is keyed by NormalizeCategory. Every category present on the
	// quote has an entry, even when its quantity is zero.
	Categories map[string]CategoryTotals
	Subtotal   *Money
	OrderDate  time.Time
}

// HasCategory reports whether any line item belongs to category.
func (f Facts) HasCategory(category string) bool {
	_, ok := f.Categories[NormalizeCategory(category)]
	return ok
}

// ExtractFacts derives Facts from a quote. It never fails: absent data reads as
// zero, and a quote without a tiered customer reports TierNone.
func ExtractFacts(quote *Quote) Facts {
	facts := Facts{
		Tier:       TierNone,
		Categories: make(map[string]CategoryTotals),
		Subtotal:   Zero(),
	}
	if quote == nil {
		return facts
	}

	if quote.Customer != nil && quote.Customer.Tier != "" {
		facts.Tier = quote.Customer.Tier
	}

	lineSum := Zero()
	for _, item := range quote.LineItems {
		key := NormalizeCategory(item.ProductCategory)
		totals, ok := facts.Categories[key]
		if !ok {
			totals.Subtotal = Zero()
		}

		if item.Quantity > 0 {
			totals.Quantity += item.Quantity
			facts.TotalQuantity += item.Quantity
		}
		totals.Subtotal = totals.Subtotal.Add(item.LineTotal)
		lineSum = lineSum.Add(item.LineTotal)

		if key != "" {
			facts.Categories[key] = totals
		}
	}

	subtotal := quote.Subtotal
	if subtotal == nil {
		subtotal = lineSum
	}
	if subtotal.IsNegative() {
		subtotal = Zero()
	}
	facts.Subtotal = subtotal.Copy()
	facts.OrderDate = quote.CreatedAt

	return facts
}
