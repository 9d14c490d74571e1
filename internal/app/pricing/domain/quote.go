package domain

import "time"

// Customer is the billing party of a quote.
type Customer struct {
	ID   string
	Name string
	Tier CustomerTier
}

// LineItem is one priced line on a quote.
type LineItem struct {
	ID              string
	Description     string
	Quantity        int64
	ProductCategory string
	LineTotal       *Money
}

// Quote is the read-only view of a quote the engine evaluates. Quotes are owned
// and mutated elsewhere; every change to one requires a fresh evaluation.
type Quote struct {
	ID        string
	Customer  *Customer
	LineItems []LineItem
	// Subtotal is the order value discounts are taken from. When nil it is
	// derived from the line totals.
	Subtotal  *Money
	CreatedAt time.Time
}
