package domain

import "errors"

// Domain errors as sentinel values
var (
	// Rule errors
	ErrRuleNotFound         = errors.New("pricing rule not found")
	ErrEmptyRuleName        = errors.New("pricing rule name cannot be empty")
	ErrInvalidDiscountType  = errors.New("discount type must be percentage or fixed")
	ErrInvalidDiscountValue = errors.New("discount value must be zero or greater")
	ErrInvalidPercentage    = errors.New("percentage discount must be between 0 and 100")
	ErrInvalidRuleRequest   = errors.New("invalid pricing rule request")

	// Condition errors
	ErrInvalidTier      = errors.New("customer tier must be bronze, silver, gold, platinum or any")
	ErrInvalidMinimum   = errors.New("condition minimum cannot be negative")
	ErrInvalidDateRange = errors.New("rule end date must not be before start date")

	// Quote errors
	ErrQuoteNotFound = errors.New("quote not found")
)
