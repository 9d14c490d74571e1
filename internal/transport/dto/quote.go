package dto

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/usecases/evaluate_quote"
)

// Customer is the billing party of an inline quote.
type Customer struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Tier string `json:"tier"`
}

// LineItem is one priced line of an inline quote.
type LineItem struct {
	ID              string          `json:"id"`
	Description     string          `json:"description,omitempty"`
	Quantity        int64           `json:"quantity" validate:"gte=0"`
	ProductCategory string          `json:"product_category"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// Quote is an inline quote submitted for evaluation.
type Quote struct {
	ID        string           `json:"id"`
	Customer  *Customer        `json:"customer,omitempty"`
	LineItems []LineItem       `json:"line_items" validate:"dive"`
	Subtotal  *decimal.Decimal `json:"subtotal,omitempty"`
	CreatedAt *time.Time       `json:"created_at,omitempty"`
}

// EvaluateQuoteRequest is the body of a single evaluation.
type EvaluateQuoteRequest struct {
	Quote *Quote `json:"quote" validate:"required"`
}

// EvaluateBatchRequest is the body of a batch evaluation.
type EvaluateBatchRequest struct {
	Quotes []*Quote `json:"quotes" validate:"required,min=1,dive,required"`
}

// EvaluateStoredQuoteRequest names a stored quote.
type EvaluateStoredQuoteRequest struct {
	QuoteID string `json:"quote_id" validate:"required"`
}

// AppliedRule is one rule that contributed to a discount.
type AppliedRule struct {
	RuleID     string          `json:"rule_id"`
	Name       string          `json:"name"`
	Priority   int64           `json:"priority"`
	Stackable  bool            `json:"stackable"`
	Amount     decimal.Decimal `json:"amount"`
	Effect     string          `json:"effect"`
	Conditions string          `json:"conditions"`
}

// EvaluationResponse is the discount computed for one quote.
type EvaluationResponse struct {
	QuoteID         string          `json:"quote_id"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Discount        decimal.Decimal `json:"discount"`
	DiscountDisplay string          `json:"discount_display"`
	AppliedRules    []AppliedRule   `json:"applied_rules"`
	EvaluatedAt     time.Time       `json:"evaluated_at"`
}

// EvaluateBatchResponse lists evaluations in request order.
type EvaluateBatchResponse struct {
	Results []EvaluationResponse `json:"results"`
}

// ToDomain converts the inline quote. Tiers are compared lowercase.
func (q *Quote) ToDomain() *domain.Quote {
	out := &domain.Quote{
		ID:       q.ID,
		Subtotal: optionalMoney(q.Subtotal),
		LineItems: lo.Map(q.LineItems, func(li LineItem, _ int) domain.LineItem {
			return domain.LineItem{
				ID:              li.ID,
				Description:     li.Description,
				Quantity:        li.Quantity,
				ProductCategory: li.ProductCategory,
				LineTotal:       moneyFromDecimal(li.LineTotal),
			}
		}),
	}
	if q.Customer != nil {
		out.Customer = &domain.Customer{
			ID:   q.Customer.ID,
			Name: q.Customer.Name,
			Tier: domain.CustomerTier(strings.ToLower(strings.TrimSpace(q.Customer.Tier))),
		}
	}
	if q.CreatedAt != nil {
		out.CreatedAt = q.CreatedAt.UTC()
	}
	return out
}

// FromEvaluation renders an evaluation result.
func FromEvaluation(result *evaluate_quote.Result) EvaluationResponse {
	eval := result.Evaluation
	return EvaluationResponse{
		QuoteID:         result.QuoteID,
		Subtotal:        decimalFromMoney(eval.Subtotal),
		Discount:        decimalFromMoney(eval.Discount),
		DiscountDisplay: domain.FormatMoney(eval.Discount),
		AppliedRules: lo.Map(eval.Contributions, func(c domain.Contribution, _ int) AppliedRule {
			return AppliedRule{
				RuleID:     c.Rule.ID,
				Name:       c.Rule.Name,
				Priority:   c.Rule.Priority,
				Stackable:  c.Rule.Stackable,
				Amount:     decimalFromMoney(c.Amount),
				Effect:     domain.FormatDiscountDescription(c.Rule),
				Conditions: domain.FormatConditionsSummary(c.Rule),
			}
		}),
		EvaluatedAt: result.EvaluatedAt,
	}
}

// FromBatch renders batch results in order.
func FromBatch(results []*evaluate_quote.Result) EvaluateBatchResponse {
	return EvaluateBatchResponse{
		Results: lo.Map(results, func(r *evaluate_quote.Result, _ int) EvaluationResponse {
			return FromEvaluation(r)
		}),
	}
}
