package evaluate_quote

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/printshop-pricing/internal/pkg/clock"
	"github.com/light-bringer/printshop-pricing/internal/pkg/logger"
)

// ErrBatchTooLarge is returned when a batch exceeds the configured maximum.
var ErrBatchTooLarge = fmt.Errorf("%w: batch too large", domain.ErrInvalidRuleRequest)

// Request evaluates an inline quote. When Rules is nil the active rule set is
// loaded; an empty non-nil slice evaluates against no rules at all.
type Request struct {
	Quote *domain.Quote
	Rules []*domain.CustomerPricingRule
}

// Result is one evaluation plus the moment it was taken.
type Result struct {
	QuoteID     string
	Evaluation  *domain.EvaluationResult
	EvaluatedAt time.Time
}

// Options tunes batch evaluation.
type Options struct {
	Concurrency  int
	MaxBatchSize int
}

// Interactor handles quote evaluation. Results are recomputed on every call.
type Interactor struct {
	rules  contracts.ActiveRuleSource
	quotes contracts.QuoteReader
	engine *domain.PricingEngine
	clock  clock.Clock
	log    *logger.Logger
	opts   Options
}

// NewInteractor creates a new evaluate quote interactor.
func NewInteractor(
	rules contracts.ActiveRuleSource,
	quotes contracts.QuoteReader,
	clock clock.Clock,
	log *logger.Logger,
	opts Options,
) *Interactor {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Interactor{
		rules:  rules,
		quotes: quotes,
		engine: domain.NewPricingEngine(),
		clock:  clock,
		log:    log,
		opts:   opts,
	}
}

// Execute evaluates an inline quote.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	if req == nil || req.Quote == nil {
		return nil, fmt.Errorf("%w: quote is required", domain.ErrInvalidRuleRequest)
	}

	rules := req.Rules
	if rules == nil {
		var err error
		if rules, err = i.rules.ActiveRules(ctx); err != nil {
			return nil, fmt.Errorf("failed to load rules: %w", err)
		}
	}

	result := i.evaluate(req.Quote, rules)
	i.logResult(ctx, result, len(rules))
	return result, nil
}

// ExecuteStored loads a quote by id and evaluates it against the active rules.
func (i *Interactor) ExecuteStored(ctx context.Context, quoteID string) (*Result, error) {
	if quoteID == "" {
		return nil, fmt.Errorf("%w: quote id is required", domain.ErrInvalidRuleRequest)
	}

	quote, err := i.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	rules, err := i.rules.ActiveRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	result := i.evaluate(quote, rules)
	i.logResult(ctx, result, len(rules))
	return result, nil
}

// ExecuteBatch evaluates many inline quotes against one snapshot of the active
// rules. Results are in input order.
func (i *Interactor) ExecuteBatch(ctx context.Context, quotes []*domain.Quote) ([]*Result, error) {
	if i.opts.MaxBatchSize > 0 && len(quotes) > i.opts.MaxBatchSize {
		return nil, fmt.Errorf("%w: %d quotes, max %d", ErrBatchTooLarge, len(quotes), i.opts.MaxBatchSize)
	}
	if lo.Contains(quotes, nil) {
		return nil, fmt.Errorf("%w: quote is required", domain.ErrInvalidRuleRequest)
	}

	rules, err := i.rules.ActiveRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	results := make([]*Result, len(quotes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.opts.Concurrency)

	for idx, quote := range quotes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[idx] = i.evaluate(quote, rules)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	i.log.InfoFields(ctx, "quote batch evaluated", map[string]any{
		"quote_count": len(quotes),
		"rule_count":  len(rules),
		"discounted": lo.CountBy(results, func(r *Result) bool {
			return r.Evaluation.HasDiscount()
		}),
	})
	return results, nil
}

func (i *Interactor) evaluate(quote *domain.Quote, rules []*domain.CustomerPricingRule) *Result {
	now := i.clock.Now()
	if quote.CreatedAt.IsZero() {
		stamped := *quote
		stamped.CreatedAt = now
		quote = &stamped
	}

	return &Result{
		QuoteID:     quote.ID,
		Evaluation:  i.engine.Evaluate(quote, rules),
		EvaluatedAt: now,
	}
}

func (i *Interactor) logResult(ctx context.Context, result *Result, ruleCount int) {
	ctx = i.log.WithQuoteID(ctx, result.QuoteID)
	i.log.InfoFields(ctx, "quote evaluated", map[string]any{
		"rule_count": ruleCount,
		"applied_rules": lo.Map(result.Evaluation.AppliedRules, func(r *domain.CustomerPricingRule, _ int) string {
			return r.ID
		}),
		"discount": result.Evaluation.Discount.String(),
	})
}
