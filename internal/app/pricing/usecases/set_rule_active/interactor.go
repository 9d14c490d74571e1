package set_rule_active

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/printshop-pricing/internal/models/m_pricing_rule"
	"github.com/light-bringer/printshop-pricing/internal/pkg/clock"
	"github.com/light-bringer/printshop-pricing/internal/pkg/committer"
	"github.com/light-bringer/printshop-pricing/internal/pkg/logger"
)

// Request toggles the manual active flag of a rule.
type Request struct {
	RuleID string
	Active bool
}

// Interactor handles the set rule active use case.
type Interactor struct {
	repo        contracts.RuleRepository
	invalidator contracts.RuleCacheInvalidator
	committer   committer.Applier
	clock       clock.Clock
	log         *logger.Logger
}

// NewInteractor creates a new set rule active interactor.
func NewInteractor(
	repo contracts.RuleRepository,
	invalidator contracts.RuleCacheInvalidator,
	committer committer.Applier,
	clock clock.Clock,
	log *logger.Logger,
) *Interactor {
	return &Interactor{
		repo:        repo,
		invalidator: invalidator,
		committer:   committer,
		clock:       clock,
		log:         log,
	}
}

// Execute updates the flag and returns the rule as stored afterwards.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.CustomerPricingRule, error) {
	if req == nil || req.RuleID == "" {
		return nil, fmt.Errorf("%w: rule id is required", domain.ErrInvalidRuleRequest)
	}

	plan := committer.NewPlan()
	plan.Add(i.repo.SetActiveMut(req.RuleID, req.Active, i.clock.Now()))

	guard := committer.RowGuard{
		Table:     m_pricing_rule.TableName,
		KeyColumn: m_pricing_rule.RuleID,
		Key:       spanner.Key{req.RuleID},
	}
	if err := i.committer.ApplyIfExists(ctx, guard, plan); err != nil {
		if errors.Is(err, committer.ErrRowNotFound) {
			return nil, domain.ErrRuleNotFound
		}
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	ctx = i.log.WithFields(ctx, map[string]any{"rule_id": req.RuleID, "active": req.Active})
	if err := i.invalidator.Invalidate(ctx); err != nil {
		i.log.Warn(ctx, "rule cache invalidation failed", err)
	}
	i.log.Info(ctx, "pricing rule active flag updated")

	return i.repo.GetByID(ctx, req.RuleID)
}
