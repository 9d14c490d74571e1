package create_rule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/printshop-pricing/internal/pkg/clock"
	"github.com/light-bringer/printshop-pricing/internal/pkg/committer"
	"github.com/light-bringer/printshop-pricing/internal/pkg/logger"
	"github.com/light-bringer/printshop-pricing/internal/pkg/validate"
)

// Request contains the data needed to create a pricing rule. Condition fields
// left empty leave the rule unrestricted on that axis.
type Request struct {
	Name          string        `json:"name" validate:"required,max=200"`
	Description   string        `json:"description" validate:"max=2000"`
	DiscountType  string        `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue *domain.Money `json:"discount_value" validate:"required"`
	Priority      int64         `json:"priority"`
	Stackable     bool          `json:"stackable"`
	Active        bool          `json:"active"`

	Tiers       []string      `json:"tiers" validate:"omitempty,dive,oneof=bronze silver gold platinum any"`
	MinQuantity *int64        `json:"min_quantity" validate:"omitempty,gte=0"`
	MinSubtotal *domain.Money `json:"min_subtotal"`
	Category    string        `json:"category" validate:"max=100"`
	StartDate   *time.Time    `json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`
}

// Interactor handles the create rule use case.
type Interactor struct {
	repo        contracts.RuleRepository
	invalidator contracts.RuleCacheInvalidator
	committer   committer.Applier
	clock       clock.Clock
	log         *logger.Logger
}

// NewInteractor creates a new create rule interactor.
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

// Execute validates and stores a new rule.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.CustomerPricingRule, error) {
	if req == nil {
		return nil, domain.ErrInvalidRuleRequest
	}
	normalize(req)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	params, err := toParams(req)
	if err != nil {
		return nil, err
	}

	rule, err := domain.NewCustomerPricingRule(uuid.NewString(), params, i.clock.Now())
	if err != nil {
		return nil, err
	}

	mut, err := i.repo.InsertMut(rule)
	if err != nil {
		return nil, fmt.Errorf("failed to build rule mutation: %w", err)
	}

	plan := committer.NewPlan()
	plan.Add(mut)
	if err := i.committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	ctx = i.log.WithField(ctx, "rule_id", rule.ID)
	if err := i.invalidator.Invalidate(ctx); err != nil {
		i.log.Warn(ctx, "rule cache invalidation failed", err)
	}
	i.log.Info(ctx, "pricing rule created")

	return rule, nil
}

func normalize(req *Request) {
	req.Name = strings.TrimSpace(req.Name)
	req.DiscountType = strings.ToLower(strings.TrimSpace(req.DiscountType))
	for idx, tier := range req.Tiers {
		req.Tiers[idx] = strings.ToLower(strings.TrimSpace(tier))
	}
	req.Category = domain.NormalizeCategory(req.Category)
}

func toParams(req *Request) (domain.RuleParams, error) {
	discountType, err := domain.ParseDiscountType(req.DiscountType)
	if err != nil {
		return domain.RuleParams{}, err
	}

	var conditions []domain.Condition
	if len(req.Tiers) > 0 {
		tiers := make([]domain.CustomerTier, len(req.Tiers))
		for idx, raw := range req.Tiers {
			if tiers[idx], err = domain.ParseTier(raw); err != nil {
				return domain.RuleParams{}, err
			}
		}
		conditions = append(conditions, domain.TierCondition{Tiers: tiers})
	}
	if req.MinQuantity != nil {
		conditions = append(conditions, domain.MinQuantityCondition{Min: *req.MinQuantity})
	}
	if req.MinSubtotal != nil {
		conditions = append(conditions, domain.MinSubtotalCondition{Min: req.MinSubtotal})
	}
	if req.Category != "" {
		conditions = append(conditions, domain.CategoryCondition{Category: req.Category})
	}
	if req.StartDate != nil || req.EndDate != nil {
		conditions = append(conditions, domain.DateRangeCondition{Start: req.StartDate, End: req.EndDate})
	}

	return domain.RuleParams{
		Name:          req.Name,
		Description:   req.Description,
		Conditions:    conditions,
		DiscountType:  discountType,
		DiscountValue: req.DiscountValue,
		Priority:      req.Priority,
		Stackable:     req.Stackable,
		Active:        req.Active,
	}, nil
}
