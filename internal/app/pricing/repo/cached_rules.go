package repo

import (
	"context"
	"strconv"
	"time"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/printshop-pricing/internal/models/m_pricing_rule"
	"github.com/light-bringer/printshop-pricing/internal/pkg/cache"
	"github.com/light-bringer/printshop-pricing/internal/pkg/logger"
)

// ActiveRowLoader loads the stored rows of every active rule.
type ActiveRowLoader interface {
	ActiveRows(ctx context.Context) ([]*m_pricing_rule.Data, error)
}

// CachedRuleSource serves the active rule set from a cache, falling back to the
// loader on a miss. Only rule rows are cached; evaluation results never are.
// Cache failures are logged and otherwise ignored.
//
// Entries are stored under "<key>:<generation>". Invalidate bumps the
// generation, so a load that started before a rule write can only ever fill a
// key no reader will ask for again.
type CachedRuleSource struct {
	loader ActiveRowLoader
	cache  cache.Cache
	key    string
	ttl    time.Duration
	log    *logger.Logger
}

// NewCachedRuleSource creates a CachedRuleSource. A ttl of zero disables writes
// to the cache.
func NewCachedRuleSource(loader ActiveRowLoader, c cache.Cache, key string, ttl time.Duration, log *logger.Logger) *CachedRuleSource {
	return &CachedRuleSource{
		loader: loader,
		cache:  c,
		key:    key,
		ttl:    ttl,
		log:    log,
	}
}

var (
	_ contracts.ActiveRuleSource     = (*CachedRuleSource)(nil)
	_ contracts.RuleCacheInvalidator = (*CachedRuleSource)(nil)
)

// ActiveRules returns the active rule set.
func (s *CachedRuleSource) ActiveRules(ctx context.Context) ([]*domain.CustomerPricingRule, error) {
	// Read the generation before loading. A failed read bypasses the cache.
	gen, err := s.cache.Generation(ctx, s.generationKey())
	if err != nil {
		s.log.Warn(ctx, "rule cache generation read failed", err)
		return s.load(ctx)
	}
	key := s.entryKey(gen)

	var rows []*m_pricing_rule.Data
	hit, err := s.cache.GetJSON(ctx, key, &rows)
	if err != nil {
		s.log.Warn(ctx, "rule cache read failed", err)
	}
	if hit && err == nil {
		return rowsToRules(rows), nil
	}

	rows, err = s.loader.ActiveRows(ctx)
	if err != nil {
		return nil, err
	}

	if s.ttl > 0 {
		if err := s.cache.SetJSON(ctx, key, rows, s.ttl); err != nil {
			s.log.Warn(ctx, "rule cache write failed", err)
		}
	}
	return rowsToRules(rows), nil
}

// Invalidate retires the cached rule set by bumping its generation, then
// drops the retired entry.
func (s *CachedRuleSource) Invalidate(ctx context.Context) error {
	gen, err := s.cache.Bump(ctx, s.generationKey())
	if err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, s.entryKey(gen-1)); err != nil {
		s.log.Warn(ctx, "retired rule cache entry not deleted", err)
	}
	return nil
}

func (s *CachedRuleSource) load(ctx context.Context) ([]*domain.CustomerPricingRule, error) {
	rows, err := s.loader.ActiveRows(ctx)
	if err != nil {
		return nil, err
	}
	return rowsToRules(rows), nil
}

func (s *CachedRuleSource) generationKey() string {
	return s.key + ":gen"
}

func (s *CachedRuleSource) entryKey(gen int64) string {
	return s.key + ":" + strconv.FormatInt(gen, 10)
}

func rowsToRules(rows []*m_pricing_rule.Data) []*domain.CustomerPricingRule {
	rules := make([]*domain.CustomerPricingRule, 0, len(rows))
	for _, row := range rows {
		if row != nil {
			rules = append(rules, dataToRule(row))
		}
	}
	return rules
}
