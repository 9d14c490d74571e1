package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/printshop-pricing/internal/models/m_pricing_rule"
	"github.com/light-bringer/printshop-pricing/internal/pkg/query"
)

// RuleRepo implements RuleRepository for Spanner.
type RuleRepo struct {
	client *spanner.Client
	model  *m_pricing_rule.Model
}

// NewRuleRepo creates a new RuleRepo.
func NewRuleRepo(client *spanner.Client) *RuleRepo {
	return &RuleRepo{
		client: client,
		model:  m_pricing_rule.NewModel(),
	}
}

var _ contracts.RuleRepository = (*RuleRepo)(nil)

// InsertMut creates a mutation for inserting a new rule.
func (r *RuleRepo) InsertMut(rule *domain.CustomerPricingRule) (*spanner.Mutation, error) {
	data, err := ruleToData(rule)
	if err != nil {
		return nil, err
	}
	return r.model.InsertMut(data), nil
}

// SetActiveMut creates a mutation for toggling a rule's active flag.
func (r *RuleRepo) SetActiveMut(ruleID string, active bool, at time.Time) *spanner.Mutation {
	return r.model.UpdateMut(ruleID, map[string]interface{}{
		m_pricing_rule.Active:    active,
		m_pricing_rule.UpdatedAt: at,
	})
}

// GetByID retrieves a rule by ID.
func (r *RuleRepo) GetByID(ctx context.Context, ruleID string) (*domain.CustomerPricingRule, error) {
	row, err := r.client.Single().ReadRow(ctx, m_pricing_rule.TableName, spanner.Key{ruleID}, m_pricing_rule.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrRuleNotFound
		}
		return nil, fmt.Errorf("failed to read rule: %w", err)
	}

	var data m_pricing_rule.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse rule: %w", err)
	}

	return dataToRule(&data), nil
}

// List returns rules ordered by priority, then id.
func (r *RuleRepo) List(ctx context.Context, filter *contracts.RuleFilter) ([]*domain.CustomerPricingRule, error) {
	rows, err := r.listData(ctx, filter)
	if err != nil {
		return nil, err
	}

	rules := make([]*domain.CustomerPricingRule, len(rows))
	for i := range rows {
		rules[i] = dataToRule(rows[i])
	}
	return rules, nil
}

// ActiveRules returns every active rule straight from Spanner.
func (r *RuleRepo) ActiveRules(ctx context.Context) ([]*domain.CustomerPricingRule, error) {
	return r.List(ctx, &contracts.RuleFilter{ActiveOnly: true})
}

// ActiveRows returns the raw rows of every active rule, for caching.
func (r *RuleRepo) ActiveRows(ctx context.Context) ([]*m_pricing_rule.Data, error) {
	return r.listData(ctx, &contracts.RuleFilter{ActiveOnly: true})
}

// Count returns how many rules match filter.
func (r *RuleRepo) Count(ctx context.Context, filter *contracts.RuleFilter) (int64, error) {
	iter := r.client.Single().Query(ctx, filteredRules(filter).Count().Build())
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count rules: %w", err)
	}

	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, fmt.Errorf("failed to parse rule count: %w", err)
	}
	return count, nil
}

func filteredRules(filter *contracts.RuleFilter) *query.Builder {
	b := query.From(m_pricing_rule.TableName).Select(m_pricing_rule.Columns...)
	if filter != nil && filter.ActiveOnly {
		b = b.Where(query.Eq(m_pricing_rule.Active, true))
	}
	return b
}

func (r *RuleRepo) listData(ctx context.Context, filter *contracts.RuleFilter) ([]*m_pricing_rule.Data, error) {
	b := filteredRules(filter).OrderBy(m_pricing_rule.Priority, m_pricing_rule.RuleID)
	if filter != nil {
		b = b.Page(int64(filter.Limit), int64(filter.Offset))
	}

	iter := r.client.Single().Query(ctx, b.Build())
	defer iter.Stop()

	var rows []*m_pricing_rule.Data
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate rules: %w", err)
		}

		var data m_pricing_rule.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse rule: %w", err)
		}
		rows = append(rows, &data)
	}
	return rows, nil
}
