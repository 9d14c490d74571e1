package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/joho/godotenv"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/repo"
	"github.com/light-bringer/printshop-pricing/internal/models/m_quote"
	"github.com/light-bringer/printshop-pricing/internal/pkg/clock"
	"github.com/light-bringer/printshop-pricing/internal/pkg/committer"
	"github.com/light-bringer/printshop-pricing/internal/pkg/config"
	"github.com/light-bringer/printshop-pricing/internal/pkg/logger"
	"github.com/light-bringer/printshop-pricing/internal/services"
)

// seed writes demo rules and quotes into a local database. Rules that already
// exist are left alone; quotes are upserted.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Options{ServiceName: cfg.App.Name + "-seed", Format: cfg.App.LogFormat})
	ctx := context.Background()

	if cfg.App.IsProd() {
		log.Error(ctx, "refusing to seed a production database", nil)
		os.Exit(1)
	}

	client, err := services.NewSpannerClient(ctx, cfg.Spanner)
	if err != nil {
		log.Error(ctx, "spanner connect failed", err)
		os.Exit(1)
	}
	defer client.Close()

	if err := seedRules(ctx, client, clock.NewRealClock().Now(), log); err != nil {
		log.Error(ctx, "seeding rules failed", err)
		os.Exit(1)
	}
	if err := seedQuotes(ctx, client); err != nil {
		log.Error(ctx, "seeding quotes failed", err)
		os.Exit(1)
	}

	log.Info(ctx, "demo data ready")
	fmt.Println("Try:")
	fmt.Println("  go run ./cmd/evaluate -quote demo-quote-gold")
	fmt.Println("  curl http://localhost:8080/api/v1/quotes/demo-quote-gold/discount")
}

func demoRules() map[string]domain.RuleParams {
	return map[string]domain.RuleParams{
		"demo-gold-volume": {
			Name:        "Gold volume",
			Description: "Gold and platinum customers ordering 50+ units",
			Conditions: []domain.Condition{
				domain.TierCondition{Tiers: []domain.CustomerTier{domain.TierGold, domain.TierPlatinum}},
				domain.MinQuantityCondition{Min: 50},
			},
			DiscountType:  domain.DiscountPercentage,
			DiscountValue: domain.MustMoney(10, 1),
			Priority:      1,
			Active:        true,
		},
		"demo-banner-bonus": {
			Name:          "Banner bonus",
			Description:   "Flat credit on any banner order",
			Conditions:    []domain.Condition{domain.CategoryCondition{Category: "banners"}},
			DiscountType:  domain.DiscountFixed,
			DiscountValue: domain.MustMoney(25, 1),
			Priority:      5,
			Stackable:     true,
			Active:        true,
		},
		"demo-big-order": {
			Name:          "Big order",
			Conditions:    []domain.Condition{domain.MinSubtotalCondition{Min: domain.MustMoney(2000, 1)}},
			DiscountType:  domain.DiscountPercentage,
			DiscountValue: domain.MustMoney(5, 1),
			Priority:      2,
			Active:        true,
		},
	}
}

func seedRules(ctx context.Context, client *spanner.Client, now time.Time, log *logger.Logger) error {
	rules := repo.NewRuleRepo(client)
	plan := committer.NewPlan()

	for id, params := range demoRules() {
		_, err := rules.GetByID(ctx, id)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrRuleNotFound) {
			return err
		}

		rule, err := domain.NewCustomerPricingRule(id, params, now)
		if err != nil {
			return fmt.Errorf("rule %s: %w", id, err)
		}
		mut, err := rules.InsertMut(rule)
		if err != nil {
			return fmt.Errorf("rule %s: %w", id, err)
		}
		plan.Add(mut)
	}

	if plan.IsEmpty() {
		return nil
	}
	log.InfoFields(ctx, "seeding rules", map[string]any{"count": plan.Count()})
	return committer.NewCommitter(client).Apply(ctx, plan)
}

func seedQuotes(ctx context.Context, client *spanner.Client) error {
	model := m_quote.NewModel()
	created := time.Now().UTC()

	muts := []*spanner.Mutation{
		model.InsertCustomerMut(&m_quote.CustomerData{
			CustomerID: "demo-customer-gold",
			Name:       "Acme Signs",
			Tier:       spanner.NullString{StringVal: "gold", Valid: true},
		}),
		model.InsertQuoteMut(&m_quote.QuoteData{
			QuoteID:    "demo-quote-gold",
			CustomerID: spanner.NullString{StringVal: "demo-customer-gold", Valid: true},
			CreatedAt:  created,
		}),
		model.InsertLineItemMut(&m_quote.LineItemData{
			QuoteID:         "demo-quote-gold",
			LineItemID:      "demo-line-1",
			Description:     "Vinyl banners 3x6",
			Quantity:        60,
			ProductCategory: "banners",
			LineTotal:       big.NewRat(1200, 1),
		}),
		model.InsertLineItemMut(&m_quote.LineItemData{
			QuoteID:         "demo-quote-gold",
			LineItemID:      "demo-line-2",
			Description:     "Tri-fold flyers",
			Quantity:        500,
			ProductCategory: "flyers",
			LineTotal:       big.NewRat(900, 1),
		}),
		model.InsertQuoteMut(&m_quote.QuoteData{
			QuoteID:   "demo-quote-walkin",
			CreatedAt: created,
		}),
		model.InsertLineItemMut(&m_quote.LineItemData{
			QuoteID:         "demo-quote-walkin",
			LineItemID:      "demo-line-1",
			Description:     "Business cards",
			Quantity:        250,
			ProductCategory: "cards",
			LineTotal:       big.NewRat(4999, 100),
		}),
	}

	_, err := client.Apply(ctx, muts)
	return err
}
