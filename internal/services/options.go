package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/queries/get_rule"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/queries/list_rules"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/repo"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/usecases/create_rule"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/usecases/evaluate_quote"
	"github.com/light-bringer/printshop-pricing/internal/app/pricing/usecases/set_rule_active"
	"github.com/light-bringer/printshop-pricing/internal/pkg/cache"
	"github.com/light-bringer/printshop-pricing/internal/pkg/clock"
	"github.com/light-bringer/printshop-pricing/internal/pkg/committer"
	"github.com/light-bringer/printshop-pricing/internal/pkg/config"
	"github.com/light-bringer/printshop-pricing/internal/pkg/logger"
	grpcpricing "github.com/light-bringer/printshop-pricing/internal/transport/grpc/pricing"
	httppricing "github.com/light-bringer/printshop-pricing/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	RedisCache    *cache.Redis

	PricingHandler *grpcpricing.Handler
	HTTPHandler    *httppricing.Handler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, log *logger.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := NewSpannerClient(ctx, cfg.Spanner)
	if err != nil {
		return nil, err
	}
	opts := &ServiceOptions{SpannerClient: spannerClient}

	// 2. Initialize the rule cache; without Redis every evaluation reads Spanner
	var ruleCache cache.Cache = cache.Noop{}
	if cfg.Redis.Enabled() {
		redisCache, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			opts.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		opts.RedisCache = redisCache
		ruleCache = redisCache
	} else {
		log.Info(ctx, "redis not configured, rule cache disabled")
	}

	// 3. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)

	// 4. Create repositories
	ruleRepo := repo.NewRuleRepo(spannerClient)
	quoteReader := repo.NewQuoteReader(spannerClient)
	activeRules := repo.NewCachedRuleSource(ruleRepo, ruleCache, cfg.Pricing.RuleCacheKey, cfg.Pricing.RuleCacheTTL, log)

	// 5. Create command use cases
	createRuleUseCase := create_rule.NewInteractor(ruleRepo, activeRules, comm, clk, log)
	setRuleActiveUseCase := set_rule_active.NewInteractor(ruleRepo, activeRules, comm, clk, log)
	evaluateQuoteUseCase := evaluate_quote.NewInteractor(activeRules, quoteReader, clk, log, evaluate_quote.Options{
		Concurrency:  cfg.Pricing.BatchConcurrency,
		MaxBatchSize: cfg.Pricing.MaxBatchSize,
	})

	// 6. Create query use cases
	getRuleQuery := get_rule.NewQuery(ruleRepo)
	listRulesQuery := list_rules.NewQuery(ruleRepo)

	// 7. Create transport handlers
	opts.PricingHandler = grpcpricing.NewHandler(createRuleUseCase, setRuleActiveUseCase, evaluateQuoteUseCase, getRuleQuery, listRulesQuery, log)
	opts.HTTPHandler = httppricing.NewHandler(
		createRuleUseCase,
		setRuleActiveUseCase,
		evaluateQuoteUseCase,
		getRuleQuery,
		listRulesQuery,
	)

	return opts, nil
}

// NewSpannerClient connects to Spanner, or to the emulator when one is configured.
func NewSpannerClient(ctx context.Context, cfg config.SpannerConfig) (*spanner.Client, error) {
	var clientOpts []option.ClientOption
	if cfg.UsesEmulator() {
		clientOpts = append(clientOpts,
			option.WithEndpoint(cfg.EmulatorHost),
			option.WithoutAuthentication(),
			option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
	}

	client, err := spanner.NewClient(ctx, cfg.Database(), clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}
	return client, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.RedisCache != nil {
		_ = s.RedisCache.Close()
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
