package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "PRINTSHOP"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	Spanner SpannerConfig
	GRPC    GRPCConfig
	HTTP    HTTPConfig
	Redis   RedisConfig
	Pricing PricingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Pricing.BatchConcurrency < 1 {
		return fmt.Errorf("%s_PRICING_BATCH_CONCURRENCY must be positive, got %d", EnvPrefix, c.Pricing.BatchConcurrency)
	}
	if c.Pricing.MaxBatchSize < 1 {
		return fmt.Errorf("%s_PRICING_MAX_BATCH_SIZE must be positive, got %d", EnvPrefix, c.Pricing.MaxBatchSize)
	}
	if c.Pricing.RuleCacheTTL < 0 {
		return fmt.Errorf("%s_PRICING_RULE_CACHE_TTL must not be negative", EnvPrefix)
	}
	return nil
}

type AppConfig struct {
	Env       string `envconfig:"PRINTSHOP_APP_ENV" default:"dev"`
	Name      string `envconfig:"PRINTSHOP_APP_NAME" default:"printshop-pricing"`
	LogLevel  string `envconfig:"PRINTSHOP_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"PRINTSHOP_LOG_FORMAT" default:"json"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type SpannerConfig struct {
	ProjectID  string `envconfig:"PRINTSHOP_SPANNER_PROJECT_ID" default:"test-project"`
	InstanceID string `envconfig:"PRINTSHOP_SPANNER_INSTANCE_ID" default:"dev-instance"`
	DatabaseID string `envconfig:"PRINTSHOP_SPANNER_DATABASE_ID" default:"pricing-db"`
	// EmulatorHost mirrors SPANNER_EMULATOR_HOST, which the client library
	// also reads on its own.
	EmulatorHost string `envconfig:"SPANNER_EMULATOR_HOST"`
}

// Database returns the fully qualified database path.
func (s SpannerConfig) Database() string {
	return fmt.Sprintf("projects/%s/instances/%s/databases/%s", s.ProjectID, s.InstanceID, s.DatabaseID)
}

func (s SpannerConfig) UsesEmulator() bool {
	return s.EmulatorHost != ""
}

type GRPCConfig struct {
	Port       string `envconfig:"PRINTSHOP_GRPC_PORT" default:"9090"`
	Reflection bool   `envconfig:"PRINTSHOP_GRPC_REFLECTION" default:"true"`
}

type HTTPConfig struct {
	Port            string        `envconfig:"PRINTSHOP_HTTP_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"PRINTSHOP_HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"PRINTSHOP_HTTP_WRITE_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"PRINTSHOP_HTTP_SHUTDOWN_TIMEOUT" default:"15s"`
}

type RedisConfig struct {
	// Address empty disables the rule cache.
	Address      string        `envconfig:"PRINTSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"PRINTSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"PRINTSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PRINTSHOP_REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"PRINTSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PRINTSHOP_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"PRINTSHOP_REDIS_WRITE_TIMEOUT" default:"3s"`
}

func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

type PricingConfig struct {
	RuleCacheTTL     time.Duration `envconfig:"PRINTSHOP_PRICING_RULE_CACHE_TTL" default:"5m"`
	RuleCacheKey     string        `envconfig:"PRINTSHOP_PRICING_RULE_CACHE_KEY" default:"pricing:rules:active"`
	BatchConcurrency int           `envconfig:"PRINTSHOP_PRICING_BATCH_CONCURRENCY" default:"8"`
	MaxBatchSize     int           `envconfig:"PRINTSHOP_PRICING_MAX_BATCH_SIZE" default:"100"`
}
