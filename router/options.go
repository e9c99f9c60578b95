package router

import (
	"context"

	goerrors "github.com/goliatone/go-errors"

	"github.com/aura-mf/bridge/backend"
	"github.com/aura-mf/bridge/core"
	"github.com/aura-mf/bridge/origin"
	"github.com/aura-mf/bridge/tracker"
	"github.com/aura-mf/bridge/transport"
)

type routerBuilder struct {
	runtimeConfig   core.Config
	logger          core.Logger
	loggerProvider  core.LoggerProvider
	metricsRecorder core.MetricsRecorder
	origins         core.OriginValidator
	ledger          core.RequestLedger
	backendClient   core.Backend
	httpDoer        transport.HTTPDoer
	retryPolicy     transport.RetryPolicy
	configProvider  core.ConfigProvider
	optionsResolver core.OptionsResolver
	errorMapper     func(error) *goerrors.Error
}

type Option func(*routerBuilder)

func WithLogger(logger core.Logger) Option {
	return func(b *routerBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(b *routerBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(b *routerBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithOriginValidator(validator core.OriginValidator) Option {
	return func(b *routerBuilder) {
		b.origins = validator
	}
}

func WithLedger(ledger core.RequestLedger) Option {
	return func(b *routerBuilder) {
		b.ledger = ledger
	}
}

func WithBackend(client core.Backend) Option {
	return func(b *routerBuilder) {
		b.backendClient = client
	}
}

func WithHTTPDoer(doer transport.HTTPDoer) Option {
	return func(b *routerBuilder) {
		b.httpDoer = doer
	}
}

func WithRetryPolicy(policy transport.RetryPolicy) Option {
	return func(b *routerBuilder) {
		b.retryPolicy = policy
	}
}

func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(b *routerBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(b *routerBuilder) {
		b.optionsResolver = resolver
	}
}

func WithErrorMapper(mapper func(error) *goerrors.Error) Option {
	return func(b *routerBuilder) {
		b.errorMapper = mapper
	}
}

func defaultRouterBuilder(runtime core.Config) routerBuilder {
	return routerBuilder{
		runtimeConfig:   runtime,
		metricsRecorder: core.NopMetricsRecorder{},
		configProvider:  core.NewCfgxConfigProvider(nil),
		optionsResolver: core.GoOptionsResolver{},
		errorMapper:     core.BridgeErrorMapper,
	}
}

// Configuration precedence is runtime > loaded > defaults, with the loaded
// layer supplied by the hosting environment through the config provider.
func resolveConfig(runtime core.Config, builder routerBuilder) (core.Config, error) {
	defaults := core.DefaultConfig()
	provider := builder.configProvider
	if provider == nil {
		provider = core.NewCfgxConfigProvider(nil)
	}
	loaded, err := provider.Load(context.Background(), defaults)
	if err != nil {
		return core.Config{}, err
	}
	resolver := builder.optionsResolver
	if resolver == nil {
		resolver = core.GoOptionsResolver{}
	}
	return resolver.Resolve(defaults, loaded, runtime)
}

type routerComponents struct {
	origins core.OriginValidator
	ledger  core.RequestLedger
	backend core.Backend
	metrics core.MetricsRecorder
}

func (b routerBuilder) buildComponents(cfg core.Config) routerComponents {
	components := routerComponents{
		origins: b.origins,
		ledger:  b.ledger,
		backend: b.backendClient,
		metrics: b.metricsRecorder,
	}
	if components.origins == nil {
		components.origins = origin.NewValidator(cfg.AllowedOrigins)
	}
	if components.ledger == nil {
		ledger := tracker.NewLedger()
		ledger.HistoryLimit = cfg.HistoryLimit
		components.ledger = ledger
	}
	if components.backend == nil {
		retrier := transport.NewRetrier(b.retryPolicy, cfg.MaxAttempts)
		if b.retryPolicy == nil {
			retrier.Policy = transport.LinearBackoffPolicy{Base: cfg.BackoffBase()}
		}
		components.backend = backend.NewClient(cfg, transport.NewClient(b.httpDoer), retrier)
	}
	if components.metrics == nil {
		components.metrics = core.NopMetricsRecorder{}
	}
	return components
}
