package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrzap"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/datafocus/go-inventory-sink/internal/common/cache"
	"github.com/datafocus/go-inventory-sink/internal/common/graceful"
	cMetrics "github.com/datafocus/go-inventory-sink/internal/common/metrics"
	"github.com/datafocus/go-inventory-sink/internal/common/xlog"
	"github.com/datafocus/go-inventory-sink/internal/common/zoho"
	"github.com/datafocus/go-inventory-sink/internal/config"
	"github.com/datafocus/go-inventory-sink/internal/services"
)

const MetricsFlushInterval = time.Second

type Setup struct {
	Config      config.Config
	NewRelic    *newrelic.Application
	Cache       *redis.Client
	VendorCache cache.Client[string]
	ZohoClient  zoho.Client
	Service     *services.Services
	Metrics     cMetrics.Metrics
}

type initOptions struct {
	logToStderr bool
}

type InitOption func(*initOptions)

// WithLogToStderr is used by commands that own stdout.
func WithLogToStderr() InitOption {
	return func(o *initOptions) { o.logToStderr = true }
}

// Init loads the config and wires every dependency the deliveries share.
// The stoppers are returned even on error so partial setups can be released.
func Init(command string, opts ...InitOption) (setup *Setup, stopper []graceful.ProcessStopper, err error) {
	ctx := context.Background()

	o := &initOptions{}
	for _, opt := range opts {
		opt(o)
	}

	cfg, err := config.Load(
		config.WithConfigFileName("config"),
		config.WithConfigFileSearchPaths("/config", ".", "./config"),
	)
	if err != nil {
		return
	}

	setup = &Setup{
		Config: cfg,
	}

	logOpts := []xlog.Option{
		xlog.WithEnv(cfg.App.Env),
		xlog.WithCaller(true),
		xlog.AddCallerSkip(1),
		xlog.WithLevel(cfg.App.LogLevel),
	}

	if o.logToStderr {
		logOpts = append(logOpts, xlog.ToStderr())
	}

	xlog.Init(cfg.App.Name+"-"+command, logOpts...)

	stopper = append(stopper, func(ctx context.Context) error {
		xlog.Sync()
		return nil
	})

	newRelic := setupNR(ctx, cfg)
	if newRelic != nil {
		stopper = append(stopper, func(ctx context.Context) error {
			newRelic.Shutdown(10 * time.Second)
			return nil
		})
	}
	setup.NewRelic = newRelic

	mtc := cMetrics.New()
	setup.Metrics = mtc

	vendorCache, cacheStoppers, err := setupVendorCache(ctx, cfg, mtc, command, setup)
	stopper = append(stopper, cacheStoppers...)
	if err != nil {
		return
	}
	setup.VendorCache = vendorCache

	zohoClient := zoho.New(cfg.Zoho, mtc)
	setup.ZohoClient = zohoClient

	// register service
	setup.Service = services.New(cfg, zohoClient, vendorCache, mtc)

	return setup, stopper, nil
}

// setupVendorCache prefers redis when configured so every replica shares resolved vendors.
func setupVendorCache(
	ctx context.Context,
	cfg config.Config,
	mtc cMetrics.Metrics,
	command string,
	setup *Setup,
) (vendorCache cache.Client[string], stopper []graceful.ProcessStopper, err error) {
	if cfg.VendorCache.TTL <= 0 {
		return nil, nil, nil
	}

	if !cfg.Redis.Enabled() {
		inMemory := cache.NewInMemoryClient[string]()
		stopper = append(stopper, func(ctx context.Context) error {
			inMemory.Close()
			return nil
		})
		return inMemory, stopper, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Db,
	})
	stopper = append(stopper, func(ctx context.Context) error { return client.Close() })

	if _, err = client.Ping(ctx).Result(); err != nil {
		return nil, stopper, fmt.Errorf("failed connect to redis: %w", err)
	}

	if mtc != nil {
		if err = mtc.RegisterRedis(client, cfg.App.Name, command); err != nil {
			return nil, stopper, fmt.Errorf("failed register redis prometheus: %w", err)
		}
	}

	setup.Cache = client

	return cache.NewRedisClient[string](client), stopper, nil
}

func setupNR(ctx context.Context, cfg config.Config) *newrelic.Application {
	if config.StringToEnvironment(cfg.App.Env) != config.PROD_ENV || cfg.NewRelicLicenseKey == "" {
		return nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.App.Name),
		newrelic.ConfigLicense(cfg.NewRelicLicenseKey),
		func(config *newrelic.Config) {
			config.Logger = nrzap.Transform(xlog.Logger())
		},
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		xlog.Errorf(ctx, "setupNR.NewApplication - %v", err)
		return nil
	}
	if err = app.WaitForConnection(15 * time.Second); err != nil {
		xlog.Errorf(ctx, "setupNR.WaitForConnection - %v", err)
	}

	return app
}
