package main

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/uniqverse/marketplace-api/infrastructure/cache"
	"github.com/uniqverse/marketplace-api/infrastructure/database/postgres"
	"github.com/uniqverse/marketplace-api/infrastructure/integrator/rates"
	"github.com/uniqverse/marketplace-api/infrastructure/integrator/rates/ratesclient"
	"github.com/uniqverse/marketplace-api/infrastructure/repository"
	"github.com/uniqverse/marketplace-api/internal/api"
	"github.com/uniqverse/marketplace-api/internal/api/handler"
	"github.com/uniqverse/marketplace-api/internal/config"
	"github.com/uniqverse/marketplace-api/internal/scheduler"
	"github.com/uniqverse/marketplace-api/internal/usecases/authenticating"
	"github.com/uniqverse/marketplace-api/internal/usecases/commissioning"
	"github.com/uniqverse/marketplace-api/internal/usecases/converting"
	"github.com/uniqverse/marketplace-api/internal/usecases/dashboard"
	"github.com/uniqverse/marketplace-api/internal/usecases/performance"
	pkgcache "github.com/uniqverse/marketplace-api/pkg/cache"
	"github.com/uniqverse/marketplace-api/pkg/clock"
	"github.com/uniqverse/marketplace-api/pkg/log"
	"github.com/uniqverse/marketplace-api/pkg/metrics"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	metrics.Init()

	// money goes out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	store := cacheStore(ctx, cfg)
	clk := clock.System{}

	userRepo := repository.NewUserRepository(pgConn)
	vendorRepo := repository.NewVendorRepository(pgConn)
	orderRepo := repository.NewOrderRepository(pgConn)
	commissionRepo := repository.NewCommissionRepository(pgConn)
	exchangeRateRepo := repository.NewExchangeRateRepository(pgConn)

	converter := converting.NewService(cfg, store, rateProviders(cfg, exchangeRateRepo)...)

	authenticator := authenticating.NewService(userRepo, cfg, clk)
	commissionService := commissioning.NewService(cfg, commissionRepo, orderRepo, converter, store, clk)
	performanceService := performance.NewService(cfg, vendorRepo, commissionRepo, converter, clk)
	dashboardService := dashboard.NewService(cfg, orderRepo, userRepo, commissionRepo, store, clk)

	ratesIntegrator := rates.New(ratesclient.NewClient(cfg.Rates))
	exchangeRateSyncService := scheduler.NewExchangeRateSyncService(ratesIntegrator, exchangeRateRepo, store, cfg)

	if err := exchangeRateSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("could not start the exchange rate sync scheduler")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator: authenticator,
		Converter:     converter,
		Commissions:   commissionService,
		Performance:   performanceService,
		Dashboard:     dashboardService,
		CronJobs: handler.CronJobServices{
			ExchangeRateSync: exchangeRateSyncService,
		},
		Database: pgConn,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// rateProviders lists the rate sources in precedence order: stored rates,
// the optional rates file, then the built-in table.
func rateProviders(cfg *config.Config, repo repository.ExchangeRateRepository) []converting.RateProvider {
	providers := []converting.RateProvider{converting.NewDatabaseProvider(repo)}

	if cfg.Rates.File != "" {
		static, err := converting.LoadStaticProvider(cfg.Rates.File)
		if err != nil {
			logrus.WithError(err).WithField("file", cfg.Rates.File).Warn("ignoring unreadable rates file")
		} else {
			providers = append(providers, static)
		}
	}

	return append(providers, converting.DefaultProvider())
}

func cacheStore(ctx context.Context, cfg *config.Config) pkgcache.Store {
	if cfg.Cache.Driver != "redis" {
		logrus.Info("using in-memory cache")
		return pkgcache.NewMemoryStore(clock.System{})
	}

	client, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to Redis")
	}

	logrus.WithField("addr", cfg.Redis.Addr).Info("using Redis cache")
	return cache.NewRedisStore(client, "marketplace")
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to PostgreSQL")
	}

	logrus.Info("connected to PostgreSQL")
	return conn
}
