package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/uniqverse/marketplace-api/infrastructure/integrator/rates"
	"github.com/uniqverse/marketplace-api/infrastructure/repository"
	"github.com/uniqverse/marketplace-api/internal/config"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/internal/usecases/converting"
	"github.com/uniqverse/marketplace-api/pkg/cache"
	"github.com/uniqverse/marketplace-api/pkg/metrics"
)

// ExchangeRateSyncConfig holds the schedule of the exchange rate sync job.
type ExchangeRateSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
	Base         domain.Currency
	Currencies   []domain.Currency
}

// ExchangeRateSyncService fetches the latest rates and stores them for the converter.
type ExchangeRateSyncService struct {
	scheduler           *gocron.Scheduler
	config              ExchangeRateSyncConfig
	ratesService        rates.RatesIntegrator
	exchangeRateRepo    repository.ExchangeRateRepository
	store               cache.Store
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
	lastSyncedRates     int
}

func NewExchangeRateSyncService(
	ratesService rates.RatesIntegrator,
	exchangeRateRepo repository.ExchangeRateRepository,
	store cache.Store,
	appConfig *config.Config,
) *ExchangeRateSyncService {
	currencies := make([]domain.Currency, 0, len(appConfig.Currency.Supported))
	for _, code := range appConfig.Currency.Supported {
		currencies = append(currencies, domain.Currency(code))
	}

	syncConfig := ExchangeRateSyncConfig{
		CronSchedule: appConfig.ExchangeRateSync.CronSchedule,
		SyncEnabled:  appConfig.ExchangeRateSync.Enabled,
		Base:         domain.Currency(appConfig.Currency.Base),
		Currencies:   currencies,
	}

	location := appConfig.App.Location
	if location == nil {
		location = time.UTC
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
		"base":          syncConfig.Base,
		"currencies":    len(syncConfig.Currencies),
	}).Info("exchange rate sync configuration loaded")

	return &ExchangeRateSyncService{
		scheduler:        gocron.NewScheduler(location),
		config:           syncConfig,
		ratesService:     ratesService,
		exchangeRateRepo: exchangeRateRepo,
		store:            store,
	}
}

// Start schedules the job and stops the scheduler when ctx is done.
func (s *ExchangeRateSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("exchange rate sync disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("starting exchange rate sync scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncExchangeRates(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule exchange rate sync: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("stopping exchange rate sync scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *ExchangeRateSyncService) syncExchangeRates(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("exchange rate sync already running, skipping")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	startTime := time.Now()
	count, err := s.SyncRates(ctx)
	duration := time.Since(startTime)
	metrics.ObserveRateSync(err, duration)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	s.syncRunning = false

	if err != nil {
		s.lastSyncError = err.Error()
		logrus.WithError(err).Error("exchange rate sync failed")
		return
	}

	s.lastSyncError = ""
	s.lastSyncedRates = count
	s.lastSyncCompletedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"rates":    count,
	}).Info("exchange rate sync completed")
}

// SyncRates stores the latest rates and drops the converter's cached table.
func (s *ExchangeRateSyncService) SyncRates(ctx context.Context) (int, error) {
	latest, err := s.ratesService.LatestRates(ctx, s.config.Base, s.config.Currencies)
	if err != nil {
		return 0, fmt.Errorf("fetch latest rates: %w", err)
	}

	if len(latest) == 0 {
		logrus.Warn("rates provider returned no supported currency")
		return 0, nil
	}

	if err := s.exchangeRateRepo.UpsertRates(ctx, latest); err != nil {
		return 0, fmt.Errorf("store rates: %w", err)
	}

	if err := s.store.Delete(ctx, converting.RatesCacheKey(s.config.Base)); err != nil {
		logrus.WithError(err).Warn("could not invalidate cached rates")
	}

	return len(latest), nil
}

// TriggerManualSync starts a sync in the background. It reports false when one is already running.
func (s *ExchangeRateSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		logrus.Info("exchange rate sync already running, ignoring manual request")
		return false
	}

	logrus.Info("starting manual exchange rate sync")
	go s.syncExchangeRates(context.Background())
	return true
}

func (s *ExchangeRateSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"base":                   s.config.Base,
		"currencies":             s.config.Currencies,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
		"last_synced_rates":      s.lastSyncedRates,
	}
}
