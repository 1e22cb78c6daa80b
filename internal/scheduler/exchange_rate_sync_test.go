package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ratesmocks "github.com/uniqverse/marketplace-api/infrastructure/integrator/rates/mocks"
	"github.com/uniqverse/marketplace-api/infrastructure/repository/mocks"
	"github.com/uniqverse/marketplace-api/internal/config"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/pkg/cache"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		App:      config.App{Location: time.UTC},
		Currency: config.Currency{Base: "USD", Supported: []string{"USD", "EUR", "JPY"}},
		ExchangeRateSync: config.ExchangeRateSync{
			CronSchedule: "0 */6 * * *",
			Enabled:      true,
		},
	}
}

func TestExchangeRateSyncService_SyncRates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRates := ratesmocks.NewMockRatesIntegrator(ctrl)
	mockRepo := mocks.NewMockExchangeRateRepository(ctrl)
	store := cache.NewMemoryStore(nil)
	ctx := context.Background()

	latest := []*domain.ExchangeRate{
		{Base: domain.CurrencyUSD, Currency: domain.CurrencyEUR, Rate: decimal.RequireFromString("0.93")},
		{Base: domain.CurrencyUSD, Currency: domain.CurrencyJPY, Rate: decimal.RequireFromString("151.2")},
	}

	tests := []struct {
		name          string
		setup         func()
		expectedCount int
		expectedErr   bool
		cacheDropped  bool
	}{
		{
			name: "stores the rates and drops the cached table",
			setup: func() {
				mockRates.EXPECT().
					LatestRates(gomock.Any(), domain.CurrencyUSD, []domain.Currency{"USD", "EUR", "JPY"}).
					Return(latest, nil)
				mockRepo.EXPECT().UpsertRates(gomock.Any(), latest).Return(nil)
			},
			expectedCount: 2,
			cacheDropped:  true,
		},
		{
			name: "provider failure keeps the cached table",
			setup: func() {
				mockRates.EXPECT().LatestRates(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
			},
			expectedErr: true,
		},
		{
			name: "storage failure is reported",
			setup: func() {
				mockRates.EXPECT().LatestRates(gomock.Any(), gomock.Any(), gomock.Any()).Return(latest, nil)
				mockRepo.EXPECT().UpsertRates(gomock.Any(), latest).Return(errors.New("db down"))
			},
			expectedErr: true,
		},
		{
			name: "empty answer stores nothing",
			setup: func() {
				mockRates.EXPECT().LatestRates(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, "rates:USD", map[string]string{"EUR": "0.9"}, time.Hour))
			tt.setup()

			service := NewExchangeRateSyncService(mockRates, mockRepo, store, testConfig())
			count, err := service.SyncRates(ctx)

			if tt.expectedErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedCount, count)

			var cached map[string]string
			found, _ := store.Get(ctx, "rates:USD", &cached)
			assert.Equal(t, !tt.cacheDropped, found)
		})
	}
}

func TestExchangeRateSyncService_StatusAfterSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRates := ratesmocks.NewMockRatesIntegrator(ctrl)
	mockRepo := mocks.NewMockExchangeRateRepository(ctrl)

	mockRates.EXPECT().LatestRates(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	service := NewExchangeRateSyncService(mockRates, mockRepo, cache.NewMemoryStore(nil), testConfig())
	service.syncExchangeRates(context.Background())

	status := service.GetStatus()
	assert.Equal(t, false, status["sync_running"])
	assert.Contains(t, status["last_sync_error"], "timeout")
	assert.Equal(t, "0 */6 * * *", status["sync_cron"])
}

func TestExchangeRateSyncService_DisabledStartIsNoop(t *testing.T) {
	cfg := testConfig()
	cfg.ExchangeRateSync.Enabled = false

	service := NewExchangeRateSyncService(nil, nil, cache.NewMemoryStore(nil), cfg)

	assert.NoError(t, service.Start(context.Background()))
}
