package converting_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniqverse/marketplace-api/infrastructure/repository/mocks"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/internal/usecases/converting"
	"go.uber.org/mock/gomock"
)

func TestParseStaticProvider(t *testing.T) {
	data := []byte(`
base: usd
rates:
  eur: 0.91
  JPY: "150.25"
`)

	provider, err := converting.ParseStaticProvider(data)
	require.NoError(t, err)

	rates, err := provider.Rates(context.Background(), domain.CurrencyUSD)
	require.NoError(t, err)
	assert.Equal(t, "0.91", rates[domain.CurrencyEUR].String())
	assert.Equal(t, "150.25", rates[domain.CurrencyJPY].String())

	_, err = provider.Rates(context.Background(), domain.CurrencyEUR)
	assert.Error(t, err)
}

func TestParseStaticProvider_InvalidRate(t *testing.T) {
	_, err := converting.ParseStaticProvider([]byte("rates:\n  EUR: abc\n"))
	assert.Error(t, err)
}

func TestDatabaseProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockExchangeRateRepository(ctrl)

	repo.EXPECT().ListLatest(gomock.Any(), domain.CurrencyUSD).Return([]*domain.ExchangeRate{
		{Base: domain.CurrencyUSD, Currency: domain.CurrencyCAD, Rate: d("1.35"), FetchedAt: time.Now()},
	}, nil)

	rates, err := converting.NewDatabaseProvider(repo).Rates(context.Background(), domain.CurrencyUSD)

	require.NoError(t, err)
	assert.Equal(t, "1.35", rates[domain.CurrencyCAD].String())
}

func TestDatabaseProvider_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockExchangeRateRepository(ctrl)

	repo.EXPECT().ListLatest(gomock.Any(), domain.CurrencyUSD).Return(nil, errors.New("boom"))

	_, err := converting.NewDatabaseProvider(repo).Rates(context.Background(), domain.CurrencyUSD)
	assert.Error(t, err)
}
