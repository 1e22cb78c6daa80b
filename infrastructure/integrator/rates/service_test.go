package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniqverse/marketplace-api/infrastructure/integrator/rates/ratesclient"
	"github.com/uniqverse/marketplace-api/internal/config"
	"github.com/uniqverse/marketplace-api/internal/domain"
)

func newTestService(t *testing.T, handler http.HandlerFunc) RatesIntegrator {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(ratesclient.NewClient(config.Rates{APIURL: server.URL + "/v6/latest"}))
}

func TestRatesService_LatestRates(t *testing.T) {
	var requestedPath string
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"result": "success",
			"base_code": "USD",
			"time_last_update_unix": 1714521600,
			"rates": {"USD": 1, "EUR": 0.9301, "JPY": 153.2, "BRL": 5.1}
		}`))
	})

	rates, err := service.LatestRates(context.Background(), domain.CurrencyUSD,
		[]domain.Currency{domain.CurrencyUSD, domain.CurrencyEUR, domain.CurrencyJPY, domain.CurrencyINR})

	require.NoError(t, err)
	assert.Equal(t, "/v6/latest/USD", requestedPath)
	require.Len(t, rates, 2)

	assert.Equal(t, domain.CurrencyEUR, rates[0].Currency)
	assert.Equal(t, "0.9301", rates[0].Rate.String())
	assert.Equal(t, Source, rates[0].Source)
	assert.Equal(t, int64(1714521600), rates[0].FetchedAt.Unix())

	assert.Equal(t, domain.CurrencyJPY, rates[1].Currency)
	assert.Equal(t, "153.2", rates[1].Rate.String())
}

func TestRatesService_ErrorResult(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": "error", "error-type": "unsupported-code"}`))
	})

	_, err := service.LatestRates(context.Background(), domain.CurrencyUSD, []domain.Currency{domain.CurrencyEUR})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported-code")
}

func TestRatesService_HTTPFailure(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := service.LatestRates(context.Background(), domain.CurrencyUSD, []domain.Currency{domain.CurrencyEUR})

	assert.Error(t, err)
}

func TestRatesService_BaseMismatch(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": "success", "base_code": "EUR", "rates": {"USD": 1.08}}`))
	})

	_, err := service.LatestRates(context.Background(), domain.CurrencyUSD, []domain.Currency{domain.CurrencyEUR})

	assert.Error(t, err)
}
