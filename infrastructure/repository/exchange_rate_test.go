package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniqverse/marketplace-api/internal/domain"
)

func TestUpsertRatesQuery(t *testing.T) {
	fetched := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	rates := []*domain.ExchangeRate{
		{Base: domain.CurrencyUSD, Currency: domain.CurrencyEUR, Rate: decimal.RequireFromString("0.92"), Source: "open.er-api", FetchedAt: fetched},
		{Base: domain.CurrencyUSD, Currency: domain.CurrencyJPY, Rate: decimal.RequireFromString("149.5"), Source: "open.er-api", FetchedAt: fetched},
	}

	query, args, err := upsertRatesQuery(rates).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "VALUES ($1,$2,$3,$4,$5),($6,$7,$8,$9,$10)")
	assert.Contains(t, query, "ON CONFLICT (base, currency) DO UPDATE")
	assert.Len(t, args, 10)
	assert.Equal(t, "JPY", args[6])
}
