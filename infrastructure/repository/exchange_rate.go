package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/uniqverse/marketplace-api/infrastructure/database/postgres"
	"github.com/uniqverse/marketplace-api/internal/domain"
)

//go:generate mockgen -source=exchange_rate.go -destination=mocks/exchange_rate.go -package=mocks

type ExchangeRateRepository interface {
	ListLatest(ctx context.Context, base domain.Currency) ([]*domain.ExchangeRate, error)
	UpsertRates(ctx context.Context, rates []*domain.ExchangeRate) error
}

type exchangeRateRepository struct {
	conn postgres.Conn
}

func NewExchangeRateRepository(conn postgres.Conn) ExchangeRateRepository {
	return &exchangeRateRepository{
		conn: conn,
	}
}

func (r *exchangeRateRepository) ListLatest(ctx context.Context, base domain.Currency) ([]*domain.ExchangeRate, error) {
	query, args, err := squirrel.
		Select("base", "currency", "rate", "source", "fetched_at").
		From(exchangeRatesTable).
		Where(squirrel.Eq{"base": string(base)}).
		OrderBy("currency").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select exchange rates query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select exchange rates: %w", err)
	}
	defer rows.Close()

	var rates []*domain.ExchangeRate
	for rows.Next() {
		var (
			rate           domain.ExchangeRate
			from, currency string
			value          any
		)
		if err := rows.Scan(&from, &currency, &value, &rate.Source, &rate.FetchedAt); err != nil {
			return nil, fmt.Errorf("scan exchange rate: %w", err)
		}

		values, err := decimals(value)
		if err != nil {
			return nil, err
		}
		rate.Base = domain.Currency(from)
		rate.Currency = domain.Currency(currency)
		rate.Rate = values[0]

		rates = append(rates, &rate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exchange rates: %w", err)
	}

	return rates, nil
}

// UpsertRates writes all rates in one transaction.
func (r *exchangeRateRepository) UpsertRates(ctx context.Context, rates []*domain.ExchangeRate) error {
	if len(rates) == 0 {
		return nil
	}

	query, args, err := upsertRatesQuery(rates).ToSql()
	if err != nil {
		return fmt.Errorf("build upsert exchange rates query: %w", err)
	}

	return r.conn.RunInTransaction(ctx, func(tx postgres.Queryer) error {
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert exchange rates: %w", err)
		}
		return nil
	})
}

func upsertRatesQuery(rates []*domain.ExchangeRate) squirrel.InsertBuilder {
	builder := squirrel.
		Insert(exchangeRatesTable).
		Columns("base", "currency", "rate", "source", "fetched_at")

	for _, rate := range rates {
		builder = builder.Values(string(rate.Base), string(rate.Currency), rate.Rate, rate.Source, rate.FetchedAt)
	}

	return builder.
		Suffix("ON CONFLICT (base, currency) DO UPDATE SET rate = EXCLUDED.rate, source = EXCLUDED.source, fetched_at = EXCLUDED.fetched_at").
		PlaceholderFormat(squirrel.Dollar)
}
