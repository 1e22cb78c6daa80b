package converting

//go:generate mockgen -source=interfaces.go -destination=mocks/converter.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/uniqverse/marketplace-api/internal/domain"
)

// RateProvider returns exchange rates quoted against base.
type RateProvider interface {
	Name() string
	Rates(ctx context.Context, base domain.Currency) (map[domain.Currency]decimal.Decimal, error)
}

// Converter turns base currency amounts into a display currency.
type Converter interface {
	Base() domain.Currency
	Supported() []domain.Currency
	// Resolve maps a requested code onto the allow-list, falling back to the base currency.
	Resolve(code string) domain.Currency
	ForCurrency(ctx context.Context, code string) (Conversion, error)
	Convert(ctx context.Context, amount decimal.Decimal, code string) (decimal.Decimal, error)
}
