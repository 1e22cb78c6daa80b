package converting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uniqverse/marketplace-api/internal/config"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/pkg/cache"
	"github.com/uniqverse/marketplace-api/pkg/log"
)

var (
	ErrNoRates         = errors.New("no exchange rates available")
	ErrRateUnavailable = errors.New("exchange rate unavailable")
)

var one = decimal.NewFromInt(1)

// Conversion applies one resolved rate to every amount of a response.
type Conversion struct {
	Currency domain.Currency
	Rate     decimal.Decimal

	identity bool
}

// Identity is the conversion into the base currency itself.
func Identity(currency domain.Currency) Conversion {
	return Conversion{Currency: currency, Rate: one, identity: true}
}

// IsIdentity reports whether c targets the base currency. A foreign currency
// quoted at exactly 1 is not an identity and still gets rounded.
func (c Conversion) IsIdentity() bool {
	return c.identity
}

// Apply converts amount. Identity conversions return amount untouched; any
// other rate is rounded half-to-even to the currency's minor units.
func (c Conversion) Apply(amount decimal.Decimal) decimal.Decimal {
	if c.IsIdentity() {
		return amount
	}
	return amount.Mul(c.Rate).RoundBank(c.Currency.MinorUnits())
}

// ApplyBuckets converts the money fields of every bucket.
func (c Conversion) ApplyBuckets(in []domain.PeriodBucket) []domain.PeriodBucket {
	out := make([]domain.PeriodBucket, len(in))
	for i, b := range in {
		b.PlatformEarnings = c.Apply(b.PlatformEarnings)
		b.VendorEarnings = c.Apply(b.VendorEarnings)
		b.TotalVolume = c.Apply(b.TotalVolume)
		out[i] = b
	}
	return out
}

type Service struct {
	base      domain.Currency
	supported []domain.Currency
	allowed   map[domain.Currency]struct{}
	providers []RateProvider
	store     cache.Store
	ttl       time.Duration
}

// NewService builds a converter. Providers are consulted in order; the first
// one quoting a currency wins.
func NewService(cfg *config.Config, store cache.Store, providers ...RateProvider) *Service {
	base := domain.Currency(cfg.Currency.Base)
	if base == "" {
		base = domain.CurrencyUSD
	}

	s := &Service{
		base:      base,
		allowed:   map[domain.Currency]struct{}{base: {}},
		supported: []domain.Currency{base},
		providers: providers,
		store:     store,
		ttl:       cfg.Rates.CacheTTL,
	}

	for _, code := range cfg.Currency.Supported {
		currency := domain.Currency(strings.ToUpper(strings.TrimSpace(code)))
		if _, ok := s.allowed[currency]; ok || currency == "" {
			continue
		}
		s.allowed[currency] = struct{}{}
		s.supported = append(s.supported, currency)
	}

	if s.ttl <= 0 {
		s.ttl = time.Hour
	}

	return s
}

func (s *Service) Base() domain.Currency {
	return s.base
}

func (s *Service) Supported() []domain.Currency {
	out := make([]domain.Currency, len(s.supported))
	copy(out, s.supported)
	return out
}

func (s *Service) Resolve(code string) domain.Currency {
	currency := domain.Currency(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := s.allowed[currency]; ok {
		return currency
	}
	return s.base
}

func (s *Service) ForCurrency(ctx context.Context, code string) (Conversion, error) {
	currency := s.Resolve(code)
	if currency == s.base {
		return Identity(currency), nil
	}

	rates, err := s.rates(ctx)
	if err != nil {
		return Conversion{}, fmt.Errorf("converting: load rates: %w", err)
	}

	rate, ok := rates[currency]
	if !ok {
		return Conversion{}, fmt.Errorf("converting: %s: %w", currency, ErrRateUnavailable)
	}

	return Conversion{Currency: currency, Rate: rate}, nil
}

func (s *Service) Convert(ctx context.Context, amount decimal.Decimal, code string) (decimal.Decimal, error) {
	conversion, err := s.ForCurrency(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}
	return conversion.Apply(amount), nil
}

// RatesCacheKey is the cache entry holding the merged rate table for base.
func RatesCacheKey(base domain.Currency) string {
	return cache.Key("rates", base)
}

func (s *Service) rates(ctx context.Context) (map[domain.Currency]decimal.Decimal, error) {
	rates, _, err := cache.ReadThrough(ctx, s.store, RatesCacheKey(s.base), s.ttl, s.loadRates)
	return rates, err
}

func (s *Service) loadRates(ctx context.Context) (map[domain.Currency]decimal.Decimal, error) {
	logger := log.ForContext(ctx)
	merged := make(map[domain.Currency]decimal.Decimal)

	for _, provider := range s.providers {
		rates, err := provider.Rates(ctx, s.base)
		if err != nil {
			logger.WithError(err).Warnf("rate provider %s failed", provider.Name())
			continue
		}

		for currency, rate := range rates {
			if _, seen := merged[currency]; seen || !rate.IsPositive() {
				continue
			}
			merged[currency] = rate
		}
	}

	if len(merged) == 0 {
		return nil, ErrNoRates
	}

	return merged, nil
}
