package rates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/uniqverse/marketplace-api/infrastructure/integrator/rates/ratesclient"
	"github.com/uniqverse/marketplace-api/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

const Source = "open.er-api"

type RatesIntegrator interface {
	// LatestRates returns the rates of the requested currencies quoted against base.
	LatestRates(ctx context.Context, base domain.Currency, currencies []domain.Currency) ([]*domain.ExchangeRate, error)
}

type RatesService struct {
	Client ratesclient.Client
	now    func() time.Time
}

func New(client ratesclient.Client) RatesIntegrator {
	return &RatesService{
		Client: client,
		now:    time.Now,
	}
}

func (s *RatesService) LatestRates(ctx context.Context, base domain.Currency, currencies []domain.Currency) ([]*domain.ExchangeRate, error) {
	latest, err := s.Client.GetLatest(ctx, string(base))
	if err != nil {
		return nil, err
	}

	if latest.BaseCode != "" && !strings.EqualFold(latest.BaseCode, string(base)) {
		return nil, fmt.Errorf("rates quoted in %s, expected %s", latest.BaseCode, base)
	}

	fetchedAt := latest.UpdatedAt()
	if fetchedAt.IsZero() {
		fetchedAt = s.now().UTC()
	}

	rates := make([]*domain.ExchangeRate, 0, len(currencies))
	for _, currency := range currencies {
		if currency == base {
			continue
		}

		rate, ok := latest.Rates[string(currency)]
		if !ok || !rate.IsPositive() {
			continue
		}

		rates = append(rates, &domain.ExchangeRate{
			Base:      base,
			Currency:  currency,
			Rate:      rate,
			Source:    Source,
			FetchedAt: fetchedAt,
		})
	}

	return rates, nil
}
