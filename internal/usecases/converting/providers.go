package converting

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/uniqverse/marketplace-api/infrastructure/repository"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/pkg/utils"
	"gopkg.in/yaml.v3"
)

// DatabaseProvider serves the rates kept fresh by the exchange rate sync job.
type DatabaseProvider struct {
	repo repository.ExchangeRateRepository
}

func NewDatabaseProvider(repo repository.ExchangeRateRepository) *DatabaseProvider {
	return &DatabaseProvider{repo: repo}
}

func (p *DatabaseProvider) Name() string { return "database" }

func (p *DatabaseProvider) Rates(ctx context.Context, base domain.Currency) (map[domain.Currency]decimal.Decimal, error) {
	rates, err := p.repo.ListLatest(ctx, base)
	if err != nil {
		return nil, err
	}

	out := make(map[domain.Currency]decimal.Decimal, len(rates))
	for _, rate := range rates {
		out[rate.Currency] = rate.Rate
	}
	return out, nil
}

// StaticProvider serves a fixed rate table.
type StaticProvider struct {
	name  string
	base  domain.Currency
	rates map[domain.Currency]decimal.Decimal
}

type staticRatesFile struct {
	Base  string            `yaml:"base"`
	Rates map[string]string `yaml:"rates"`
}

func (p *StaticProvider) Name() string { return p.name }

func (p *StaticProvider) Rates(_ context.Context, base domain.Currency) (map[domain.Currency]decimal.Decimal, error) {
	if base != p.base {
		return nil, fmt.Errorf("%s rates are quoted in %s, not %s", p.name, p.base, base)
	}

	out := make(map[domain.Currency]decimal.Decimal, len(p.rates))
	for currency, rate := range p.rates {
		out[currency] = rate
	}
	return out, nil
}

// DefaultProvider is the last resort table used when nothing fresher is known.
func DefaultProvider() *StaticProvider {
	return &StaticProvider{
		name: "defaults",
		base: domain.CurrencyUSD,
		rates: map[domain.Currency]decimal.Decimal{
			domain.CurrencyEUR: decimal.RequireFromString("0.92"),
			domain.CurrencyGBP: decimal.RequireFromString("0.79"),
			domain.CurrencyCAD: decimal.RequireFromString("1.36"),
			domain.CurrencyAUD: decimal.RequireFromString("1.52"),
			domain.CurrencyJPY: decimal.RequireFromString("149.50"),
			domain.CurrencyINR: decimal.RequireFromString("83.12"),
		},
	}
}

// LoadStaticProvider reads a YAML rate table:
//
//	base: USD
//	rates:
//	  EUR: 0.92
//	  JPY: 149.5
func LoadStaticProvider(path string) (*StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rates file: %w", err)
	}
	return ParseStaticProvider(data)
}

func ParseStaticProvider(data []byte) (*StaticProvider, error) {
	var file staticRatesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse rates file: %w", err)
	}

	base := domain.Currency(strings.ToUpper(strings.TrimSpace(file.Base)))
	if base == "" {
		base = domain.CurrencyUSD
	}

	rates := make(map[domain.Currency]decimal.Decimal, len(file.Rates))
	for code, raw := range file.Rates {
		rate, err := utils.ParseDecimal(raw)
		if err != nil {
			return nil, fmt.Errorf("rate for %s: %w", code, err)
		}
		rates[domain.Currency(strings.ToUpper(code))] = rate
	}

	return &StaticProvider{name: "static", base: base, rates: rates}, nil
}
