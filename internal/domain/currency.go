package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
	CurrencyJPY Currency = "JPY"
	CurrencyINR Currency = "INR"
)

var zeroDecimalCurrencies = map[Currency]struct{}{
	CurrencyJPY: {},
}

// MinorUnits is the number of decimal places amounts are displayed with.
func (c Currency) MinorUnits() int32 {
	if _, ok := zeroDecimalCurrencies[c]; ok {
		return 0
	}
	return 2
}

// ExchangeRate is the price of one unit of Base in Currency.
type ExchangeRate struct {
	Base      Currency        `json:"base"`
	Currency  Currency        `json:"currency"`
	Rate      decimal.Decimal `json:"rate"`
	Source    string          `json:"source"`
	FetchedAt time.Time       `json:"fetchedAt"`
}
