package aggregating

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PercentChange returns the period-over-period change in percent, rounded to
// two places.
//
// Growth from a zero baseline is reported as a flat 100 when current is
// positive and 0 otherwise; it is never reported above 100.
func PercentChange(previous, current decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}

	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}

func PercentChangeInt(previous, current int) decimal.Decimal {
	return PercentChange(decimal.NewFromInt(int64(previous)), decimal.NewFromInt(int64(current)))
}
