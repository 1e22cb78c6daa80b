package repository

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/uniqverse/marketplace-api/pkg/utils"
)

const (
	usersTable         = "users"
	productsTable      = "products"
	ordersTable        = "orders"
	commissionsTable   = "commissions"
	exchangeRatesTable = "exchange_rates"
)

type scanner interface {
	Scan(dest ...any) error
}

// decimals parses the raw values scanned from NUMERIC columns, in order.
func decimals(raw ...any) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(raw))
	for i, v := range raw {
		d, err := utils.ParseDecimal(v)
		if err != nil {
			return nil, fmt.Errorf("numeric column %d: %w", i, err)
		}
		out[i] = d
	}
	return out, nil
}

// createdAtOrNow lets inserts carry an explicit timestamp, as imports and
// seeds do, and falls back to the database clock.
func createdAtOrNow(t time.Time) any {
	if t.IsZero() {
		return squirrel.Expr("NOW()")
	}
	return t
}
