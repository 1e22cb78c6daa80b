package commissioning

import (
	"github.com/shopspring/decimal"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/internal/usecases/aggregating"
	"github.com/uniqverse/marketplace-api/internal/usecases/converting"
)

var hundred = decimal.NewFromInt(100)

type totals struct {
	sales            decimal.Decimal
	vendorEarnings   decimal.Decimal
	platformEarnings decimal.Decimal
	pending          decimal.Decimal
	paid             decimal.Decimal
	rateSum          decimal.Decimal
	count            int
}

func sumCommissions(commissions []*domain.Commission) totals {
	var t totals
	for _, c := range commissions {
		if !c.Counted() {
			continue
		}

		t.sales = t.sales.Add(c.SaleAmount)
		t.vendorEarnings = t.vendorEarnings.Add(c.VendorEarnings())
		t.platformEarnings = t.platformEarnings.Add(c.PlatformEarnings())
		t.rateSum = t.rateSum.Add(c.CommissionRate)
		t.count++

		switch c.Status {
		case domain.CommissionStatusPending:
			t.pending = t.pending.Add(c.CommissionAmount)
		case domain.CommissionStatusPaid:
			t.paid = t.paid.Add(c.CommissionAmount)
		}
	}
	return t
}

// buildOverview compares the current window with the previous one of equal length.
func buildOverview(current, previous []*domain.Commission) domain.CommissionOverview {
	cur := sumCommissions(current)
	prev := sumCommissions(previous)

	averageRate := decimal.Zero
	if cur.count > 0 {
		averageRate = cur.rateSum.Div(decimal.NewFromInt(int64(cur.count))).Mul(hundred).Round(2)
	}

	return domain.CommissionOverview{
		TotalSales:             cur.sales,
		TotalVendorEarnings:    cur.vendorEarnings,
		TotalPlatformEarnings:  cur.platformEarnings,
		TotalTransactions:      cur.count,
		PendingPayouts:         cur.pending,
		PaidPayouts:            cur.paid,
		AverageCommissionRate:  averageRate,
		SalesGrowth:            aggregating.PercentChange(prev.sales, cur.sales),
		PlatformEarningsGrowth: aggregating.PercentChange(prev.platformEarnings, cur.platformEarnings),
	}
}

func convertOverview(o domain.CommissionOverview, conv converting.Conversion) domain.CommissionOverview {
	o.TotalSales = conv.Apply(o.TotalSales)
	o.TotalVendorEarnings = conv.Apply(o.TotalVendorEarnings)
	o.TotalPlatformEarnings = conv.Apply(o.TotalPlatformEarnings)
	o.PendingPayouts = conv.Apply(o.PendingPayouts)
	o.PaidPayouts = conv.Apply(o.PaidPayouts)
	return o
}

func convertTransactions(in []domain.CommissionTransaction, conv converting.Conversion) []domain.CommissionTransaction {
	out := make([]domain.CommissionTransaction, len(in))
	for i, tx := range in {
		tx.SaleAmount = conv.Apply(tx.SaleAmount)
		tx.CommissionAmount = conv.Apply(tx.CommissionAmount)
		tx.TransactionFee = conv.Apply(tx.TransactionFee)
		tx.PerformanceBonus = conv.Apply(tx.PerformanceBonus)
		tx.PlatformEarnings = conv.Apply(tx.PlatformEarnings)
		out[i] = tx
	}
	return out
}

func convertVendors(in []domain.VendorEarnings, conv converting.Conversion) []domain.VendorEarnings {
	out := make([]domain.VendorEarnings, len(in))
	for i, v := range in {
		v.TotalSales = conv.Apply(v.TotalSales)
		v.VendorEarnings = conv.Apply(v.VendorEarnings)
		v.PlatformEarnings = conv.Apply(v.PlatformEarnings)
		out[i] = v
	}
	return out
}

func transactions(commissions []*domain.Commission) []domain.CommissionTransaction {
	out := make([]domain.CommissionTransaction, 0, len(commissions))
	for _, c := range commissions {
		out = append(out, domain.NewCommissionTransaction(c))
	}
	return out
}
