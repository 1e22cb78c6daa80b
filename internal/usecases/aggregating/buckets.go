package aggregating

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/pkg/utils"
)

type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
	Year  Granularity = "year"
)

// Entry is one time-stamped contribution to a bucket.
type Entry struct {
	At               time.Time
	PlatformEarnings decimal.Decimal
	VendorEarnings   decimal.Decimal
	Volume           decimal.Decimal
	Transactions     int
}

// CommissionEntries turns commission records into earnings entries.
// Cancelled records are left out.
func CommissionEntries(commissions []*domain.Commission) []Entry {
	return commissionEntries(commissions, false)
}

// SaleEntries is CommissionEntries with the sale amount counted as volume.
// It is used where commission records are the only source of sales, as for a
// single vendor.
func SaleEntries(commissions []*domain.Commission) []Entry {
	return commissionEntries(commissions, true)
}

func commissionEntries(commissions []*domain.Commission, withVolume bool) []Entry {
	entries := make([]Entry, 0, len(commissions))
	for _, c := range commissions {
		if !c.Counted() {
			continue
		}
		entry := Entry{
			At:               c.CreatedAt,
			PlatformEarnings: c.PlatformEarnings(),
			VendorEarnings:   c.VendorEarnings(),
			Transactions:     1,
		}
		if withVolume {
			entry.Volume = c.SaleAmount
		}
		entries = append(entries, entry)
	}
	return entries
}

// OrderEntries turns orders into volume entries, skipping cancelled orders.
func OrderEntries(orders []*domain.Order) []Entry {
	entries := make([]Entry, 0, len(orders))
	for _, o := range orders {
		if !o.CountsAsRevenue() {
			continue
		}
		entries = append(entries, Entry{At: o.CreatedAt, Volume: o.Total})
	}
	return entries
}

// Truncate returns the start of the calendar unit holding t, in t's location.
// Weeks start on Monday.
func Truncate(t time.Time, g Granularity) time.Time {
	switch g {
	case Week:
		return utils.StartOfWeek(t)
	case Month:
		return utils.StartOfMonth(t)
	case Year:
		return utils.StartOfYear(t)
	default:
		return utils.StartOfDay(t)
	}
}

func next(t time.Time, g Granularity) time.Time {
	switch g {
	case Week:
		return t.AddDate(0, 0, 7)
	case Month:
		return t.AddDate(0, 1, 0)
	case Year:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case Day, Week, Month, Year:
		return g, nil
	}
	return "", fmt.Errorf("unknown granularity %q", s)
}

// Buckets sums entries into one bucket per calendar unit of w, in order.
//
// Calendar units are computed in the location of w.Start. An entry belongs to
// the bucket whose [start, end) holds it; entries outside w are ignored.
func Buckets(entries []Entry, w Window, g Granularity) []domain.PeriodBucket {
	loc := w.Start.Location()

	buckets := make([]domain.PeriodBucket, 0)
	index := make(map[int64]int)
	for start := Truncate(w.Start, g); start.Before(w.End); start = next(start, g) {
		index[start.Unix()] = len(buckets)
		buckets = append(buckets, domain.PeriodBucket{
			Date:             start.Format(utils.DateLayout),
			PlatformEarnings: decimal.Zero,
			VendorEarnings:   decimal.Zero,
			TotalVolume:      decimal.Zero,
		})
	}

	for _, e := range entries {
		if !w.Contains(e.At) {
			continue
		}

		i, ok := index[Truncate(e.At.In(loc), g).Unix()]
		if !ok {
			continue
		}

		b := &buckets[i]
		b.PlatformEarnings = b.PlatformEarnings.Add(e.PlatformEarnings)
		b.VendorEarnings = b.VendorEarnings.Add(e.VendorEarnings)
		b.TotalVolume = b.TotalVolume.Add(e.Volume)
		b.TransactionCount += e.Transactions
	}

	return buckets
}
