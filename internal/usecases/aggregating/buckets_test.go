package aggregating

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniqverse/marketplace-api/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func commission(at time.Time, sale, rate, amount string) *domain.Commission {
	return &domain.Commission{
		SaleAmount:       dec(sale),
		CommissionRate:   dec(rate),
		CommissionAmount: dec(amount),
		Status:           domain.CommissionStatusPending,
		CreatedAt:        at,
	}
}

func TestBuckets_ThreeCommissionsOnOneDay(t *testing.T) {
	now := time.Date(2024, 5, 20, 18, 0, 0, 0, time.UTC)
	window := LastDays(now, 30)
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	records := []*domain.Commission{
		commission(day.Add(9*time.Hour), "100", "0.1", "10"),
		commission(day.Add(13*time.Hour), "100", "0.1", "10"),
		commission(day.Add(23*time.Hour+59*time.Minute), "100", "0.1", "10"),
	}

	buckets := Buckets(CommissionEntries(records), window, Day)
	require.Len(t, buckets, 30)

	var found bool
	for _, b := range buckets {
		if b.Date != "2024-05-10" {
			assert.Zero(t, b.TransactionCount, b.Date)
			continue
		}
		found = true
		assert.True(t, dec("30").Equal(b.VendorEarnings), "vendor earnings %s", b.VendorEarnings)
		assert.True(t, dec("30").Equal(b.PlatformEarnings), "platform earnings %s", b.PlatformEarnings)
		assert.Equal(t, 3, b.TransactionCount)
	}
	assert.True(t, found)
}

func TestBuckets_VolumeMatchesNonCancelledOrders(t *testing.T) {
	now := time.Date(2024, 5, 20, 18, 0, 0, 0, time.UTC)
	window := LastDays(now, 7)

	orders := []*domain.Order{
		{Total: dec("120.50"), Status: domain.OrderStatusDelivered, CreatedAt: time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)},
		{Total: dec("80.25"), Status: domain.OrderStatusPending, CreatedAt: time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC)},
		{Total: dec("999.99"), Status: domain.OrderStatusCancelled, CreatedAt: time.Date(2024, 5, 16, 13, 0, 0, 0, time.UTC)},
		{Total: dec("10"), Status: domain.OrderStatusShipped, CreatedAt: time.Date(2024, 5, 20, 17, 0, 0, 0, time.UTC)},
		{Total: dec("5"), Status: domain.OrderStatusRefunded, CreatedAt: time.Date(2024, 5, 18, 1, 0, 0, 0, time.UTC)},
	}

	expected := decimal.Zero
	for _, o := range orders {
		if o.Status != domain.OrderStatusCancelled {
			expected = expected.Add(o.Total)
		}
	}

	buckets := Buckets(OrderEntries(orders), window, Day)
	require.Len(t, buckets, 7)

	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.TotalVolume)
		assert.Zero(t, b.TransactionCount)
	}
	assert.True(t, expected.Equal(total), "expected %s got %s", expected, total)
}

func TestBuckets_HalfOpenBoundaries(t *testing.T) {
	window := Window{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}
	entries := []Entry{
		{At: window.Start, Transactions: 1},                                     // first day
		{At: window.Start.Add(24*time.Hour - time.Nanosecond), Transactions: 1}, // still first day
		{At: window.Start.Add(24 * time.Hour), Transactions: 1},                 // second day
		{At: window.End, Transactions: 1},                                       // outside
		{At: window.Start.Add(-time.Nanosecond), Transactions: 1},               // outside
	}

	buckets := Buckets(entries, window, Day)
	require.Len(t, buckets, 2)
	assert.Equal(t, "2024-01-01", buckets[0].Date)
	assert.Equal(t, 2, buckets[0].TransactionCount)
	assert.Equal(t, "2024-01-02", buckets[1].Date)
	assert.Equal(t, 1, buckets[1].TransactionCount)
}

func TestBuckets_UsesWindowLocation(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, loc)
	window := LastDays(now, 2)

	// 02:00 UTC on the 10th is still the 9th at UTC-3
	entries := []Entry{{At: time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC), Transactions: 1}}

	buckets := Buckets(entries, window, Day)
	require.Len(t, buckets, 2)
	assert.Equal(t, "2024-03-09", buckets[0].Date)
	assert.Equal(t, 1, buckets[0].TransactionCount)
	assert.Equal(t, 0, buckets[1].TransactionCount)
}

func TestBuckets_WeekAndMonth(t *testing.T) {
	now := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC) // Thursday

	weekly := Buckets(nil, LastMonths(now, 1), Week)
	require.NotEmpty(t, weekly)
	for _, b := range weekly {
		day, err := time.Parse("2006-01-02", b.Date)
		require.NoError(t, err)
		assert.Equal(t, time.Monday, day.Weekday(), b.Date)
	}
	assert.Equal(t, "2024-03-11", weekly[len(weekly)-1].Date)

	monthly := Buckets([]Entry{
		{At: time.Date(2023, 3, 20, 0, 0, 0, 0, time.UTC), Volume: dec("1")},
		{At: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), Volume: dec("2")},
		{At: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Volume: dec("3")},
	}, LastMonths(now, 12), Month)
	require.Len(t, monthly, 13)
	assert.Equal(t, "2023-03-01", monthly[0].Date)
	assert.Equal(t, "2024-03-01", monthly[12].Date)
	assert.True(t, dec("5").Equal(monthly[11].TotalVolume))
	assert.True(t, dec("1").Equal(monthly[0].TotalVolume))
}

func TestCommissionEntries_SkipCancelled(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	cancelled := commission(at, "100", "0.1", "10")
	cancelled.Status = domain.CommissionStatusCancelled

	entries := SaleEntries([]*domain.Commission{commission(at, "50", "0.2", "10"), cancelled})
	require.Len(t, entries, 1)
	assert.True(t, dec("50").Equal(entries[0].Volume))
	assert.True(t, dec("10").Equal(entries[0].PlatformEarnings))

	assert.True(t, CommissionEntries([]*domain.Commission{commission(at, "50", "0.2", "10")})[0].Volume.IsZero())
}

func TestBuckets_NegativePlatformEarningsArePreserved(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	c := commission(at, "100", "0.1", "10")
	c.PerformanceBonus = dec("25")

	buckets := Buckets(CommissionEntries([]*domain.Commission{c}), LastDays(at, 1), Day)
	require.Len(t, buckets, 1)
	assert.True(t, dec("-15").Equal(buckets[0].PlatformEarnings))
}

func TestLastDaysAndShift(t *testing.T) {
	now := time.Date(2024, 5, 20, 18, 0, 0, 0, time.UTC)

	w := LastDays(now, 30)
	assert.Equal(t, time.Date(2024, 4, 21, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 5, 21, 0, 0, 0, 0, time.UTC), w.End)

	prev := w.ShiftDays(30)
	assert.Equal(t, w.Start, prev.End)
	assert.Equal(t, time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC), prev.Start)

	m := LastMonths(now, 3)
	assert.Equal(t, time.Date(2024, 2, 21, 0, 0, 0, 0, time.UTC), m.Start)
	assert.Equal(t, m.Start, m.ShiftMonths(3).End)
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("week")
	require.NoError(t, err)
	assert.Equal(t, Week, g)

	_, err = ParseGranularity("hour")
	assert.Error(t, err)
}
