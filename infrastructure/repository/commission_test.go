package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniqverse/marketplace-api/internal/domain"
)

func TestPeriodCommissionsQuery(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)

	query, args, err := periodCommissionsQuery(start, end).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM commissions c JOIN users u ON u.id = c.vendor_id")
	assert.Contains(t, query, "JOIN products p ON p.id = c.product_id")
	assert.Contains(t, query, "JOIN orders o ON o.id = c.order_id")
	assert.Contains(t, query, "c.created_at >= $1")
	assert.Contains(t, query, "c.created_at < $2")
	assert.Equal(t, []interface{}{start, end}, args)
}

func TestPeriodCommissionsQuery_ForVendor(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := periodCommissionsQuery(start, start.AddDate(0, 1, 0)).
		Where("c.vendor_id = ?", int64(7)).
		ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "c.vendor_id = $3")
	assert.Len(t, args, 3)
	assert.Equal(t, int64(7), args[2])
}

func TestTopVendorsQuery(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)

	query, args, err := topVendorsQuery(start, end, 10).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "c.status <> $1")
	assert.Contains(t, query, "COALESCE(c.transaction_fee, 0)")
	assert.Contains(t, query, "GROUP BY c.vendor_id, u.name")
	assert.Contains(t, query, "ORDER BY vendor_earnings DESC, c.vendor_id")
	assert.Contains(t, query, "LIMIT 10")
	assert.Equal(t, []interface{}{"CANCELLED", start, end}, args)
}

func TestUpdateStatusQuery(t *testing.T) {
	query, args, err := updateStatusQuery(42, domain.CommissionStatusPending, domain.CommissionStatusPaid).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE commissions SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3", query)
	assert.Equal(t, []interface{}{"PAID", int64(42), "PENDING"}, args)
}

type fakeRow []any

func (r fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r[i].(int64)
		case *string:
			*p = r[i].(string)
		case *time.Time:
			*p = r[i].(time.Time)
		case *any:
			*p = r[i]
		}
	}
	return nil
}

func TestScanCommission(t *testing.T) {
	created := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	row := fakeRow{
		int64(1), int64(2), int64(3), int64(4),
		[]byte("100.00"), []byte("0.1000"), []byte("10.00"), nil, "2.5",
		"PENDING", created, created, "Acme", "Lamp", "ORD-1",
	}

	commission, err := scanCommission(row)
	require.NoError(t, err)

	assert.Equal(t, "100", commission.SaleAmount.String())
	assert.Equal(t, "0.1", commission.CommissionRate.String())
	assert.Equal(t, "10", commission.CommissionAmount.String())
	assert.True(t, commission.TransactionFee.IsZero())
	assert.Equal(t, "2.5", commission.PerformanceBonus.String())
	assert.Equal(t, domain.CommissionStatusPending, commission.Status)
	assert.Equal(t, "Acme", commission.VendorName)
	assert.Equal(t, "ORD-1", commission.OrderNumber)
}

func TestScanCommission_InvalidNumeric(t *testing.T) {
	created := time.Now()

	row := fakeRow{
		int64(1), int64(2), int64(3), int64(4),
		"not-a-number", "0.1", "10", nil, nil,
		"PENDING", created, created, "Acme", "Lamp", "ORD-1",
	}

	_, err := scanCommission(row)
	assert.Error(t, err)
}
