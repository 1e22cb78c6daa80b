package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniqverse/marketplace-api/internal/domain"
)

func TestPeriodOrdersQuery_ExcludesCancelled(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	query, args, err := periodOrdersQuery(start, end).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "o.status <> $1")
	assert.Contains(t, query, "o.created_at >= $2 AND o.created_at < $3")
	assert.Equal(t, []interface{}{string(domain.OrderStatusCancelled), start, end}, args)
}

func TestCountCreatedBetweenQuery(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	query, args, err := countCreatedBetweenQuery(domain.RoleCustomer, start, end).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM users WHERE role = $1 AND created_at >= $2 AND created_at < $3", query)
	assert.Equal(t, []interface{}{"CUSTOMER", start, end}, args)
}

func TestScanOrder(t *testing.T) {
	created := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	order, err := scanOrder(fakeRow{int64(9), "ORD-9", int64(3), []byte("59.90"), "SHIPPED", created, "Ana"})
	require.NoError(t, err)

	assert.Equal(t, "59.9", order.Total.String())
	assert.Equal(t, domain.OrderStatusShipped, order.Status)
	assert.Equal(t, "Ana", order.CustomerName)
	assert.True(t, order.CountsAsRevenue())
}
