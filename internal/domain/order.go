package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"
)

type Order struct {
	ID          int64           `json:"id"`
	OrderNumber string          `json:"orderNumber"`
	UserID      int64           `json:"userId"`
	Total       decimal.Decimal `json:"total"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`

	CustomerName string `json:"customerName,omitempty"`
}

// CountsAsRevenue is false for cancelled orders.
func (o *Order) CountsAsRevenue() bool {
	return o.Status != OrderStatusCancelled
}
