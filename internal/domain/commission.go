package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CommissionStatus string

const (
	CommissionStatusPending   CommissionStatus = "PENDING"
	CommissionStatusPaid      CommissionStatus = "PAID"
	CommissionStatusCancelled CommissionStatus = "CANCELLED"
)

var commissionTransitions = map[CommissionStatus][]CommissionStatus{
	CommissionStatusPending: {CommissionStatusPaid, CommissionStatusCancelled},
}

func (s CommissionStatus) Valid() bool {
	switch s {
	case CommissionStatusPending, CommissionStatusPaid, CommissionStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a record in status s may move to next.
func (s CommissionStatus) CanTransitionTo(next CommissionStatus) bool {
	for _, allowed := range commissionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Commission is the payout record written when an order completes.
// Every field except Status is immutable.
type Commission struct {
	ID               int64            `json:"id"`
	VendorID         int64            `json:"vendorId"`
	ProductID        int64            `json:"productId"`
	OrderID          int64            `json:"orderId"`
	SaleAmount       decimal.Decimal  `json:"saleAmount"`
	CommissionRate   decimal.Decimal  `json:"commissionRate"`
	CommissionAmount decimal.Decimal  `json:"commissionAmount"`
	TransactionFee   decimal.Decimal  `json:"transactionFee"`
	PerformanceBonus decimal.Decimal  `json:"performanceBonus"`
	Status           CommissionStatus `json:"status"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`

	// joined for display, empty when the query does not select them
	VendorName  string `json:"vendorName,omitempty"`
	ProductName string `json:"productName,omitempty"`
	OrderNumber string `json:"orderNumber,omitempty"`
}

// PlatformEarnings returns saleAmount * commissionRate + transactionFee - performanceBonus.
// The result is negative when the bonus exceeds the commission and fee.
func PlatformEarnings(saleAmount, commissionRate, transactionFee, performanceBonus decimal.Decimal) decimal.Decimal {
	return saleAmount.Mul(commissionRate).Add(transactionFee).Sub(performanceBonus)
}

// CommissionAmount is the payout stored when a record is created:
// saleAmount * commissionRate, rounded to cents.
func CommissionAmount(saleAmount, commissionRate decimal.Decimal) decimal.Decimal {
	return saleAmount.Mul(commissionRate).Round(2)
}

func (c *Commission) PlatformEarnings() decimal.Decimal {
	return PlatformEarnings(c.SaleAmount, c.CommissionRate, c.TransactionFee, c.PerformanceBonus)
}

// VendorEarnings is the stored payout; it is never re-derived from the rate.
func (c *Commission) VendorEarnings() decimal.Decimal {
	return c.CommissionAmount
}

// Counted reports whether the record takes part in earnings totals.
func (c *Commission) Counted() bool {
	return c.Status != CommissionStatusCancelled
}

// CommissionTransaction is a commission record as listed to administrators.
type CommissionTransaction struct {
	ID               int64            `json:"id"`
	VendorID         int64            `json:"vendorId"`
	VendorName       string           `json:"vendorName"`
	ProductName      string           `json:"productName"`
	OrderNumber      string           `json:"orderNumber"`
	SaleAmount       decimal.Decimal  `json:"saleAmount"`
	CommissionRate   decimal.Decimal  `json:"commissionRate"`
	CommissionAmount decimal.Decimal  `json:"commissionAmount"`
	TransactionFee   decimal.Decimal  `json:"transactionFee"`
	PerformanceBonus decimal.Decimal  `json:"performanceBonus"`
	PlatformEarnings decimal.Decimal  `json:"platformEarnings"`
	Status           CommissionStatus `json:"status"`
	CreatedAt        time.Time        `json:"createdAt"`
}

func NewCommissionTransaction(c *Commission) CommissionTransaction {
	return CommissionTransaction{
		ID:               c.ID,
		VendorID:         c.VendorID,
		VendorName:       c.VendorName,
		ProductName:      c.ProductName,
		OrderNumber:      c.OrderNumber,
		SaleAmount:       c.SaleAmount,
		CommissionRate:   c.CommissionRate,
		CommissionAmount: c.CommissionAmount,
		TransactionFee:   c.TransactionFee,
		PerformanceBonus: c.PerformanceBonus,
		PlatformEarnings: c.PlatformEarnings(),
		Status:           c.Status,
		CreatedAt:        c.CreatedAt,
	}
}
