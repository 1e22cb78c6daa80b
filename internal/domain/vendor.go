package domain

import "github.com/shopspring/decimal"

// Vendor is a user with role VENDOR together with its commission settings.
type Vendor struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	CommissionRate decimal.Decimal `json:"commissionRate"`
	TransactionFee decimal.Decimal `json:"transactionFee"`
}

// VendorEarnings is one row of the top vendors ranking.
type VendorEarnings struct {
	VendorID         int64           `json:"vendorId"`
	VendorName       string          `json:"vendorName"`
	TotalSales       decimal.Decimal `json:"totalSales"`
	VendorEarnings   decimal.Decimal `json:"vendorEarnings"`
	PlatformEarnings decimal.Decimal `json:"platformEarnings"`
	TransactionCount int             `json:"transactionCount"`
}

type ProductPerformance struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Revenue     decimal.Decimal `json:"revenue"`
	Earnings    decimal.Decimal `json:"earnings"`
	UnitsSold   int             `json:"unitsSold"`
}
