package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodBucket is the derived activity total of one calendar unit.
type PeriodBucket struct {
	Date             string          `json:"date"`
	PlatformEarnings decimal.Decimal `json:"platformEarnings"`
	VendorEarnings   decimal.Decimal `json:"vendorEarnings"`
	TotalVolume      decimal.Decimal `json:"totalVolume"`
	TransactionCount int             `json:"transactionCount"`
}

type CommissionOverview struct {
	TotalSales             decimal.Decimal `json:"totalSales"`
	TotalVendorEarnings    decimal.Decimal `json:"totalVendorEarnings"`
	TotalPlatformEarnings  decimal.Decimal `json:"totalPlatformEarnings"`
	TotalTransactions      int             `json:"totalTransactions"`
	PendingPayouts         decimal.Decimal `json:"pendingPayouts"`
	PaidPayouts            decimal.Decimal `json:"paidPayouts"`
	AverageCommissionRate  decimal.Decimal `json:"averageCommissionRate"`
	SalesGrowth            decimal.Decimal `json:"salesGrowth"`
	PlatformEarningsGrowth decimal.Decimal `json:"platformEarningsGrowth"`
}

// CommissionAnalytics is the admin commission report.
type CommissionAnalytics struct {
	Overview           CommissionOverview      `json:"overview"`
	TopVendorEarnings  []VendorEarnings        `json:"topVendorEarnings"`
	RecentTransactions []CommissionTransaction `json:"recentTransactions"`
	DailyEarnings      []PeriodBucket          `json:"dailyEarnings"`
	Currency           Currency                `json:"currency"`
}

// CommissionStatement is the exportable form of the commission report.
type CommissionStatement struct {
	Currency    Currency                `json:"currency"`
	StartDate   time.Time               `json:"startDate"`
	EndDate     time.Time               `json:"endDate"`
	GeneratedAt time.Time               `json:"generatedAt"`
	Overview    CommissionOverview      `json:"overview"`
	Lines       []CommissionTransaction `json:"lines"`
}

type VendorSummary struct {
	TotalSales        decimal.Decimal `json:"totalSales"`
	TotalEarnings     decimal.Decimal `json:"totalEarnings"`
	PlatformFees      decimal.Decimal `json:"platformFees"`
	TransactionCount  int             `json:"transactionCount"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	SalesGrowth       decimal.Decimal `json:"salesGrowth"`
	EarningsGrowth    decimal.Decimal `json:"earningsGrowth"`
}

// VendorPerformance is the report a vendor sees about its own sales.
type VendorPerformance struct {
	Vendor      Vendor               `json:"vendor"`
	Period      string               `json:"period"`
	Currency    Currency             `json:"currency"`
	Summary     VendorSummary        `json:"summary"`
	TopProducts []ProductPerformance `json:"topProducts"`
	Trend       []PeriodBucket       `json:"trend"`
}

type DashboardTotals struct {
	Revenue           decimal.Decimal `json:"revenue"`
	Orders            int             `json:"orders"`
	Customers         int             `json:"customers"`
	Vendors           int             `json:"vendors"`
	NewCustomers      int             `json:"newCustomers"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	PlatformEarnings  decimal.Decimal `json:"platformEarnings"`
}

type DashboardGrowth struct {
	Revenue decimal.Decimal `json:"revenue"`
	Orders  decimal.Decimal `json:"orders"`
}

// DashboardStats is the admin dashboard summary for a range.
type DashboardStats struct {
	Range          string              `json:"range"`
	Totals         DashboardTotals     `json:"totals"`
	Growth         DashboardGrowth     `json:"growth"`
	OrdersByStatus map[OrderStatus]int `json:"ordersByStatus"`
	RecentOrders   []Order             `json:"recentOrders"`
	SalesTrend     []PeriodBucket      `json:"salesTrend"`
	Cached         bool                `json:"cached"`
}
