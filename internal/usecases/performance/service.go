package performance

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uniqverse/marketplace-api/infrastructure/repository"
	"github.com/uniqverse/marketplace-api/internal/config"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/internal/usecases/aggregating"
	"github.com/uniqverse/marketplace-api/internal/usecases/converting"
	"github.com/uniqverse/marketplace-api/pkg/apiErrors"
	"github.com/uniqverse/marketplace-api/pkg/clock"
	"github.com/uniqverse/marketplace-api/pkg/metrics"
	"github.com/uniqverse/marketplace-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPeriod = "month"

	topProductsLimit = 5
)

// Period is a reporting period reaching back from today.
type Period struct {
	Name        string
	Months      int
	Granularity aggregating.Granularity
}

var periods = map[string]Period{
	"month":   {Name: "month", Months: 1, Granularity: aggregating.Day},
	"quarter": {Name: "quarter", Months: 3, Granularity: aggregating.Week},
	"year":    {Name: "year", Months: 12, Granularity: aggregating.Month},
}

func ParsePeriod(name string) (Period, error) {
	if name == "" {
		name = DefaultPeriod
	}
	p, ok := periods[name]
	if !ok {
		return Period{}, &PerformanceError{Err: ErrInvalidPeriod, Code: apiErrors.ErrInvalidRequest, Details: name}
	}
	return p, nil
}

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks
type Performer interface {
	VendorPerformance(ctx context.Context, vendorID int64, period Period, currency string) (*domain.VendorPerformance, error)
}

type Service struct {
	vendorRepo     repository.VendorRepository
	commissionRepo repository.CommissionRepository
	converter      converting.Converter
	clock          clock.Clock
	location       *time.Location
}

func NewService(
	cfg *config.Config,
	vendorRepo repository.VendorRepository,
	commissionRepo repository.CommissionRepository,
	converter converting.Converter,
	clk clock.Clock,
) *Service {
	if clk == nil {
		clk = clock.System{}
	}

	location := cfg.App.Location
	if location == nil {
		location = time.UTC
	}

	return &Service{
		vendorRepo:     vendorRepo,
		commissionRepo: commissionRepo,
		converter:      converter,
		clock:          clk,
		location:       location,
	}
}

// VendorPerformance reports the sales of one vendor over period, compared with
// the period before it.
func (s *Service) VendorPerformance(ctx context.Context, vendorID int64, period Period, currency string) (*domain.VendorPerformance, error) {
	current := aggregating.LastMonths(s.clock.Now().In(s.location), period.Months)
	previous := current.ShiftMonths(period.Months)

	var (
		vendor              *domain.Vendor
		currentCommissions  []*domain.Commission
		previousCommissions []*domain.Commission
		products            []*domain.ProductPerformance
		conversion          converting.Conversion
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return metrics.TimeQuery("vendor", func() (err error) {
			vendor, err = s.vendorRepo.GetByID(gctx, vendorID)
			return err
		})
	})
	g.Go(func() error {
		return metrics.TimeQuery("vendor_commissions_current", func() (err error) {
			currentCommissions, err = s.commissionRepo.ListByVendor(gctx, vendorID, current.Start, current.End)
			return err
		})
	})
	g.Go(func() error {
		return metrics.TimeQuery("vendor_commissions_previous", func() (err error) {
			previousCommissions, err = s.commissionRepo.ListByVendor(gctx, vendorID, previous.Start, previous.End)
			return err
		})
	})
	g.Go(func() error {
		return metrics.TimeQuery("vendor_top_products", func() (err error) {
			products, err = s.vendorRepo.TopProducts(gctx, vendorID, current.Start, current.End, topProductsLimit)
			return err
		})
	})
	g.Go(func() (err error) {
		conversion, err = s.converter.ForCurrency(gctx, currency)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("vendor performance: %w", err)
	}

	if vendor == nil {
		return nil, &PerformanceError{Err: ErrVendorNotFound, Code: apiErrors.ErrVendorNotFound, VendorID: vendorID}
	}

	summary := buildSummary(currentCommissions, previousCommissions)
	summary.TotalSales = conversion.Apply(summary.TotalSales)
	summary.TotalEarnings = conversion.Apply(summary.TotalEarnings)
	summary.PlatformFees = conversion.Apply(summary.PlatformFees)
	summary.AverageOrderValue = conversion.Apply(summary.AverageOrderValue)

	topProducts := make([]domain.ProductPerformance, 0, len(products))
	for _, p := range products {
		product := *p
		product.Revenue = conversion.Apply(product.Revenue)
		product.Earnings = conversion.Apply(product.Earnings)
		topProducts = append(topProducts, product)
	}

	trend := aggregating.Buckets(aggregating.SaleEntries(currentCommissions), current, period.Granularity)

	return &domain.VendorPerformance{
		Vendor:      *vendor,
		Period:      period.Name,
		Currency:    conversion.Currency,
		Summary:     summary,
		TopProducts: topProducts,
		Trend:       conversion.ApplyBuckets(trend),
	}, nil
}

type vendorTotals struct {
	sales    decimal.Decimal
	earnings decimal.Decimal
	platform decimal.Decimal
	count    int
}

func sumVendor(commissions []*domain.Commission) vendorTotals {
	var t vendorTotals
	for _, c := range commissions {
		if !c.Counted() {
			continue
		}
		t.sales = t.sales.Add(c.SaleAmount)
		t.earnings = t.earnings.Add(c.VendorEarnings())
		t.platform = t.platform.Add(c.PlatformEarnings())
		t.count++
	}
	return t
}

func buildSummary(current, previous []*domain.Commission) domain.VendorSummary {
	cur := sumVendor(current)
	prev := sumVendor(previous)

	return domain.VendorSummary{
		TotalSales:        cur.sales,
		TotalEarnings:     cur.earnings,
		PlatformFees:      cur.platform,
		TransactionCount:  cur.count,
		AverageOrderValue: utils.RoundWithTwoDecimalPlace(utils.SafeDiv(cur.sales, decimal.NewFromInt(int64(cur.count)))),
		SalesGrowth:       aggregating.PercentChange(prev.sales, cur.sales),
		EarningsGrowth:    aggregating.PercentChange(prev.earnings, cur.earnings),
	}
}
