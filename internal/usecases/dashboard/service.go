package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/uniqverse/marketplace-api/infrastructure/repository"
	"github.com/uniqverse/marketplace-api/internal/config"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/internal/usecases/aggregating"
	"github.com/uniqverse/marketplace-api/pkg/cache"
	"github.com/uniqverse/marketplace-api/pkg/clock"
	"github.com/uniqverse/marketplace-api/pkg/metrics"
	"github.com/uniqverse/marketplace-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultRange = "month"

	recentOrdersLimit = 5
	statsCacheKey     = "admin-stats"
)

var ErrInvalidRange = errors.New("range must be week, month or year")

// Range is a dashboard reporting range.
type Range struct {
	Name        string
	Days        int
	Granularity aggregating.Granularity
}

var ranges = map[string]Range{
	"week":  {Name: "week", Days: 7, Granularity: aggregating.Day},
	"month": {Name: "month", Days: 30, Granularity: aggregating.Day},
	"year":  {Name: "year", Days: 365, Granularity: aggregating.Month},
}

func ParseRange(name string) (Range, error) {
	if name == "" {
		name = DefaultRange
	}
	r, ok := ranges[name]
	if !ok {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, name)
	}
	return r, nil
}

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks
type StatsProvider interface {
	Stats(ctx context.Context, r Range) (*domain.DashboardStats, error)
}

type Service struct {
	orderRepo      repository.OrderRepository
	userRepo       repository.UserRepository
	commissionRepo repository.CommissionRepository
	store          cache.Store
	ttl            time.Duration
	clock          clock.Clock
	location       *time.Location
}

func NewService(
	cfg *config.Config,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	commissionRepo repository.CommissionRepository,
	store cache.Store,
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
		orderRepo:      orderRepo,
		userRepo:       userRepo,
		commissionRepo: commissionRepo,
		store:          store,
		ttl:            cfg.Cache.TTL,
		clock:          clk,
		location:       location,
	}
}

// Stats returns the dashboard summary for r. Cached results are flagged.
func (s *Service) Stats(ctx context.Context, r Range) (*domain.DashboardStats, error) {
	stats, cached, err := cache.ReadThrough(ctx, s.store, cache.Key(statsCacheKey, r.Name), s.ttl,
		func(ctx context.Context) (*domain.DashboardStats, error) {
			return s.buildStats(ctx, r)
		})
	if err != nil {
		return nil, err
	}

	stats.Cached = cached

	logrus.WithFields(logrus.Fields{
		"range":  r.Name,
		"cached": cached,
	}).Debug("dashboard stats served")

	return stats, nil
}

func (s *Service) buildStats(ctx context.Context, r Range) (*domain.DashboardStats, error) {
	current := aggregating.LastDays(s.clock.Now().In(s.location), r.Days)
	previous := current.ShiftDays(r.Days)

	var (
		orders         []*domain.Order
		previousOrders []*domain.Order
		commissions    []*domain.Commission
		recent         []*domain.Order
		byStatus       map[domain.OrderStatus]int
		customers      int
		vendors        int
		newCustomers   int
	)

	g, ctx := errgroup.WithContext(ctx)

	run := func(name string, fn func() error) {
		g.Go(func() error { return metrics.TimeQuery(name, fn) })
	}

	run("orders_current", func() (err error) {
		orders, err = s.orderRepo.ListByPeriod(ctx, current.Start, current.End)
		return err
	})
	run("orders_previous", func() (err error) {
		previousOrders, err = s.orderRepo.ListByPeriod(ctx, previous.Start, previous.End)
		return err
	})
	run("commissions_current", func() (err error) {
		commissions, err = s.commissionRepo.ListByPeriod(ctx, current.Start, current.End)
		return err
	})
	run("orders_recent", func() (err error) {
		recent, err = s.orderRepo.ListRecent(ctx, recentOrdersLimit)
		return err
	})
	run("orders_by_status", func() (err error) {
		byStatus, err = s.orderRepo.CountByStatus(ctx, current.Start, current.End)
		return err
	})
	run("customers", func() (err error) {
		customers, err = s.userRepo.CountByRole(ctx, domain.RoleCustomer)
		return err
	})
	run("vendors", func() (err error) {
		vendors, err = s.userRepo.CountByRole(ctx, domain.RoleVendor)
		return err
	})
	run("new_customers", func() (err error) {
		newCustomers, err = s.userRepo.CountCreatedBetween(ctx, domain.RoleCustomer, current.Start, current.End)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	revenue, orderCount := sumOrders(orders)
	previousRevenue, previousCount := sumOrders(previousOrders)

	platformEarnings := decimal.Zero
	for _, c := range commissions {
		if c.Counted() {
			platformEarnings = platformEarnings.Add(c.PlatformEarnings())
		}
	}

	recentOrders := make([]domain.Order, 0, len(recent))
	for _, o := range recent {
		recentOrders = append(recentOrders, *o)
	}

	if byStatus == nil {
		byStatus = map[domain.OrderStatus]int{}
	}

	entries := append(aggregating.OrderEntries(orders), aggregating.CommissionEntries(commissions)...)

	return &domain.DashboardStats{
		Range: r.Name,
		Totals: domain.DashboardTotals{
			Revenue:           revenue,
			Orders:            orderCount,
			Customers:         customers,
			Vendors:           vendors,
			NewCustomers:      newCustomers,
			AverageOrderValue: utils.RoundWithTwoDecimalPlace(utils.SafeDiv(revenue, decimal.NewFromInt(int64(orderCount)))),
			PlatformEarnings:  platformEarnings,
		},
		Growth: domain.DashboardGrowth{
			Revenue: aggregating.PercentChange(previousRevenue, revenue),
			Orders:  aggregating.PercentChangeInt(previousCount, orderCount),
		},
		OrdersByStatus: byStatus,
		RecentOrders:   recentOrders,
		SalesTrend:     aggregating.Buckets(entries, current, r.Granularity),
	}, nil
}

func sumOrders(orders []*domain.Order) (decimal.Decimal, int) {
	total := decimal.Zero
	count := 0
	for _, o := range orders {
		if !o.CountsAsRevenue() {
			continue
		}
		total = total.Add(o.Total)
		count++
	}
	return total, count
}
