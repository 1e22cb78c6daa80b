package commissioning

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uniqverse/marketplace-api/infrastructure/repository"
	"github.com/uniqverse/marketplace-api/internal/config"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/internal/usecases/aggregating"
	"github.com/uniqverse/marketplace-api/internal/usecases/converting"
	"github.com/uniqverse/marketplace-api/pkg/apiErrors"
	"github.com/uniqverse/marketplace-api/pkg/cache"
	"github.com/uniqverse/marketplace-api/pkg/clock"
	"github.com/uniqverse/marketplace-api/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultDays = 30
	MaxDays     = 365

	topVendorsLimit   = 10
	recentLimit       = 10
	analyticsCacheKey = "admin-commissions"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks
type Commissioner interface {
	Analytics(ctx context.Context, days int, currency string) (*domain.CommissionAnalytics, error)
	Statement(ctx context.Context, days int, currency string) (*domain.CommissionStatement, error)
	Export(ctx context.Context, days int, currency string, format Format) (*ExportFile, error)
	UpdateStatus(ctx context.Context, commissionID int64, status domain.CommissionStatus) (*domain.Commission, error)
}

type Service struct {
	commissionRepo repository.CommissionRepository
	orderRepo      repository.OrderRepository
	converter      converting.Converter
	store          cache.Store
	ttl            time.Duration
	clock          clock.Clock
	location       *time.Location
}

func NewService(
	cfg *config.Config,
	commissionRepo repository.CommissionRepository,
	orderRepo repository.OrderRepository,
	converter converting.Converter,
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
		commissionRepo: commissionRepo,
		orderRepo:      orderRepo,
		converter:      converter,
		store:          store,
		ttl:            cfg.Cache.TTL,
		clock:          clk,
		location:       location,
	}
}

func validateDays(days int) error {
	if days < 1 || days > MaxDays {
		return NewCommissionError(ErrInvalidDays, apiErrors.ErrInvalidRequest, 0, fmt.Sprintf("got %d", days))
	}
	return nil
}

func (s *Service) window(days int) aggregating.Window {
	return aggregating.LastDays(s.clock.Now().In(s.location), days)
}

// Analytics returns the commission report of the last days, in currency.
// The report is cached in the base currency so rates stay current.
func (s *Service) Analytics(ctx context.Context, days int, currency string) (*domain.CommissionAnalytics, error) {
	if err := validateDays(days); err != nil {
		return nil, err
	}

	report, cached, err := cache.ReadThrough(ctx, s.store, cache.Key(analyticsCacheKey, days), s.ttl,
		func(ctx context.Context) (*domain.CommissionAnalytics, error) {
			return s.buildAnalytics(ctx, days)
		})
	if err != nil {
		return nil, err
	}

	conversion, err := s.converter.ForCurrency(ctx, currency)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"days":     days,
		"currency": conversion.Currency,
		"cached":   cached,
	}).Debug("commission analytics served")

	return &domain.CommissionAnalytics{
		Overview:           convertOverview(report.Overview, conversion),
		TopVendorEarnings:  convertVendors(report.TopVendorEarnings, conversion),
		RecentTransactions: convertTransactions(report.RecentTransactions, conversion),
		DailyEarnings:      conversion.ApplyBuckets(report.DailyEarnings),
		Currency:           conversion.Currency,
	}, nil
}

// buildAnalytics runs the report queries concurrently. Any failure fails the report.
func (s *Service) buildAnalytics(ctx context.Context, days int) (*domain.CommissionAnalytics, error) {
	current := s.window(days)
	previous := current.ShiftDays(days)

	var (
		currentCommissions  []*domain.Commission
		previousCommissions []*domain.Commission
		topVendors          []*domain.VendorEarnings
		recent              []*domain.Commission
		orders              []*domain.Order
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return metrics.TimeQuery("commissions_current", func() (err error) {
			currentCommissions, err = s.commissionRepo.ListByPeriod(ctx, current.Start, current.End)
			return err
		})
	})
	g.Go(func() error {
		return metrics.TimeQuery("commissions_previous", func() (err error) {
			previousCommissions, err = s.commissionRepo.ListByPeriod(ctx, previous.Start, previous.End)
			return err
		})
	})
	g.Go(func() error {
		return metrics.TimeQuery("top_vendors", func() (err error) {
			topVendors, err = s.commissionRepo.TopVendors(ctx, current.Start, current.End, topVendorsLimit)
			return err
		})
	})
	g.Go(func() error {
		return metrics.TimeQuery("recent_commissions", func() (err error) {
			recent, err = s.commissionRepo.ListRecent(ctx, recentLimit)
			return err
		})
	})
	g.Go(func() error {
		return metrics.TimeQuery("orders_current", func() (err error) {
			orders, err = s.orderRepo.ListByPeriod(ctx, current.Start, current.End)
			return err
		})
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("commission analytics: %w", err)
	}

	entries := append(aggregating.CommissionEntries(currentCommissions), aggregating.OrderEntries(orders)...)

	vendors := make([]domain.VendorEarnings, 0, len(topVendors))
	for _, v := range topVendors {
		vendors = append(vendors, *v)
	}

	return &domain.CommissionAnalytics{
		Overview:           buildOverview(currentCommissions, previousCommissions),
		TopVendorEarnings:  vendors,
		RecentTransactions: transactions(recent),
		DailyEarnings:      aggregating.Buckets(entries, current, aggregating.Day),
		Currency:           s.converter.Base(),
	}, nil
}

// Statement lists every commission record of the last days with the report overview.
func (s *Service) Statement(ctx context.Context, days int, currency string) (*domain.CommissionStatement, error) {
	if err := validateDays(days); err != nil {
		return nil, err
	}

	current := s.window(days)
	previous := current.ShiftDays(days)

	var (
		currentCommissions  []*domain.Commission
		previousCommissions []*domain.Commission
		conversion          converting.Conversion
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		currentCommissions, err = s.commissionRepo.ListByPeriod(gctx, current.Start, current.End)
		return err
	})
	g.Go(func() (err error) {
		previousCommissions, err = s.commissionRepo.ListByPeriod(gctx, previous.Start, previous.End)
		return err
	})
	g.Go(func() (err error) {
		conversion, err = s.converter.ForCurrency(gctx, currency)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("commission statement: %w", err)
	}

	return &domain.CommissionStatement{
		Currency:    conversion.Currency,
		StartDate:   current.Start,
		EndDate:     current.End.AddDate(0, 0, -1),
		GeneratedAt: s.clock.Now().In(s.location),
		Overview:    convertOverview(buildOverview(currentCommissions, previousCommissions), conversion),
		Lines:       convertTransactions(transactions(currentCommissions), conversion),
	}, nil
}

// UpdateStatus moves a pending commission to PAID or CANCELLED.
func (s *Service) UpdateStatus(ctx context.Context, commissionID int64, status domain.CommissionStatus) (*domain.Commission, error) {
	if !status.Valid() {
		return nil, NewCommissionError(ErrInvalidStatus, apiErrors.ErrInvalidFormat, commissionID, string(status))
	}

	commission, err := s.commissionRepo.GetByID(ctx, commissionID)
	if err != nil {
		return nil, err
	}
	if commission == nil {
		return nil, NewCommissionError(ErrCommissionNotFound, apiErrors.ErrResourceNotFound, commissionID, "")
	}

	if !commission.Status.CanTransitionTo(status) {
		return nil, NewCommissionError(ErrInvalidTransition, apiErrors.ErrInvalidStatusTransition, commissionID,
			fmt.Sprintf("%s to %s", commission.Status, status))
	}

	updated, err := s.commissionRepo.UpdateStatus(ctx, commissionID, commission.Status, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, NewCommissionError(ErrInvalidTransition, apiErrors.ErrInvalidStatusTransition, commissionID,
			"status changed concurrently")
	}

	logrus.WithFields(logrus.Fields{
		"commission_id": commissionID,
		"from":          commission.Status,
		"to":            status,
	}).Info("commission status updated")

	commission.Status = status
	commission.UpdatedAt = s.clock.Now()
	return commission, nil
}
