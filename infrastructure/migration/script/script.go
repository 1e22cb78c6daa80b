// Command script fills a development database with users, products, orders
// and commission records spread over the last year.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/uniqverse/marketplace-api/infrastructure/database/postgres"
	"github.com/uniqverse/marketplace-api/infrastructure/repository"
	"github.com/uniqverse/marketplace-api/internal/config"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/internal/usecases/authenticating"
	"github.com/uniqverse/marketplace-api/pkg/clock"
	"github.com/uniqverse/marketplace-api/pkg/log"
	"github.com/uniqverse/marketplace-api/pkg/utils"
)

const (
	defaultPassword = "marketplace123"

	vendorCount    = 5
	customerCount  = 30
	productsEach   = 4
	orderCount     = 600
	historyDays    = 400
	cancelledShare = 0.08
)

var (
	vendorRates = []string{"0.08", "0.10", "0.12", "0.15", "0.20"}
	orderStatus = []domain.OrderStatus{
		domain.OrderStatusPending,
		domain.OrderStatusProcessing,
		domain.OrderStatusShipped,
		domain.OrderStatusDelivered,
		domain.OrderStatusDelivered,
		domain.OrderStatusDelivered,
	}
)

type product struct {
	id       int64
	vendorID int64
	price    decimal.Decimal
}

type seeder struct {
	auth        authenticating.Authenticator
	vendors     repository.VendorRepository
	orders      repository.OrderRepository
	commissions repository.CommissionRepository
	rnd         *rand.Rand
	now         time.Time
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Setup(cfg.App.LogLevel)

	ctx := context.Background()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to PostgreSQL")
	}
	defer conn.Close()

	startTime := time.Now()

	err = conn.RunInTransaction(ctx, func(tx postgres.Queryer) error {
		s := &seeder{
			auth:        authenticating.NewService(repository.NewUserRepository(tx), cfg, clock.System{}),
			vendors:     repository.NewVendorRepository(tx),
			orders:      repository.NewOrderRepository(tx),
			commissions: repository.NewCommissionRepository(tx),
			rnd:         rand.New(rand.NewSource(42)),
			now:         time.Now().UTC(),
		}
		return s.run(ctx)
	})
	if err != nil {
		logrus.WithError(err).Fatal("seed failed, transaction rolled back")
	}

	logrus.WithField("duration", time.Since(startTime).String()).Info("seed completed")
}

func (s *seeder) run(ctx context.Context) error {
	if _, err := s.createUser(ctx, "Admin", "admin@marketplace.dev", domain.RoleAdmin, decimal.Zero); err != nil {
		return err
	}

	products := make([]product, 0, vendorCount*productsEach)
	for i := 0; i < vendorCount; i++ {
		rate := decimal.RequireFromString(vendorRates[i%len(vendorRates)])
		vendor, err := s.createUser(ctx, fmt.Sprintf("Vendor %d", i+1), fmt.Sprintf("vendor%d@marketplace.dev", i+1), domain.RoleVendor, rate)
		if err != nil {
			return err
		}

		for j := 0; j < productsEach; j++ {
			price := decimal.NewFromInt(int64(10 + s.rnd.Intn(190))).Add(decimal.New(99, -2))
			id, err := s.vendors.CreateProduct(ctx, vendor.ID, fmt.Sprintf("Product %d-%d", i+1, j+1), price)
			if err != nil {
				return err
			}
			products = append(products, product{id: id, vendorID: vendor.ID, price: price})
		}
	}
	logrus.WithField("products", len(products)).Info("vendors and products created")

	customers := make([]*domain.User, 0, customerCount)
	for i := 0; i < customerCount; i++ {
		customer, err := s.createUser(ctx, fmt.Sprintf("Customer %d", i+1), fmt.Sprintf("customer%d@marketplace.dev", i+1), domain.RoleCustomer, decimal.Zero)
		if err != nil {
			return err
		}
		customers = append(customers, customer)
	}
	logrus.WithField("customers", len(customers)).Info("customers created")

	rates := map[int64]decimal.Decimal{}
	for i, p := range products {
		rates[p.vendorID] = decimal.RequireFromString(vendorRates[(i/productsEach)%len(vendorRates)])
	}

	for i := 0; i < orderCount; i++ {
		if err := s.createOrder(ctx, customers[s.rnd.Intn(len(customers))], products[s.rnd.Intn(len(products))], rates); err != nil {
			return err
		}
	}
	logrus.WithField("orders", orderCount).Info("orders and commissions created")

	return nil
}

func (s *seeder) createUser(ctx context.Context, name, email string, role domain.Role, rate decimal.Decimal) (*domain.User, error) {
	user := &domain.User{
		Name:           name,
		Email:          email,
		Role:           role,
		Active:         true,
		CommissionRate: rate,
		TransactionFee: decimal.New(30, -2),
	}
	created, err := s.auth.CreateUser(ctx, user, defaultPassword)
	if err != nil {
		return nil, fmt.Errorf("create %s %s: %w", role, email, err)
	}
	return created, nil
}

func (s *seeder) createOrder(ctx context.Context, customer *domain.User, p product, rates map[int64]decimal.Decimal) error {
	number, err := utils.GenerateOrderNumber()
	if err != nil {
		return err
	}

	quantity := decimal.NewFromInt(int64(1 + s.rnd.Intn(3)))
	total := p.price.Mul(quantity)
	createdAt := s.now.Add(-time.Duration(s.rnd.Int63n(int64(historyDays * 24 * time.Hour))))

	status := orderStatus[s.rnd.Intn(len(orderStatus))]
	if s.rnd.Float64() < cancelledShare {
		status = domain.OrderStatusCancelled
	}

	order, err := s.orders.Create(ctx, &domain.Order{
		OrderNumber: number,
		UserID:      customer.ID,
		Total:       total,
		Status:      status,
		CreatedAt:   createdAt,
	})
	if err != nil {
		return err
	}

	rate := rates[p.vendorID]
	fee := decimal.New(30, -2)
	bonus := decimal.Zero
	if s.rnd.Intn(10) == 0 {
		bonus = decimal.NewFromInt(int64(1 + s.rnd.Intn(5)))
	}

	commissionStatus := domain.CommissionStatusPending
	switch {
	case status == domain.OrderStatusCancelled:
		commissionStatus = domain.CommissionStatusCancelled
	case createdAt.Before(s.now.AddDate(0, 0, -30)):
		commissionStatus = domain.CommissionStatusPaid
	}

	_, err = s.commissions.Create(ctx, &domain.Commission{
		VendorID:         p.vendorID,
		ProductID:        p.id,
		OrderID:          order.ID,
		SaleAmount:       total,
		CommissionRate:   rate,
		CommissionAmount: domain.CommissionAmount(total, rate),
		TransactionFee:   fee,
		PerformanceBonus: bonus,
		Status:           commissionStatus,
		CreatedAt:        createdAt,
	})
	return err
}
