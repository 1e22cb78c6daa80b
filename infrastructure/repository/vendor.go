package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/uniqverse/marketplace-api/infrastructure/database/postgres"
	"github.com/uniqverse/marketplace-api/internal/domain"
)

//go:generate mockgen -source=vendor.go -destination=mocks/vendor.go -package=mocks

type VendorRepository interface {
	GetByID(ctx context.Context, vendorID int64) (*domain.Vendor, error)
	TopProducts(ctx context.Context, vendorID int64, start, end time.Time, limit int) ([]*domain.ProductPerformance, error)
	CreateProduct(ctx context.Context, vendorID int64, name string, price decimal.Decimal) (int64, error)
}

type vendorRepository struct {
	conn postgres.Queryer
}

func NewVendorRepository(conn postgres.Queryer) VendorRepository {
	return &vendorRepository{
		conn: conn,
	}
}

// GetByID returns nil, nil when no vendor has the id.
func (r *vendorRepository) GetByID(ctx context.Context, vendorID int64) (*domain.Vendor, error) {
	query, args, err := squirrel.
		Select("id", "name", "email", "commission_rate", "transaction_fee").
		From(usersTable).
		Where(squirrel.Eq{"id": vendorID, "role": string(domain.RoleVendor)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select vendor query: %w", err)
	}

	var (
		vendor    domain.Vendor
		rate, fee any
	)
	err = r.conn.QueryRow(ctx, query, args...).Scan(&vendor.ID, &vendor.Name, &vendor.Email, &rate, &fee)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select vendor: %w", err)
	}

	values, err := decimals(rate, fee)
	if err != nil {
		return nil, err
	}
	vendor.CommissionRate = values[0]
	vendor.TransactionFee = values[1]

	return &vendor, nil
}

func (r *vendorRepository) TopProducts(ctx context.Context, vendorID int64, start, end time.Time, limit int) ([]*domain.ProductPerformance, error) {
	query, args, err := topProductsQuery(vendorID, start, end, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build top products query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select top products: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.ProductPerformance, 0, limit)
	for rows.Next() {
		var (
			product           domain.ProductPerformance
			revenue, earnings any
		)
		if err := rows.Scan(&product.ProductID, &product.ProductName, &revenue, &earnings, &product.UnitsSold); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}

		values, err := decimals(revenue, earnings)
		if err != nil {
			return nil, err
		}
		product.Revenue = values[0]
		product.Earnings = values[1]

		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top products: %w", err)
	}

	return products, nil
}

func topProductsQuery(vendorID int64, start, end time.Time, limit int) squirrel.SelectBuilder {
	return squirrel.
		Select(
			"p.id",
			"p.name",
			"SUM(c.sale_amount) AS revenue",
			"SUM(c.commission_amount) AS earnings",
			"COUNT(*) AS units_sold",
		).
		From(commissionsTable + " c").
		Join(productsTable + " p ON p.id = c.product_id").
		Where(squirrel.Eq{"c.vendor_id": vendorID}).
		Where(squirrel.NotEq{"c.status": string(domain.CommissionStatusCancelled)}).
		Where(squirrel.GtOrEq{"c.created_at": start}).
		Where(squirrel.Lt{"c.created_at": end}).
		GroupBy("p.id", "p.name").
		OrderBy("revenue DESC", "p.id").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *vendorRepository) CreateProduct(ctx context.Context, vendorID int64, name string, price decimal.Decimal) (int64, error) {
	query, args, err := squirrel.
		Insert(productsTable).
		Columns("vendor_id", "name", "price").
		Values(vendorID, name, price).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert product query: %w", err)
	}

	var id int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}

	return id, nil
}
