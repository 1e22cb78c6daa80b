package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/uniqverse/marketplace-api/infrastructure/database/postgres"
	"github.com/uniqverse/marketplace-api/internal/domain"
)

//go:generate mockgen -source=commission.go -destination=mocks/commission.go -package=mocks

type CommissionRepository interface {
	ListByPeriod(ctx context.Context, start, end time.Time) ([]*domain.Commission, error)
	ListByVendor(ctx context.Context, vendorID int64, start, end time.Time) ([]*domain.Commission, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Commission, error)
	TopVendors(ctx context.Context, start, end time.Time, limit int) ([]*domain.VendorEarnings, error)
	GetByID(ctx context.Context, commissionID int64) (*domain.Commission, error)
	UpdateStatus(ctx context.Context, commissionID int64, from, to domain.CommissionStatus) (bool, error)
	Create(ctx context.Context, commission *domain.Commission) (*domain.Commission, error)
}

type commissionRepository struct {
	conn postgres.Queryer
}

func NewCommissionRepository(conn postgres.Queryer) CommissionRepository {
	return &commissionRepository{
		conn: conn,
	}
}

func commissionSelect() squirrel.SelectBuilder {
	return squirrel.
		Select(
			"c.id",
			"c.vendor_id",
			"c.product_id",
			"c.order_id",
			"c.sale_amount",
			"c.commission_rate",
			"c.commission_amount",
			"c.transaction_fee",
			"c.performance_bonus",
			"c.status",
			"c.created_at",
			"c.updated_at",
			"u.name",
			"p.name",
			"o.order_number",
		).
		From(commissionsTable + " c").
		Join(usersTable + " u ON u.id = c.vendor_id").
		Join(productsTable + " p ON p.id = c.product_id").
		Join(ordersTable + " o ON o.id = c.order_id").
		PlaceholderFormat(squirrel.Dollar)
}

func periodCommissionsQuery(start, end time.Time) squirrel.SelectBuilder {
	return commissionSelect().
		Where(squirrel.GtOrEq{"c.created_at": start}).
		Where(squirrel.Lt{"c.created_at": end}).
		OrderBy("c.created_at")
}

func (r *commissionRepository) ListByPeriod(ctx context.Context, start, end time.Time) ([]*domain.Commission, error) {
	return r.list(ctx, periodCommissionsQuery(start, end))
}

func (r *commissionRepository) ListByVendor(ctx context.Context, vendorID int64, start, end time.Time) ([]*domain.Commission, error) {
	return r.list(ctx, periodCommissionsQuery(start, end).Where(squirrel.Eq{"c.vendor_id": vendorID}))
}

func (r *commissionRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Commission, error) {
	return r.list(ctx, commissionSelect().OrderBy("c.created_at DESC", "c.id DESC").Limit(uint64(limit)))
}

func (r *commissionRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*domain.Commission, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select commissions query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select commissions: %w", err)
	}
	defer rows.Close()

	var commissions []*domain.Commission
	for rows.Next() {
		commission, err := scanCommission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan commission: %w", err)
		}
		commissions = append(commissions, commission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate commissions: %w", err)
	}

	return commissions, nil
}

func (r *commissionRepository) TopVendors(ctx context.Context, start, end time.Time, limit int) ([]*domain.VendorEarnings, error) {
	query, args, err := topVendorsQuery(start, end, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build top vendors query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select top vendors: %w", err)
	}
	defer rows.Close()

	vendors := make([]*domain.VendorEarnings, 0, limit)
	for rows.Next() {
		var (
			earnings                   domain.VendorEarnings
			sales, vendorPart, platform any
		)
		if err := rows.Scan(&earnings.VendorID, &earnings.VendorName, &sales, &vendorPart, &platform, &earnings.TransactionCount); err != nil {
			return nil, fmt.Errorf("scan top vendor: %w", err)
		}

		values, err := decimals(sales, vendorPart, platform)
		if err != nil {
			return nil, err
		}
		earnings.TotalSales = values[0]
		earnings.VendorEarnings = values[1]
		earnings.PlatformEarnings = values[2]

		vendors = append(vendors, &earnings)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top vendors: %w", err)
	}

	return vendors, nil
}

// platform earnings per row: sale * rate + fee - bonus
const platformEarningsExpr = "SUM(c.sale_amount * c.commission_rate + COALESCE(c.transaction_fee, 0) - COALESCE(c.performance_bonus, 0))"

func topVendorsQuery(start, end time.Time, limit int) squirrel.SelectBuilder {
	return squirrel.
		Select(
			"c.vendor_id",
			"u.name",
			"SUM(c.sale_amount) AS total_sales",
			"SUM(c.commission_amount) AS vendor_earnings",
			platformEarningsExpr+" AS platform_earnings",
			"COUNT(*) AS transaction_count",
		).
		From(commissionsTable + " c").
		Join(usersTable + " u ON u.id = c.vendor_id").
		Where(squirrel.NotEq{"c.status": string(domain.CommissionStatusCancelled)}).
		Where(squirrel.GtOrEq{"c.created_at": start}).
		Where(squirrel.Lt{"c.created_at": end}).
		GroupBy("c.vendor_id", "u.name").
		OrderBy("vendor_earnings DESC", "c.vendor_id").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)
}

// GetByID returns nil, nil when the commission does not exist.
func (r *commissionRepository) GetByID(ctx context.Context, commissionID int64) (*domain.Commission, error) {
	query, args, err := commissionSelect().Where(squirrel.Eq{"c.id": commissionID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select commission query: %w", err)
	}

	commission, err := scanCommission(r.conn.QueryRow(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select commission: %w", err)
	}

	return commission, nil
}

// UpdateStatus moves a commission from one status to another. It reports false
// when the row was not in the expected status anymore.
func (r *commissionRepository) UpdateStatus(ctx context.Context, commissionID int64, from, to domain.CommissionStatus) (bool, error) {
	query, args, err := updateStatusQuery(commissionID, from, to).ToSql()
	if err != nil {
		return false, fmt.Errorf("build update commission status query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update commission status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update commission status: %w", err)
	}

	return affected == 1, nil
}

func updateStatusQuery(commissionID int64, from, to domain.CommissionStatus) squirrel.UpdateBuilder {
	return squirrel.
		Update(commissionsTable).
		Set("status", string(to)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": commissionID, "status": string(from)}).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *commissionRepository) Create(ctx context.Context, commission *domain.Commission) (*domain.Commission, error) {
	if commission.Status == "" {
		commission.Status = domain.CommissionStatusPending
	}

	query, args, err := squirrel.
		Insert(commissionsTable).
		Columns(
			"vendor_id", "product_id", "order_id", "sale_amount", "commission_rate",
			"commission_amount", "transaction_fee", "performance_bonus", "status", "created_at",
		).
		Values(
			commission.VendorID,
			commission.ProductID,
			commission.OrderID,
			commission.SaleAmount,
			commission.CommissionRate,
			commission.CommissionAmount,
			commission.TransactionFee,
			commission.PerformanceBonus,
			string(commission.Status),
			createdAtOrNow(commission.CreatedAt),
		).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert commission query: %w", err)
	}

	err = r.conn.QueryRow(ctx, query, args...).Scan(&commission.ID, &commission.CreatedAt, &commission.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert commission: %w", err)
	}

	return commission, nil
}

func scanCommission(row scanner) (*domain.Commission, error) {
	var (
		commission                    domain.Commission
		status                        string
		sale, rate, amount, fee, bonus any
	)

	err := row.Scan(
		&commission.ID,
		&commission.VendorID,
		&commission.ProductID,
		&commission.OrderID,
		&sale,
		&rate,
		&amount,
		&fee,
		&bonus,
		&status,
		&commission.CreatedAt,
		&commission.UpdatedAt,
		&commission.VendorName,
		&commission.ProductName,
		&commission.OrderNumber,
	)
	if err != nil {
		return nil, err
	}

	values, err := decimals(sale, rate, amount, fee, bonus)
	if err != nil {
		return nil, err
	}

	commission.SaleAmount = values[0]
	commission.CommissionRate = values[1]
	commission.CommissionAmount = values[2]
	commission.TransactionFee = values[3]
	commission.PerformanceBonus = values[4]
	commission.Status = domain.CommissionStatus(status)

	return &commission, nil
}
