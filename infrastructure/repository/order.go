package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/uniqverse/marketplace-api/infrastructure/database/postgres"
	"github.com/uniqverse/marketplace-api/internal/domain"
)

//go:generate mockgen -source=order.go -destination=mocks/order.go -package=mocks

type OrderRepository interface {
	ListByPeriod(ctx context.Context, start, end time.Time) ([]*domain.Order, error)
	CountByStatus(ctx context.Context, start, end time.Time) (map[domain.OrderStatus]int, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

type orderRepository struct {
	conn postgres.Queryer
}

func NewOrderRepository(conn postgres.Queryer) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

func orderSelect() squirrel.SelectBuilder {
	return squirrel.
		Select("o.id", "o.order_number", "o.user_id", "o.total", "o.status", "o.created_at", "u.name").
		From(ordersTable + " o").
		Join(usersTable + " u ON u.id = o.user_id").
		PlaceholderFormat(squirrel.Dollar)
}

// ListByPeriod returns the revenue-counting orders created in [start, end).
func (r *orderRepository) ListByPeriod(ctx context.Context, start, end time.Time) ([]*domain.Order, error) {
	return r.list(ctx, periodOrdersQuery(start, end))
}

func periodOrdersQuery(start, end time.Time) squirrel.SelectBuilder {
	return orderSelect().
		Where(squirrel.NotEq{"o.status": string(domain.OrderStatusCancelled)}).
		Where(squirrel.GtOrEq{"o.created_at": start}).
		Where(squirrel.Lt{"o.created_at": end}).
		OrderBy("o.created_at")
}

func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Order, error) {
	return r.list(ctx, orderSelect().OrderBy("o.created_at DESC", "o.id DESC").Limit(uint64(limit)))
}

func (r *orderRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*domain.Order, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select orders query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) CountByStatus(ctx context.Context, start, end time.Time) (map[domain.OrderStatus]int, error) {
	query, args, err := squirrel.
		Select("status", "COUNT(*)").
		From(ordersTable).
		Where(squirrel.GtOrEq{"created_at": start}).
		Where(squirrel.Lt{"created_at": end}).
		GroupBy("status").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count orders query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count orders by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.OrderStatus]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan order count: %w", err)
		}
		counts[domain.OrderStatus(status)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order counts: %w", err)
	}

	return counts, nil
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}

	query, args, err := squirrel.
		Insert(ordersTable).
		Columns("order_number", "user_id", "total", "status", "created_at").
		Values(order.OrderNumber, order.UserID, order.Total, string(order.Status), createdAtOrNow(order.CreatedAt)).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert order query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&order.ID, &order.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	return order, nil
}

func scanOrder(row scanner) (*domain.Order, error) {
	var (
		order  domain.Order
		status string
		total  any
	)

	if err := row.Scan(&order.ID, &order.OrderNumber, &order.UserID, &total, &status, &order.CreatedAt, &order.CustomerName); err != nil {
		return nil, err
	}

	values, err := decimals(total)
	if err != nil {
		return nil, err
	}
	order.Total = values[0]
	order.Status = domain.OrderStatus(status)

	return &order, nil
}
