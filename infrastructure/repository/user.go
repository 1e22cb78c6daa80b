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

//go:generate mockgen -source=user.go -destination=mocks/user.go -package=mocks

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
	CountByRole(ctx context.Context, role domain.Role) (int, error)
	CountCreatedBetween(ctx context.Context, role domain.Role, start, end time.Time) (int, error)
}

type userRepository struct {
	conn postgres.Queryer
}

func NewUserRepository(conn postgres.Queryer) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

var userColumns = []string{
	"id", "name", "email", "password_hash", "role", "active",
	"commission_rate", "transaction_fee", "created_at", "updated_at",
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query, args, err := squirrel.
		Insert(usersTable).
		Columns("name", "email", "password_hash", "role", "active", "commission_rate", "transaction_fee").
		Values(user.Name, user.Email, user.PasswordHash, string(user.Role), user.Active, user.CommissionRate, user.TransactionFee).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert user query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"email": email})
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"id": userID})
}

// getUser returns nil, nil when no user matches.
func (r *userRepository) getUser(ctx context.Context, where squirrel.Eq) (*domain.User, error) {
	query, args, err := squirrel.
		Select(userColumns...).
		From(usersTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user query: %w", err)
	}

	user, err := scanUser(r.conn.QueryRow(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}

	return user, nil
}

func (r *userRepository) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(usersTable).
		Where(squirrel.Eq{"role": string(role)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count users query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}

	return count, nil
}

func (r *userRepository) CountCreatedBetween(ctx context.Context, role domain.Role, start, end time.Time) (int, error) {
	query, args, err := countCreatedBetweenQuery(role, start, end).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count new users query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count new users: %w", err)
	}

	return count, nil
}

func countCreatedBetweenQuery(role domain.Role, start, end time.Time) squirrel.SelectBuilder {
	return squirrel.
		Select("COUNT(*)").
		From(usersTable).
		Where(squirrel.Eq{"role": string(role)}).
		Where(squirrel.GtOrEq{"created_at": start}).
		Where(squirrel.Lt{"created_at": end}).
		PlaceholderFormat(squirrel.Dollar)
}

func scanUser(row scanner) (*domain.User, error) {
	var (
		user         domain.User
		role         string
		rate, feeRaw any
	)

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.Active,
		&rate,
		&feeRaw,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	values, err := decimals(rate, feeRaw)
	if err != nil {
		return nil, err
	}

	user.Role = domain.Role(role)
	user.CommissionRate = values[0]
	user.TransactionFee = values[1]

	return &user, nil
}
