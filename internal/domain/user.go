package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleVendor   Role = "VENDOR"
	RoleCustomer Role = "CUSTOMER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleVendor, RoleCustomer:
		return true
	}
	return false
}

type User struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	PasswordHash   string          `json:"-"`
	Role           Role            `json:"role"`
	Active         bool            `json:"active"`
	CommissionRate decimal.Decimal `json:"commissionRate"`
	TransactionFee decimal.Decimal `json:"transactionFee"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Claims is the session carried by the JWT.
type Claims struct {
	UserID    int64  `json:"uid"`
	UserName  string `json:"name"`
	UserEmail string `json:"email"`
	UserRole  Role   `json:"role"`
	jwt.RegisteredClaims
}
