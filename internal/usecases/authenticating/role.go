package authenticating

import (
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/pkg/apiErrors"
)

// RequireRole returns the claims when they carry one of roles. A missing
// session and a wrong role both yield an AuthError.
func RequireRole(claims *domain.Claims, roles ...domain.Role) (*domain.Claims, error) {
	if claims == nil {
		return nil, NewAuthError(ErrMissingToken, apiErrors.ErrMissingToken, "authentication required")
	}

	for _, role := range roles {
		if claims.UserRole == role {
			return claims, nil
		}
	}

	return nil, NewUserAuthError(ErrInsufficientPrivilege, apiErrors.ErrInsufficientPrivilege, claims.UserID,
		"role "+string(claims.UserRole)+" cannot access this resource")
}
