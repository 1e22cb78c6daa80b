package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/pkg/apiErrors"
)

func TestRequireRole(t *testing.T) {
	admin := &domain.Claims{UserID: 1, UserRole: domain.RoleAdmin}
	vendor := &domain.Claims{UserID: 2, UserRole: domain.RoleVendor}

	tests := []struct {
		name         string
		claims       *domain.Claims
		roles        []domain.Role
		expectedCode string
	}{
		{"admin allowed", admin, []domain.Role{domain.RoleAdmin}, ""},
		{"one of several", vendor, []domain.Role{domain.RoleAdmin, domain.RoleVendor}, ""},
		{"wrong role", vendor, []domain.Role{domain.RoleAdmin}, apiErrors.ErrInsufficientPrivilege},
		{"no session", nil, []domain.Role{domain.RoleAdmin}, apiErrors.ErrMissingToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := RequireRole(tt.claims, tt.roles...)

			if tt.expectedCode == "" {
				assert.NoError(t, err)
				assert.Equal(t, tt.claims, claims)
				return
			}

			var authErr *AuthError
			assert.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.expectedCode, authErr.Code)
			assert.Equal(t, 401, apiErrors.StatusFor(authErr.Code))
		})
	}
}
