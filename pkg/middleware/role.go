package middleware

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/internal/usecases/authenticating"
	"github.com/uniqverse/marketplace-api/pkg/apiErrors"
)

// RoleMiddleware restricts a route to sessions carrying one of allowedRoles.
func RoleMiddleware(allowedRoles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := authenticating.RequireRole(ClaimsFromContext(r.Context()), allowedRoles...)
			if err != nil {
				var authErr *authenticating.AuthError
				if errors.As(err, &authErr) {
					logrus.WithFields(logrus.Fields{
						"user_id": authErr.UserID,
						"path":    r.URL.Path,
					}).Warn("access denied")
					apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
					return
				}
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, err.Error(), nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func AdminOnly() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

func VendorOnly() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleVendor)
}

// AllRoles admits any authenticated session.
func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleAdmin, domain.RoleVendor, domain.RoleCustomer)
}
