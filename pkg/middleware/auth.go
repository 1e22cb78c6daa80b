package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/internal/usecases/authenticating"
	"github.com/uniqverse/marketplace-api/pkg/apiErrors"
	"github.com/uniqverse/marketplace-api/pkg/log"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"

	DefaultSessionCookie = "session_token"
)

// paths served without a session
var publicPaths = map[string]struct{}{
	"/v1/login":    {},
	"/healthcheck": {},
	"/metrics":     {},
}

// AuthMiddleware resolves the session from the Authorization header or the
// session cookie and stores its claims in the request context.
func AuthMiddleware(authService authenticating.Authenticator, cookieName string) func(http.Handler) http.Handler {
	if cookieName == "" {
		cookieName = DefaultSessionCookie
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicPaths[r.URL.Path]; ok || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token := sessionToken(r, cookieName)
			if token == "" {
				apiErrors.WriteError(w, apiErrors.ErrMissingToken, "authentication required", nil)
				return
			}

			claims, err := authService.ValidateToken(token)
			if err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("rejected session token")
				writeAuthError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// sessionToken prefers a Bearer token over the cookie.
func sessionToken(r *http.Request, cookieName string) string {
	if header := r.Header.Get("Authorization"); header != "" {
		token := strings.TrimPrefix(header, "Bearer ")
		if token != header {
			return strings.TrimSpace(token)
		}
	}

	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func writeAuthError(w http.ResponseWriter, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}
	apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "invalid session", nil)
}

func WithClaims(ctx context.Context, claims *domain.Claims) context.Context {
	return context.WithValue(ctx, ContextKeyUser, claims)
}

// ClaimsFromContext returns the session claims, or nil when the request is anonymous.
func ClaimsFromContext(ctx context.Context) *domain.Claims {
	claims, _ := ctx.Value(ContextKeyUser).(*domain.Claims)
	return claims
}
