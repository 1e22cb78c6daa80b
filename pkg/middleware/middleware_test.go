package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/internal/usecases/authenticating"
	"github.com/uniqverse/marketplace-api/internal/usecases/authenticating/mocks"
	"github.com/uniqverse/marketplace-api/pkg/apiErrors"
	"github.com/uniqverse/marketplace-api/pkg/log"
	"go.uber.org/mock/gomock"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var body apiErrors.APIError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestAuthMiddleware(t *testing.T) {
	admin := &domain.Claims{UserID: 1, UserRole: domain.RoleAdmin}

	tests := []struct {
		name       string
		path       string
		setup      func(r *http.Request)
		mock       func(m *mocks.MockAuthenticator)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "public path skips the session",
			path:       "/healthcheck",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing token",
			path:       "/v1/me",
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrMissingToken,
		},
		{
			name:  "bearer token",
			path:  "/v1/me",
			setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") },
			mock: func(m *mocks.MockAuthenticator) {
				m.EXPECT().ValidateToken("abc").Return(admin, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "session cookie",
			path:  "/v1/me",
			setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "session_token", Value: "xyz"}) },
			mock: func(m *mocks.MockAuthenticator) {
				m.EXPECT().ValidateToken("xyz").Return(admin, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "expired token",
			path:  "/v1/me",
			setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer old") },
			mock: func(m *mocks.MockAuthenticator) {
				m.EXPECT().ValidateToken("old").Return(nil,
					authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, ""))
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrExpiredToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mocks.NewMockAuthenticator(ctrl)
			if tt.mock != nil {
				tt.mock(auth)
			}

			var seen *domain.Claims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.setup != nil {
				tt.setup(req)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(auth, "")(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
			}
			if tt.mock != nil && tt.wantStatus == http.StatusOK {
				assert.Equal(t, admin, seen)
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		claims     *domain.Claims
		wantStatus int
		wantCode   string
	}{
		{"admin allowed", &domain.Claims{UserID: 1, UserRole: domain.RoleAdmin}, http.StatusOK, ""},
		{"vendor rejected", &domain.Claims{UserID: 2, UserRole: domain.RoleVendor}, http.StatusUnauthorized, apiErrors.ErrInsufficientPrivilege},
		{"anonymous rejected", nil, http.StatusUnauthorized, apiErrors.ErrMissingToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil)
			if tt.claims != nil {
				req = req.WithContext(WithClaims(req.Context(), tt.claims))
			}
			rec := httptest.NewRecorder()

			AdminOnly()(okHandler).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
			}
		})
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/v1/admin/stats", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")

	req = httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingMiddleware_SetsCorrelationID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	LoggingMiddleware()(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(CorrelationIDHeader))
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	LogPanicMiddleware()(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apiErrors.ErrInternalServer, decodeError(t, rec).Code)
}
