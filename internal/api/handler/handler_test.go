package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniqverse/marketplace-api/internal/api/handler/router"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/internal/usecases/authenticating"
	authmocks "github.com/uniqverse/marketplace-api/internal/usecases/authenticating/mocks"
	"github.com/uniqverse/marketplace-api/internal/usecases/commissioning"
	commissionmocks "github.com/uniqverse/marketplace-api/internal/usecases/commissioning/mocks"
	"github.com/uniqverse/marketplace-api/internal/usecases/dashboard"
	dashboardmocks "github.com/uniqverse/marketplace-api/internal/usecases/dashboard/mocks"
	"github.com/uniqverse/marketplace-api/internal/usecases/performance"
	performancemocks "github.com/uniqverse/marketplace-api/internal/usecases/performance/mocks"
	"github.com/uniqverse/marketplace-api/pkg/apiErrors"
	"github.com/uniqverse/marketplace-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

var (
	adminClaims  = &domain.Claims{UserID: 1, UserName: "Admin", UserRole: domain.RoleAdmin}
	vendorClaims = &domain.Claims{UserID: 42, UserName: "Vendor", UserRole: domain.RoleVendor}
)

type envelope struct {
	Success bool            `json:"success"`
	Data    jsoniter.RawMessage `json:"data"`
	Code    string          `json:"code"`
	Details map[string]any  `json:"details"`
}

func serve(t *testing.T, routes []router.Route, method, target string, body string, claims *domain.Claims) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if claims != nil {
		req = req.WithContext(middleware.WithClaims(req.Context(), claims))
	}

	rec := httptest.NewRecorder()
	router.New(router.WithRoutes(routes...)).ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestGetCommissionAnalytics(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		claims     *domain.Claims
		mock       func(m *commissionmocks.MockCommissioner)
		wantStatus int
		wantCode   string
	}{
		{
			name:   "defaults to 30 days",
			target: "/v1/admin/commissions",
			claims: adminClaims,
			mock: func(m *commissionmocks.MockCommissioner) {
				m.EXPECT().Analytics(gomock.Any(), 30, "").Return(&domain.CommissionAnalytics{Currency: domain.CurrencyUSD}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "passes days and currency",
			target: "/v1/admin/commissions?days=7&currency=eur",
			claims: adminClaims,
			mock: func(m *commissionmocks.MockCommissioner) {
				m.EXPECT().Analytics(gomock.Any(), 7, "eur").Return(&domain.CommissionAnalytics{Currency: "EUR"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "non numeric days",
			target:     "/v1/admin/commissions?days=abc",
			claims:     adminClaims,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
		},
		{
			name:   "days out of range",
			target: "/v1/admin/commissions?days=400",
			claims: adminClaims,
			mock: func(m *commissionmocks.MockCommissioner) {
				m.EXPECT().Analytics(gomock.Any(), 400, "").Return(nil,
					commissioning.NewCommissionError(commissioning.ErrInvalidDays, apiErrors.ErrInvalidRequest, 0, "got 400"))
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
		},
		{
			name:       "vendor is rejected",
			target:     "/v1/admin/commissions",
			claims:     vendorClaims,
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInsufficientPrivilege,
		},
		{
			name:   "query failure is a generic 500",
			target: "/v1/admin/commissions",
			claims: adminClaims,
			mock: func(m *commissionmocks.MockCommissioner) {
				m.EXPECT().Analytics(gomock.Any(), 30, "").Return(nil, errors.New("connection reset"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := commissionmocks.NewMockCommissioner(gomock.NewController(t))
			if tt.mock != nil {
				tt.mock(service)
			}

			rec, env := serve(t, Commissions(service), http.MethodGet, tt.target, "", tt.claims)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, env.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, env.Success)
			assert.NotContains(t, rec.Body.String(), "connection reset")
		})
	}
}

func TestExportCommissions(t *testing.T) {
	service := commissionmocks.NewMockCommissioner(gomock.NewController(t))
	service.EXPECT().Export(gomock.Any(), 30, "GBP", commissioning.FormatPDF).Return(&commissioning.ExportFile{
		Name:        "commission-statement-20240315-abc.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.3"),
	}, nil)

	rec, _ := serve(t, Commissions(service), http.MethodGet, "/v1/admin/commissions/export?format=pdf&currency=GBP", "", adminClaims)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "commission-statement-20240315-abc.pdf")
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
}

func TestExportCommissions_UnknownFormat(t *testing.T) {
	service := commissionmocks.NewMockCommissioner(gomock.NewController(t))

	rec, env := serve(t, Commissions(service), http.MethodGet, "/v1/admin/commissions/export?format=csv", "", adminClaims)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidFormat, env.Code)
}

func TestUpdateCommissionStatus(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		mock       func(m *commissionmocks.MockCommissioner)
		wantStatus int
		wantCode   string
	}{
		{
			name:   "pending to paid",
			target: "/v1/admin/commissions/7/status",
			body:   `{"status":"PAID"}`,
			mock: func(m *commissionmocks.MockCommissioner) {
				m.EXPECT().UpdateStatus(gomock.Any(), int64(7), domain.CommissionStatusPaid).
					Return(&domain.Commission{ID: 7, Status: domain.CommissionStatusPaid}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "unknown id",
			target: "/v1/admin/commissions/99/status",
			body:   `{"status":"PAID"}`,
			mock: func(m *commissionmocks.MockCommissioner) {
				m.EXPECT().UpdateStatus(gomock.Any(), int64(99), domain.CommissionStatusPaid).Return(nil,
					commissioning.NewCommissionError(commissioning.ErrCommissionNotFound, apiErrors.ErrResourceNotFound, 99, ""))
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiErrors.ErrResourceNotFound,
		},
		{
			name:   "paid cannot be reopened",
			target: "/v1/admin/commissions/7/status",
			body:   `{"status":"PENDING"}`,
			mock: func(m *commissionmocks.MockCommissioner) {
				m.EXPECT().UpdateStatus(gomock.Any(), int64(7), domain.CommissionStatusPending).Return(nil,
					commissioning.NewCommissionError(commissioning.ErrInvalidTransition, apiErrors.ErrInvalidStatusTransition, 7, "PAID -> PENDING"))
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidStatusTransition,
		},
		{
			name:       "invalid id",
			target:     "/v1/admin/commissions/abc/status",
			body:       `{"status":"PAID"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name:       "missing status",
			target:     "/v1/admin/commissions/7/status",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:       "malformed body",
			target:     "/v1/admin/commissions/7/status",
			body:       `{"status":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := commissionmocks.NewMockCommissioner(gomock.NewController(t))
			if tt.mock != nil {
				tt.mock(service)
			}

			rec, env := serve(t, Commissions(service), http.MethodPatch, tt.target, tt.body, adminClaims)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, env.Code)
		})
	}
}

func TestUpdateCommissionStatus_ValidationDetails(t *testing.T) {
	service := commissionmocks.NewMockCommissioner(gomock.NewController(t))

	_, env := serve(t, Commissions(service), http.MethodPatch, "/v1/admin/commissions/7/status", `{"status":""}`, adminClaims)

	assert.Equal(t, "This field is required", env.Details["status"])
}

func TestGetVendorPerformance(t *testing.T) {
	service := performancemocks.NewMockPerformer(gomock.NewController(t))
	quarter, err := performance.ParsePeriod("quarter")
	require.NoError(t, err)

	service.EXPECT().VendorPerformance(gomock.Any(), int64(42), quarter, "EUR").
		Return(&domain.VendorPerformance{Period: "quarter", Currency: "EUR"}, nil)

	rec, env := serve(t, VendorPerformance(service), http.MethodGet, "/v1/vendor/performance?period=quarter&currency=EUR", "", vendorClaims)

	require.Equal(t, http.StatusOK, rec.Code)
	var report domain.VendorPerformance
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, "quarter", report.Period)
}

func TestGetVendorPerformance_Errors(t *testing.T) {
	t.Run("invalid period", func(t *testing.T) {
		service := performancemocks.NewMockPerformer(gomock.NewController(t))

		rec, env := serve(t, VendorPerformance(service), http.MethodGet, "/v1/vendor/performance?period=decade", "", vendorClaims)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidRequest, env.Code)
	})

	t.Run("vendor row missing", func(t *testing.T) {
		service := performancemocks.NewMockPerformer(gomock.NewController(t))
		service.EXPECT().VendorPerformance(gomock.Any(), int64(42), gomock.Any(), "").Return(nil,
			&performance.PerformanceError{Err: performance.ErrVendorNotFound, Code: apiErrors.ErrVendorNotFound, VendorID: 42})

		rec, env := serve(t, VendorPerformance(service), http.MethodGet, "/v1/vendor/performance", "", vendorClaims)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrVendorNotFound, env.Code)
	})

	t.Run("admin is not a vendor", func(t *testing.T) {
		service := performancemocks.NewMockPerformer(gomock.NewController(t))

		rec, _ := serve(t, VendorPerformance(service), http.MethodGet, "/v1/vendor/performance", "", adminClaims)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetAdminStats(t *testing.T) {
	service := dashboardmocks.NewMockStatsProvider(gomock.NewController(t))
	year, err := dashboard.ParseRange("year")
	require.NoError(t, err)

	service.EXPECT().Stats(gomock.Any(), year).Return(&domain.DashboardStats{Range: "year", Cached: true}, nil)

	rec, env := serve(t, AdminStats(service), http.MethodGet, "/v1/admin/stats?range=year", "", adminClaims)

	require.Equal(t, http.StatusOK, rec.Code)
	var stats domain.DashboardStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.True(t, stats.Cached)

	rec, env = serve(t, AdminStats(service), http.MethodGet, "/v1/admin/stats?range=decade", "", adminClaims)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidRequest, env.Code)
}

func TestLogin(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)

	t.Run("sets the session cookie", func(t *testing.T) {
		service := authmocks.NewMockAuthenticator(gomock.NewController(t))
		service.EXPECT().LoginUser(gomock.Any(), "admin@example.com", "secret").Return(&authenticating.Session{
			Token:     "jwt",
			ExpiresAt: expiresAt,
			User:      &domain.User{ID: 1, Email: "admin@example.com", Role: domain.RoleAdmin},
		}, nil)

		rec, env := serve(t, Authentication(service, "session_token"), http.MethodPost, "/v1/login",
			`{"email":"admin@example.com","password":"secret"}`, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, env.Success)
		assert.Contains(t, string(env.Data), `"token":"jwt"`)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "session_token", cookies[0].Name)
		assert.Equal(t, "jwt", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("wrong password", func(t *testing.T) {
		service := authmocks.NewMockAuthenticator(gomock.NewController(t))
		service.EXPECT().LoginUser(gomock.Any(), "admin@example.com", "nope").Return(nil,
			authenticating.NewUserAuthError(authenticating.ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, 1, "wrong password"))

		rec, env := serve(t, Authentication(service, "session_token"), http.MethodPost, "/v1/login",
			`{"email":"admin@example.com","password":"nope"}`, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidCredentials, env.Code)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("invalid email", func(t *testing.T) {
		service := authmocks.NewMockAuthenticator(gomock.NewController(t))

		rec, env := serve(t, Authentication(service, "session_token"), http.MethodPost, "/v1/login",
			`{"email":"admin","password":"secret"}`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid email address", env.Details["email"])
	})

	t.Run("database failure hides the cause", func(t *testing.T) {
		service := authmocks.NewMockAuthenticator(gomock.NewController(t))
		service.EXPECT().LoginUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil,
			authenticating.NewAuthError(errors.New("pq: too many clients"), apiErrors.ErrDatabaseOperation, "could not look up user"))

		rec, env := serve(t, Authentication(service, "session_token"), http.MethodPost, "/v1/login",
			`{"email":"admin@example.com","password":"secret"}`, nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, apiErrors.ErrInternalServer, env.Code)
		assert.NotContains(t, rec.Body.String(), "too many clients")
	})
}

func TestLogoutAndMe(t *testing.T) {
	service := authmocks.NewMockAuthenticator(gomock.NewController(t))
	service.EXPECT().GetUserProfile(gomock.Any(), int64(42)).Return(&domain.User{ID: 42, Name: "Vendor"}, nil)
	routes := Authentication(service, "session_token")

	rec, env := serve(t, routes, http.MethodGet, "/v1/me", "", vendorClaims)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"name":"Vendor"`)

	rec, _ = serve(t, routes, http.MethodPost, "/v1/logout", "", vendorClaims)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)

	rec, _ = serve(t, routes, http.MethodGet, "/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type fakeJob struct {
	triggered int
	accept    bool
}

func (f *fakeJob) TriggerManualSync() bool {
	f.triggered++
	return f.accept
}

func (f *fakeJob) GetStatus() map[string]any {
	return map[string]any{"sync_running": !f.accept}
}

func TestCronJobs(t *testing.T) {
	job := &fakeJob{accept: true}
	routes := CronJobs(CronJobServices{ExchangeRateSync: job})

	rec, env := serve(t, routes, http.MethodPost, "/v1/cron/exchange-rates/run", "", adminClaims)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, string(env.Data), `"exchange-rates":true`)

	rec, _ = serve(t, routes, http.MethodPost, "/v1/cron/all/run", "", adminClaims)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 2, job.triggered)

	rec, env = serve(t, routes, http.MethodPost, "/v1/cron/unknown/run", "", adminClaims)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidRequest, env.Code)

	rec, env = serve(t, routes, http.MethodGet, "/v1/cron/status", "", adminClaims)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"sync_running":false`)

	rec, _ = serve(t, routes, http.MethodPost, "/v1/cron/all/run", "", vendorClaims)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 2, job.triggered)
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestHealthcheck(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		wantStatus int
		want       HealthResponse
	}{
		{name: "no database probe", db: nil, wantStatus: http.StatusOK, want: HealthResponse{Status: "ok"}},
		{name: "database up", db: fakePinger{}, wantStatus: http.StatusOK, want: HealthResponse{Status: "ok", Database: "up"}},
		{name: "database down", db: fakePinger{err: errors.New("connection refused")}, wantStatus: http.StatusServiceUnavailable, want: HealthResponse{Status: "degraded", Database: "down"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.New(router.WithRoutes(Healthcheck(tt.db)...)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)

			var got HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.want.Status, got.Status)
			assert.Equal(t, tt.want.Database, got.Database)
			_, err := time.Parse(time.RFC3339, got.Time)
			assert.NoError(t, err)
		})
	}
}
