package handler

import (
	"net/http"

	"github.com/uniqverse/marketplace-api/internal/api/handler/router"
	"github.com/uniqverse/marketplace-api/internal/usecases/authenticating"
	"github.com/uniqverse/marketplace-api/internal/usecases/commissioning"
	"github.com/uniqverse/marketplace-api/internal/usecases/converting"
	"github.com/uniqverse/marketplace-api/internal/usecases/dashboard"
	"github.com/uniqverse/marketplace-api/internal/usecases/performance"
	"github.com/uniqverse/marketplace-api/pkg/metrics"
	"github.com/uniqverse/marketplace-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Authentication(service authenticating.Authenticator, cookieName string) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service, cookieName),
		},
		{
			Path:        "/v1/logout",
			Method:      http.MethodPost,
			Handler:     Logout(cookieName),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Currencies(converter converting.Converter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/currencies",
			Method:      http.MethodGet,
			Handler:     ListCurrencies(converter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Commissions(service commissioning.Commissioner) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/admin/commissions",
			Method:      http.MethodGet,
			Handler:     GetCommissionAnalytics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/admin/commissions/export",
			Method:      http.MethodGet,
			Handler:     ExportCommissions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/admin/commissions/:id/status",
			Method:      http.MethodPatch,
			Handler:     UpdateCommissionStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func VendorPerformance(service performance.Performer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/vendor/performance",
			Method:      http.MethodGet,
			Handler:     GetVendorPerformance(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.VendorOnly()},
		},
	}
}

func AdminStats(service dashboard.StatsProvider) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/admin/stats",
			Method:      http.MethodGet,
			Handler:     GetAdminStats(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
