package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/uniqverse/marketplace-api/internal/api/handler"
	"github.com/uniqverse/marketplace-api/internal/api/handler/router"
	"github.com/uniqverse/marketplace-api/internal/config"
	"github.com/uniqverse/marketplace-api/internal/usecases/authenticating"
	"github.com/uniqverse/marketplace-api/internal/usecases/commissioning"
	"github.com/uniqverse/marketplace-api/internal/usecases/converting"
	"github.com/uniqverse/marketplace-api/internal/usecases/dashboard"
	"github.com/uniqverse/marketplace-api/internal/usecases/performance"
	"github.com/uniqverse/marketplace-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

// Services groups the use cases exposed over HTTP.
type Services struct {
	Authenticator authenticating.Authenticator
	Converter     converting.Converter
	Commissions   commissioning.Commissioner
	Performance   performance.Performer
	Dashboard     dashboard.StatsProvider
	CronJobs      handler.CronJobServices
	Database      handler.Pinger
}

type Server struct {
	httpServer *http.Server
}

func New(config *config.Config, services Services) (*Server, error) {
	rt := NewHandler(config, services)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           rt,
			ReadHeaderTimeout: 2 * time.Second,
			WriteTimeout:      60 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler builds the routed handler with the global middleware chain.
func NewHandler(config *config.Config, services Services) http.Handler {
	cookieName := config.Session.CookieName

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(services.Database)...),
		router.WithRoutes(handler.Authentication(services.Authenticator, cookieName)...),
		router.WithRoutes(handler.Currencies(services.Converter)...),
		router.WithRoutes(handler.Commissions(services.Commissions)...),
		router.WithRoutes(handler.VendorPerformance(services.Performance)...),
		router.WithRoutes(handler.AdminStats(services.Dashboard)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator, cookieName),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("server stopped unexpectedly")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("interrupt signal received")
	case <-ctx.Done():
		logrus.Info("application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("shutting down server")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("server shutdown failed")
		return err
	}

	logrus.Info("server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
