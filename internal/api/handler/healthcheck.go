package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/uniqverse/marketplace-api/pkg/log"
)

const healthcheckTimeout = 2 * time.Second

// Pinger is a dependency the healthcheck probes, such as the database pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status   string `json:"status"`
	Time     string `json:"time"`
	Database string `json:"database,omitempty"`
}

// HealthcheckHandler answers 200 while the service and its database are
// reachable and 503 when the ping fails. A nil db skips the database probe.
func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: "ok", Time: time.Now().UTC().Format(time.RFC3339)}
		status := http.StatusOK

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
			defer cancel()

			resp.Database = "up"
			if err := db.Ping(ctx); err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("healthcheck: database ping failed")
				resp.Status = "degraded"
				resp.Database = "down"
				status = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("error responding to healthcheck")
		}
	})
}
