package handler

import (
	"net/http"

	"github.com/uniqverse/marketplace-api/internal/usecases/dashboard"
)

func GetAdminStats(service dashboard.StatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng, err := dashboard.ParseRange(r.URL.Query().Get("range"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		stats, err := service.Stats(r.Context(), rng)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeSuccess(w, r, http.StatusOK, stats)
	}
}
