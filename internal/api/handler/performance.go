package handler

import (
	"net/http"

	"github.com/uniqverse/marketplace-api/internal/usecases/performance"
	"github.com/uniqverse/marketplace-api/pkg/apiErrors"
	"github.com/uniqverse/marketplace-api/pkg/middleware"
)

// GetVendorPerformance reports on the vendor owning the session; other
// vendors cannot be queried.
func GetVendorPerformance(service performance.Performer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingToken, "authentication required", nil)
			return
		}

		period, err := performance.ParsePeriod(r.URL.Query().Get("period"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		report, err := service.VendorPerformance(r.Context(), claims.UserID, period, r.URL.Query().Get("currency"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeSuccess(w, r, http.StatusOK, report)
	}
}
