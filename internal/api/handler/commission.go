package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/internal/usecases/commissioning"
	"github.com/uniqverse/marketplace-api/pkg/apiErrors"
	"github.com/uniqverse/marketplace-api/pkg/log"
)

type UpdateCommissionStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// GetCommissionAnalytics serves the admin commission report.
func GetCommissionAnalytics(service commissioning.Commissioner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, err := queryInt(r, "days", commissioning.DefaultDays)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}
		currency := r.URL.Query().Get("currency")

		log.ForContext(r.Context()).WithFields(log.Fields{
			"days":     days,
			"currency": currency,
		}).Debug("admin commissions requested")

		analytics, err := service.Analytics(r.Context(), days, currency)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeSuccess(w, r, http.StatusOK, analytics)
	}
}

// ExportCommissions streams the commission statement as a file download.
func ExportCommissions(service commissioning.Commissioner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, err := queryInt(r, "days", commissioning.DefaultDays)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		format, err := commissioning.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		file, err := service.Export(r.Context(), days, r.URL.Query().Get("currency"), format)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(file.Data); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("export download interrupted")
		}
	}
}

// UpdateCommissionStatus moves a commission record to a new payout status.
func UpdateCommissionStatus(service commissioning.Commissioner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(httprouter.ParamsFromContext(r.Context()).ByName("id"), 10, 64)
		if err != nil || id <= 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "invalid commission id", nil)
			return
		}

		var req UpdateCommissionStatusRequest
		if !decodeBody(w, r, &req) {
			return
		}

		commission, err := service.UpdateStatus(r.Context(), id, domain.CommissionStatus(req.Status))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"commission_id": id,
			"status":        commission.Status,
		}).Info("commission status updated")

		writeSuccess(w, r, http.StatusOK, commission)
	}
}
