package handler

import (
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/uniqverse/marketplace-api/internal/usecases/authenticating"
	"github.com/uniqverse/marketplace-api/internal/usecases/commissioning"
	"github.com/uniqverse/marketplace-api/internal/usecases/dashboard"
	"github.com/uniqverse/marketplace-api/internal/usecases/performance"
	"github.com/uniqverse/marketplace-api/pkg/apiErrors"
	"github.com/uniqverse/marketplace-api/pkg/log"
	"github.com/uniqverse/marketplace-api/pkg/validator"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary
	validate = validator.New()
)

// Response is the body of every successful JSON response.
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func writeSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Response{Success: true, Data: data}); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("could not encode response")
	}
}

// writeServiceError translates use case errors into API errors. Unknown
// errors are logged and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		authErr        *authenticating.AuthError
		commissionErr  *commissioning.CommissionError
		performanceErr *performance.PerformanceError
	)

	switch {
	case errors.As(err, &authErr):
		if apiErrors.StatusFor(authErr.Code) >= http.StatusInternalServerError {
			break
		}
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	case errors.As(err, &commissionErr):
		apiErrors.WriteError(w, commissionErr.Code, commissionErr.Error(), nil)
		return
	case errors.As(err, &performanceErr):
		apiErrors.WriteError(w, performanceErr.Code, performanceErr.Error(), nil)
		return
	case errors.Is(err, dashboard.ErrInvalidRange):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).WithField("path", r.URL.Path).Error("request failed")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "internal server error", nil)
}

// decodeBody decodes and validates a JSON body, answering 400 itself on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "malformed request body", nil)
		return false
	}

	if errs := validate.ValidateStructured(dst); errs != nil {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "request validation failed", errs)
		return false
	}
	return true
}

// queryInt reads an integer query parameter, returning def when it is absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "%s must be an integer", name)
	}
	return v, nil
}
