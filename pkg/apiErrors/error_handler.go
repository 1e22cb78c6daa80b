package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Authentication (AUTH_*)
	ErrInvalidCredentials    = "AUTH_001"
	ErrUserDisabled          = "AUTH_002"
	ErrUserNotFound          = "AUTH_003"
	ErrMissingToken          = "AUTH_004"
	ErrInvalidToken          = "AUTH_006"
	ErrExpiredToken          = "AUTH_007"
	ErrInsufficientPrivilege = "AUTH_008"

	// Validation (VAL_*)
	ErrInvalidRequest          = "VAL_001"
	ErrMissingRequiredData     = "VAL_002"
	ErrInvalidFormat           = "VAL_003"
	ErrInvalidStatusTransition = "VAL_004"

	// Resources (RES_*)
	ErrResourceNotFound = "RES_001"
	ErrVendorNotFound   = "RES_002"

	// Server (SRV_*)
	ErrInternalServer    = "SRV_001"
	ErrDatabaseOperation = "SRV_002"
	ErrExternalService   = "SRV_003"
	ErrCommunication     = "SRV_004"
)

// A wrong role is reported like a missing session: both are 401.
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:      http.StatusUnauthorized,
	ErrUserDisabled:            http.StatusUnauthorized,
	ErrUserNotFound:            http.StatusUnauthorized,
	ErrMissingToken:            http.StatusUnauthorized,
	ErrInvalidToken:            http.StatusUnauthorized,
	ErrExpiredToken:            http.StatusUnauthorized,
	ErrInsufficientPrivilege:   http.StatusUnauthorized,
	ErrInvalidRequest:          http.StatusBadRequest,
	ErrMissingRequiredData:     http.StatusBadRequest,
	ErrInvalidFormat:           http.StatusBadRequest,
	ErrInvalidStatusTransition: http.StatusBadRequest,
	ErrResourceNotFound:        http.StatusNotFound,
	ErrVendorNotFound:          http.StatusNotFound,
	ErrInternalServer:          http.StatusInternalServerError,
	ErrDatabaseOperation:       http.StatusInternalServerError,
	ErrExternalService:         http.StatusBadGateway,
	ErrCommunication:           http.StatusServiceUnavailable,
}

// APIError is the body of every failed response.
type APIError struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor returns the HTTP status for an error code, 500 when unknown.
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError writes the standard error body for code.
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	_ = json.NewEncoder(w).Encode(apiErr)
}

// FromError wraps a Go error into an APIError with the given code.
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "unknown error",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
