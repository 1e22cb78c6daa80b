package commissioning

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDays        = errors.New("days must be between 1 and 365")
	ErrCommissionNotFound = errors.New("commission not found")
	ErrInvalidStatus      = errors.New("invalid commission status")
	ErrInvalidTransition  = errors.New("commission status transition not allowed")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
)

// CommissionError carries the API error code of a commission operation failure.
type CommissionError struct {
	Err          error
	Code         string
	CommissionID int64
	Details      string
}

func (e *CommissionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *CommissionError) Unwrap() error {
	return e.Err
}

func NewCommissionError(baseErr error, code string, commissionID int64, details string) *CommissionError {
	return &CommissionError{
		Err:          baseErr,
		Code:         code,
		CommissionID: commissionID,
		Details:      details,
	}
}
