package performance

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPeriod  = errors.New("period must be month, quarter or year")
	ErrVendorNotFound = errors.New("vendor not found")
)

type PerformanceError struct {
	Err      error
	Code     string
	VendorID int64
	Details  string
}

func (e *PerformanceError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *PerformanceError) Unwrap() error {
	return e.Err
}
