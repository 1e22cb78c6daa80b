package ratesdomain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LatestRates is the payload of the open exchange rates "latest" endpoint.
type LatestRates struct {
	Result             string                     `json:"result"`
	BaseCode           string                     `json:"base_code"`
	TimeLastUpdateUnix int64                      `json:"time_last_update_unix"`
	Rates              map[string]decimal.Decimal `json:"rates"`
	ErrorType          string                     `json:"error-type,omitempty"`
}

func (l *LatestRates) UpdatedAt() time.Time {
	if l.TimeLastUpdateUnix == 0 {
		return time.Time{}
	}
	return time.Unix(l.TimeLastUpdateUnix, 0).UTC()
}
