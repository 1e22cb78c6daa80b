package aggregating

import (
	"time"

	"github.com/uniqverse/marketplace-api/pkg/utils"
)

// Window is the half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// LastDays returns the window of the given number of calendar days ending with
// the day of now, in now's location.
func LastDays(now time.Time, days int) Window {
	end := utils.StartOfDay(now).AddDate(0, 0, 1)
	return Window{Start: end.AddDate(0, 0, -days), End: end}
}

// LastMonths returns the window reaching back the given number of calendar
// months from the end of the day of now.
func LastMonths(now time.Time, months int) Window {
	end := utils.StartOfDay(now).AddDate(0, 0, 1)
	return Window{Start: end.AddDate(0, -months, 0), End: end}
}

// ShiftDays moves the window back by days.
func (w Window) ShiftDays(days int) Window {
	return Window{Start: w.Start.AddDate(0, 0, -days), End: w.End.AddDate(0, 0, -days)}
}

// ShiftMonths moves the window back by months.
func (w Window) ShiftMonths(months int) Window {
	return Window{Start: w.Start.AddDate(0, -months, 0), End: w.End.AddDate(0, -months, 0)}
}
