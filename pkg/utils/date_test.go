package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfWeek(t *testing.T) {
	// 2024-03-14 is a Thursday
	thursday := time.Date(2024, 3, 14, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), StartOfWeek(thursday))

	sunday := time.Date(2024, 3, 17, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), StartOfWeek(sunday))

	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, StartOfWeek(monday))
}

func TestStartOfDayKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	at := time.Date(2024, 1, 2, 1, 0, 0, 0, loc)

	got := StartOfDay(at)

	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestStartOfMonthAndYear(t *testing.T) {
	at := time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(at))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), StartOfYear(at))
}
