package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeDays_ThreeDays(t *testing.T) {
	days := domain.ComputeDays(date(2024, 6, 1), date(2024, 6, 3))

	require.Len(t, days, 3)
	assert.Equal(t, "2024-06-01", days[0].Date.Format(domain.DateLayout))
	assert.Equal(t, "2024-06-02", days[1].Date.Format(domain.DateLayout))
	assert.Equal(t, "2024-06-03", days[2].Date.Format(domain.DateLayout))
	for i, d := range days {
		assert.Equal(t, i+1, d.Number)
		assert.NotNil(t, d.Places, "places should be an empty slice, not nil")
		assert.Empty(t, d.Places)
	}
}

func TestComputeDays_LengthMatchesInclusiveCount(t *testing.T) {
	start := date(2024, 2, 20)
	for span := 0; span < 60; span++ {
		end := start.AddDate(0, 0, span)

		days := domain.ComputeDays(start, end)

		require.Len(t, days, domain.DaysBetweenInclusive(start, end), "span %d", span)
		require.Len(t, days, span+1, "span %d", span)
		for i, d := range days {
			require.Equal(t, i+1, d.Number)
		}
		// Consecutive dates across the Feb 29 leap day.
		assert.True(t, days[len(days)-1].Date.Equal(end), "span %d", span)
	}
}

func TestComputeDays_SingleDay(t *testing.T) {
	days := domain.ComputeDays(date(2024, 6, 1), date(2024, 6, 1))

	require.Len(t, days, 1)
	assert.Equal(t, 1, days[0].Number)
}

func TestComputeDays_EndBeforeStartYieldsOneDay(t *testing.T) {
	days := domain.ComputeDays(date(2024, 6, 5), date(2024, 6, 1))

	require.Len(t, days, 1)
	assert.True(t, days[0].Date.Equal(date(2024, 6, 5)))
}

func TestComputeDays_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 6, 1, 22, 30, 0, 0, time.UTC)
	end := time.Date(2024, 6, 2, 1, 0, 0, 0, time.UTC)

	days := domain.ComputeDays(start, end)

	require.Len(t, days, 2)
	assert.True(t, days[0].Date.Equal(date(2024, 6, 1)))
}

func TestParseDate(t *testing.T) {
	got, err := domain.ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, date(2024, 6, 1), got)

	_, err = domain.ParseDate("06/01/2024")
	assert.Error(t, err)
}

// TestComputeDays_CenturiesLong covers ranges longer than time.Duration can
// express (about 292 years).
func TestComputeDays_CenturiesLong(t *testing.T) {
	start, end := date(1700, 1, 1), date(2024, 6, 1)

	days := domain.ComputeDays(start, end)

	require.Len(t, days, 118491)
	assert.True(t, days[len(days)-1].Date.Equal(end))
}

func TestDaysBetweenInclusive_FullCalendar(t *testing.T) {
	assert.Equal(t, 3652059, domain.DaysBetweenInclusive(date(1, 1, 1), date(9999, 12, 31)))
	assert.Equal(t, 1, domain.DaysBetweenInclusive(date(9999, 12, 31), date(1, 1, 1)))
}

func TestValidateRange(t *testing.T) {
	start := date(2024, 1, 1)

	assert.NoError(t, domain.ValidateRange(start, start))
	assert.NoError(t, domain.ValidateRange(start, start.AddDate(0, 0, domain.MaxTripDays-1)))

	for name, end := range map[string]time.Time{
		"inverted":       start.AddDate(0, 0, -1),
		"one day over":   start.AddDate(0, 0, domain.MaxTripDays),
		"whole calendar": date(9999, 12, 31),
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, domain.ValidateRange(start, end), domain.ErrInvalidRange)
		})
	}
}
