package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthDay(t *testing.T) {
	md, err := ParseMonthDay("05-01")
	require.NoError(t, err)
	assert.Equal(t, MonthDay{Month: time.May, Day: 1}, md)
	assert.Equal(t, "05-01", md.String())

	md, err = ParseMonthDay("02-29")
	require.NoError(t, err)
	assert.Equal(t, 29, md.Day)

	for _, bad := range []string{"13-01", "02-30", "5-1x", ""} {
		_, err := ParseMonthDay(bad)
		assert.Error(t, err, bad)
	}
}

func TestMonthDay_JSON(t *testing.T) {
	w := SeasonWindow{Start: MonthDay{Month: time.October, Day: 1}, End: MonthDay{Month: time.March, Day: 31}}
	b, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"10-01","end":"03-31"}`, string(b))

	var back SeasonWindow
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, w, back)

	// rows written with full timestamps keep their month and day
	var old SeasonWindow
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2026-05-01T00:00:00Z","end":"2026-08-31T00:00:00Z"}`), &old))
	assert.Equal(t, MonthDay{Month: time.May, Day: 1}, old.Start)
	assert.Equal(t, MonthDay{Month: time.August, Day: 31}, old.End)
}

func TestSeasonWindow_Contains(t *testing.T) {
	summer := SeasonWindow{Start: MonthDay{Month: time.May, Day: 1}, End: MonthDay{Month: time.August, Day: 31}}
	assert.False(t, summer.Wraps())
	for _, year := range []int{2026, 2027, 2031} {
		assert.True(t, summer.Contains(date(year, 5, 1, 0, 0)))
		assert.True(t, summer.Contains(date(year, 7, 15, 23, 59)))
		assert.True(t, summer.Contains(date(year, 8, 31, 12, 0)))
		assert.False(t, summer.Contains(date(year, 4, 30, 12, 0)))
		assert.False(t, summer.Contains(date(year, 9, 1, 0, 0)))
	}

	winter := SeasonWindow{Start: MonthDay{Month: time.October, Day: 1}, End: MonthDay{Month: time.March, Day: 31}}
	assert.True(t, winter.Wraps())
	assert.True(t, winter.Contains(date(2026, 10, 1, 0, 0)))
	assert.True(t, winter.Contains(date(2026, 12, 31, 23, 0)))
	assert.True(t, winter.Contains(date(2027, 1, 1, 0, 0)))
	assert.True(t, winter.Contains(date(2028, 3, 31, 18, 0)))
	assert.False(t, winter.Contains(date(2027, 4, 1, 0, 0)))
	assert.False(t, winter.Contains(date(2027, 9, 30, 0, 0)))
}

func TestSeasonWindow_InsideExcludesEdges(t *testing.T) {
	winter := SeasonWindow{Start: MonthDay{Month: time.October, Day: 1}, End: MonthDay{Month: time.March, Day: 31}}
	assert.False(t, winter.Inside(date(2026, 10, 1, 10, 0)))
	assert.True(t, winter.Inside(date(2026, 10, 2, 10, 0)))
	assert.True(t, winter.Inside(date(2027, 1, 15, 10, 0)))
	assert.False(t, winter.Inside(date(2027, 3, 31, 10, 0)))
	assert.False(t, winter.Inside(date(2027, 6, 1, 10, 0)))
}

func TestFacilityConfig_IsOpen(t *testing.T) {
	f := DefaultFacilityConfig()

	assert.True(t, f.IsOpen(date(2026, 6, 6, 7, 0), 15*time.Hour), "whole opening window")
	assert.True(t, f.IsOpen(date(2026, 6, 6, 21, 0), time.Hour))
	assert.False(t, f.IsOpen(date(2026, 6, 6, 6, 59), time.Hour))
	assert.False(t, f.IsOpen(date(2026, 6, 6, 21, 1), time.Hour))

	broken := &FacilityConfig{OpenTime: "late", CloseTime: "22:00"}
	assert.False(t, broken.IsOpen(date(2026, 6, 6, 10, 0), time.Hour))
}

func TestFacilityConfig_HourlyRateEveryYear(t *testing.T) {
	f := newFixture(t).ledger.Facility()

	for _, year := range []int{2026, 2027} {
		rate, err := f.HourlyRate(CourtRoofed, date(year, 12, 10, 10, 0))
		require.NoError(t, err)
		assert.Equal(t, 50.0, rate, "December %d is in the roofed season", year)

		rate, err = f.HourlyRate(CourtRoofed, date(year, 6, 10, 10, 0))
		require.NoError(t, err)
		assert.Equal(t, 40.0, rate)

		rate, err = f.HourlyRate(CourtUnroofed, date(year, 7, 15, 10, 0))
		require.NoError(t, err)
		assert.Equal(t, 30.0, rate)
	}

	_, err := DefaultFacilityConfig().HourlyRate(CourtRoofed, date(2026, 1, 1, 0, 0))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFacilityConfig_ValidateSeasons(t *testing.T) {
	f := DefaultFacilityConfig()
	f.Seasons = []Season{{CourtKind: CourtUnroofed}}
	assert.Error(t, f.Validate(), "unset window")

	f.Seasons = []Season{{
		CourtKind: CourtRoofed,
		Window:    SeasonWindow{Start: MonthDay{Month: time.October, Day: 1}, End: MonthDay{Month: time.March, Day: 31}},
	}}
	assert.NoError(t, f.Validate(), "wrapping windows are allowed")
}
