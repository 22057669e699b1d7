package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// WorkingHours is the open window of one weekday. DayOfWeek follows
// time.Weekday (0 = Sunday).
type WorkingHours struct {
	DayOfWeek int    `json:"day_of_week"`
	OpenTime  string `json:"open_time"`  // "09:00"
	CloseTime string `json:"close_time"` // "21:00"
	IsClosed  bool   `json:"is_closed"`
}

// Window returns the working interval on the given calendar day.
func (wh WorkingHours) Window(day time.Time) (Interval, error) {
	open, err := clockOn(day, wh.OpenTime)
	if err != nil {
		return Interval{}, err
	}
	closing, err := clockOn(day, wh.CloseTime)
	if err != nil {
		return Interval{}, err
	}
	if !closing.After(open) {
		return Interval{}, fmt.Errorf("%w: close %s not after open %s", ErrInvalidInterval, wh.CloseTime, wh.OpenTime)
	}
	return Interval{Start: open, Duration: closing.Sub(open)}, nil
}

func clockOn(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", hhmm, err)
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

// MonthDay is a calendar date without a year. It encodes as "MM-DD".
type MonthDay struct {
	Month time.Month
	Day   int
}

// ParseMonthDay reads "MM-DD". February 29 is accepted.
func ParseMonthDay(s string) (MonthDay, error) {
	t, err := time.Parse("2006-01-02", "2000-"+strings.TrimSpace(s))
	if err != nil {
		return MonthDay{}, fmt.Errorf("invalid month-day %q: %w", s, err)
	}
	return MonthDay{Month: t.Month(), Day: t.Day()}, nil
}

func MonthDayOf(t time.Time) MonthDay {
	_, m, d := t.Date()
	return MonthDay{Month: m, Day: d}
}

func (md MonthDay) String() string { return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day) }

func (md MonthDay) ordinal() int { return int(md.Month)*100 + md.Day }

func (md MonthDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(md.String())
}

// UnmarshalJSON takes "MM-DD". Full RFC 3339 timestamps, as older stored
// rows carry, keep only their month and day.
func (md *MonthDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*md = MonthDayOf(t)
		return nil
	}
	v, err := ParseMonthDay(s)
	if err != nil {
		return err
	}
	*md = v
	return nil
}

// SeasonWindow is an inclusive range of dates that repeats every year. An
// end before the start wraps over New Year, as in 10-01..03-31.
type SeasonWindow struct {
	Start MonthDay `json:"start"`
	End   MonthDay `json:"end"`
}

func (w SeasonWindow) Wraps() bool { return w.End.ordinal() < w.Start.ordinal() }

// Contains reports whether the date of at lies in the window, edges included.
func (w SeasonWindow) Contains(at time.Time) bool {
	day, start, end := MonthDayOf(at).ordinal(), w.Start.ordinal(), w.End.ordinal()
	if w.Wraps() {
		return day >= start || day <= end
	}
	return day >= start && day <= end
}

// Inside reports whether the date of at lies strictly between the edges.
func (w SeasonWindow) Inside(at time.Time) bool {
	day, start, end := MonthDayOf(at).ordinal(), w.Start.ordinal(), w.End.ordinal()
	if w.Wraps() {
		return day > start || day < end
	}
	return day > start && day < end
}

// Season prices one court kind and, for unroofed courts, bounds the
// outdoor season.
type Season struct {
	CourtKind     CourtKind    `json:"court_kind"`
	Window        SeasonWindow `json:"window"`
	InSeasonRate  float64      `json:"in_season_rate"`
	OffSeasonRate float64      `json:"off_season_rate"`
}

// FacilityConfig holds the facility-wide constants. It is loaded once and
// handed to whatever needs it.
type FacilityConfig struct {
	OpenTime  string   `json:"open_time"`
	CloseTime string   `json:"close_time"`
	Seasons   []Season `json:"seasons"`
}

func DefaultFacilityConfig() *FacilityConfig {
	return &FacilityConfig{OpenTime: "07:00", CloseTime: "22:00"}
}

func (f *FacilityConfig) Validate() error {
	if _, err := f.OpeningWindow(time.Now()); err != nil {
		return err
	}
	seen := make(map[CourtKind]bool, len(f.Seasons))
	for _, s := range f.Seasons {
		if !s.CourtKind.Valid() {
			return fmt.Errorf("season: unknown court kind %q", s.CourtKind)
		}
		if seen[s.CourtKind] {
			return fmt.Errorf("season: duplicate entry for %s", s.CourtKind)
		}
		seen[s.CourtKind] = true
		if _, err := ParseMonthDay(s.Window.Start.String()); err != nil {
			return fmt.Errorf("season %s start: %w", s.CourtKind, err)
		}
		if _, err := ParseMonthDay(s.Window.End.String()); err != nil {
			return fmt.Errorf("season %s end: %w", s.CourtKind, err)
		}
		if s.InSeasonRate < 0 || s.OffSeasonRate < 0 {
			return fmt.Errorf("season %s: negative rate", s.CourtKind)
		}
	}
	return nil
}

func (f *FacilityConfig) OpeningWindow(day time.Time) (Interval, error) {
	return WorkingHours{OpenTime: f.OpenTime, CloseTime: f.CloseTime}.Window(day)
}

// IsOpen reports whether the facility is open for the whole interval.
func (f *FacilityConfig) IsOpen(from time.Time, d time.Duration) bool {
	w, err := f.OpeningWindow(from)
	if err != nil {
		return false
	}
	return w.Contains(NewInterval(from, d))
}

func (f *FacilityConfig) SeasonFor(kind CourtKind) (Season, bool) {
	for _, s := range f.Seasons {
		if s.CourtKind == kind {
			return s, true
		}
	}
	return Season{}, false
}

// HourlyRate picks the in-season or off-season rate for a court kind.
func (f *FacilityConfig) HourlyRate(kind CourtKind, at time.Time) (float64, error) {
	s, ok := f.SeasonFor(kind)
	if !ok {
		return 0, fmt.Errorf("no pricing configured for %s courts: %w", kind, ErrNotFound)
	}
	if s.Window.Contains(at) {
		return s.InSeasonRate, nil
	}
	return s.OffSeasonRate, nil
}
