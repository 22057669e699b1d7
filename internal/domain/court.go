package domain

import "time"

type CourtKind string

const (
	CourtRoofed   CourtKind = "roofed"
	CourtUnroofed CourtKind = "unroofed"
)

func (k CourtKind) Valid() bool {
	return k == CourtRoofed || k == CourtUnroofed
}

type Surface string

const (
	SurfaceClay   Surface = "clay"
	SurfaceHard   Surface = "hard"
	SurfaceGrass  Surface = "grass"
	SurfaceCarpet Surface = "carpet"
)

type Court struct {
	ID      int64     `json:"id"`
	Number  int       `json:"number"`
	Surface Surface   `json:"surface"`
	Kind    CourtKind `json:"kind"`
	// Season is only set on unroofed courts.
	Season *SeasonWindow `json:"season,omitempty"`
}

// OutOfSeason reports whether at falls on or before the season start or on
// or after the season end of an unroofed court, in any year. Dates are
// compared by day, so a booking at 10:00 on the first season day is out of
// season. Roofed courts are never out of season.
func (c *Court) OutOfSeason(at time.Time) bool {
	if c.Kind != CourtUnroofed || c.Season == nil {
		return false
	}
	return !c.Season.Inside(at)
}

// IsAvailable checks the court against the intervals already booked on it.
//
// For an unroofed court the season test runs first: a start date out of
// season is available whatever is booked. Only dates strictly inside the
// season fall through to the overlap check.
func (c *Court) IsAvailable(busy []Interval, from time.Time, d time.Duration) bool {
	if c.OutOfSeason(from) {
		return true
	}
	return !anyOverlap(busy, NewInterval(from, d))
}
