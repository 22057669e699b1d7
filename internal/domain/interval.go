package domain

import (
	"slices"
	"time"
)

// Overlaps reports whether [start1, start1+dur1) and [start2, start2+dur2) intersect.
func Overlaps(start1 time.Time, dur1 time.Duration, start2 time.Time, dur2 time.Duration) bool {
	return OverlapsEnd(start1, start1.Add(dur1), start2, start2.Add(dur2))
}

// OverlapsEnd is the single definition every other variant reduces to.
func OverlapsEnd(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}

func OverlapsDurEnd(start1 time.Time, dur1 time.Duration, start2, end2 time.Time) bool {
	return OverlapsEnd(start1, start1.Add(dur1), start2, end2)
}

func OverlapsEndDur(start1, end1, start2 time.Time, dur2 time.Duration) bool {
	return OverlapsEnd(start1, end1, start2, start2.Add(dur2))
}

// Interval is a half-open time range [Start, Start+Duration).
type Interval struct {
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"duration"`
}

func NewInterval(start time.Time, d time.Duration) Interval {
	return Interval{Start: start, Duration: d}
}

func (i Interval) End() time.Time {
	return i.Start.Add(i.Duration)
}

func (i Interval) Overlaps(o Interval) bool {
	return Overlaps(i.Start, i.Duration, o.Start, o.Duration)
}

// Contains reports whether o lies entirely inside i. Edges may coincide.
func (i Interval) Contains(o Interval) bool {
	return !o.Start.Before(i.Start) && !o.End().After(i.End())
}

func (i Interval) String() string {
	return i.Start.Format("2006-01-02 15:04") + "-" + i.End().Format("15:04")
}

func anyOverlap(busy []Interval, want Interval) bool {
	for _, b := range busy {
		if b.Overlaps(want) {
			return true
		}
	}
	return false
}

// FreeWindows returns the parts of window not covered by busy, in order.
// busy may be unsorted and may overlap itself or reach past window.
func FreeWindows(window Interval, busy []Interval) []Interval {
	open, close := window.Start, window.End()
	if !close.After(open) {
		return nil
	}

	sorted := slices.Clone(busy)
	sortIntervals(sorted)

	var out []Interval
	cursor := open
	for _, b := range sorted {
		if !b.End().After(cursor) || !b.Start.Before(close) {
			continue
		}
		if b.Start.After(cursor) {
			out = append(out, NewInterval(cursor, b.Start.Sub(cursor)))
		}
		cursor = b.End()
		if !cursor.Before(close) {
			return out
		}
	}
	if cursor.Before(close) {
		out = append(out, NewInterval(cursor, close.Sub(cursor)))
	}
	return out
}
