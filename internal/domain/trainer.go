package domain

import "time"

type TrainerTier string

const (
	TierJunior TrainerTier = "junior"
	TierSenior TrainerTier = "senior"
	TierMaster TrainerTier = "master"
)

type Trainer struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	Tier         TrainerTier    `json:"tier"`
	WorkingHours []WorkingHours `json:"working_hours"`
}

// WorkingWindow returns the trainer's shift on the day of at. ok is false
// when the weekday has no entry or is marked closed.
func (t *Trainer) WorkingWindow(at time.Time) (Interval, bool) {
	for _, wh := range t.WorkingHours {
		if wh.DayOfWeek != int(at.Weekday()) || wh.IsClosed {
			continue
		}
		w, err := wh.Window(at)
		if err != nil {
			return Interval{}, false
		}
		return w, true
	}
	return Interval{}, false
}

func (t *Trainer) IsAvailable(busy []Interval, from time.Time, d time.Duration) bool {
	window, ok := t.WorkingWindow(from)
	if !ok {
		return false
	}
	want := NewInterval(from, d)
	if !window.Contains(want) {
		return false
	}
	return !anyOverlap(busy, want)
}
