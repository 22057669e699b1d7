package domain

import (
	"fmt"
	"math"
	"time"
)

// ReservationPrice is the court's hourly rate for the reservation's start
// date times its length in hours, rounded to cents.
func (l *Ledger) ReservationPrice(id int64) (float64, error) {
	r, err := l.Reservation(id)
	if err != nil {
		return 0, err
	}
	return l.courtPrice(r.CourtID, r.Start, r.Duration)
}

// TrainingPrice charges court time only; trainer fees are not configured.
func (l *Ledger) TrainingPrice(id int64) (float64, error) {
	t, err := l.Training(id)
	if err != nil {
		return 0, err
	}
	return l.courtPrice(t.CourtID, t.Start, t.Duration)
}

// ClientTotal sums every reservation the client bought plus the client's
// share of each training, split evenly between its paying clients.
func (l *Ledger) ClientTotal(clientID int64) (float64, error) {
	p, err := l.Person(clientID)
	if err != nil {
		return 0, err
	}
	if !p.IsClient() {
		return 0, roleMismatch(SideClient, p, RoleClient)
	}
	var total float64
	for _, r := range l.ReservationsBoughtBy(clientID) {
		v, err := l.courtPrice(r.CourtID, r.Start, r.Duration)
		if err != nil {
			return 0, err
		}
		total += v
	}
	for _, t := range l.TrainingsBoughtBy(clientID) {
		v, err := l.courtPrice(t.CourtID, t.Start, t.Duration)
		if err != nil {
			return 0, err
		}
		total += v / float64(len(t.ClientIDs))
	}
	return math.Round(total*100) / 100, nil
}

func (l *Ledger) courtPrice(courtID int64, start time.Time, d time.Duration) (float64, error) {
	c, err := l.Court(courtID)
	if err != nil {
		return 0, err
	}
	rate, err := l.facility.HourlyRate(c.Kind, start)
	if err != nil {
		return 0, err
	}
	return math.Round(d.Hours()*rate*100) / 100, nil
}

// Pay is not supported: payment processing happens outside this system.
func (l *Ledger) Pay(reservationID int64) error {
	return fmt.Errorf("pay reservation %d: %w", reservationID, ErrNotImplemented)
}

// Cancel is not supported; bookings are never removed once made.
func (l *Ledger) Cancel(reservationID int64) error {
	return fmt.Errorf("cancel reservation %d: %w", reservationID, ErrNotImplemented)
}
