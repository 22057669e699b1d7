package domain

import (
	"slices"
	"time"
)

// Reservation is a paid court booking: one court, one paying client and one
// playing participant.
type Reservation struct {
	ID            int64         `json:"id"`
	Start         time.Time     `json:"start"`
	Duration      time.Duration `json:"duration"`
	CourtID       int64         `json:"court_id"`
	ClientID      int64         `json:"client_id"`
	ParticipantID int64         `json:"participant_id"`
	EquipmentID   *int64        `json:"equipment_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (r *Reservation) Interval() Interval { return NewInterval(r.Start, r.Duration) }

func (r *Reservation) usesEquipment(id int64) bool {
	return r.EquipmentID != nil && *r.EquipmentID == id
}

// Training is a trainer-led session on a court.
type Training struct {
	ID             int64         `json:"id"`
	Start          time.Time     `json:"start"`
	Duration       time.Duration `json:"duration"`
	TrainerID      int64         `json:"trainer_id"`
	CourtID        int64         `json:"court_id"`
	ClientIDs      []int64       `json:"client_ids"`
	ParticipantIDs []int64       `json:"participant_ids"`
	EquipmentIDs   []int64       `json:"equipment_ids"`
	CreatedAt      time.Time     `json:"created_at"`
}

func (t *Training) Interval() Interval { return NewInterval(t.Start, t.Duration) }

func (t *Training) HasClient(id int64) bool      { return slices.Contains(t.ClientIDs, id) }
func (t *Training) HasParticipant(id int64) bool { return slices.Contains(t.ParticipantIDs, id) }
func (t *Training) UsesEquipment(id int64) bool  { return slices.Contains(t.EquipmentIDs, id) }

// Clone returns a deep copy.
func (t *Training) Clone() *Training {
	c := *t
	c.ClientIDs = slices.Clone(t.ClientIDs)
	c.ParticipantIDs = slices.Clone(t.ParticipantIDs)
	c.EquipmentIDs = slices.Clone(t.EquipmentIDs)
	return &c
}

type ReservationRequest struct {
	Start         time.Time
	Duration      time.Duration
	CourtID       int64
	ClientID      int64
	ParticipantID int64
	EquipmentID   *int64
}

type TrainingRequest struct {
	Start          time.Time
	Duration       time.Duration
	TrainerID      int64
	CourtID        int64
	ClientIDs      []int64
	ParticipantIDs []int64
	EquipmentIDs   []int64
}
