package booking

import (
	"time"

	"tenniscourt/internal/domain"
)

type CreateReservationRequest struct {
	CourtID         int64     `json:"court_id" binding:"required" validate:"gt=0"`
	ClientID        int64     `json:"client_id" binding:"required" validate:"gt=0"`
	ParticipantID   int64     `json:"participant_id" binding:"required" validate:"gt=0"`
	EquipmentID     *int64    `json:"equipment_id,omitempty" validate:"omitempty,gt=0"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required" validate:"gt=0,lte=720"`
}

type CreateTrainingRequest struct {
	TrainerID       int64     `json:"trainer_id" binding:"required" validate:"gt=0"`
	CourtID         int64     `json:"court_id" binding:"required" validate:"gt=0"`
	ClientIDs       []int64   `json:"client_ids" binding:"required" validate:"min=1,dive,gt=0"`
	ParticipantIDs  []int64   `json:"participant_ids" binding:"required" validate:"min=1,dive,gt=0"`
	EquipmentIDs    []int64   `json:"equipment_ids" validate:"dive,gt=0"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required" validate:"gt=0,lte=720"`
}

// UpdateReservationPeopleRequest moves a reservation to another payer or
// player. Omitted fields stay as they are.
type UpdateReservationPeopleRequest struct {
	ClientID      *int64 `json:"client_id,omitempty" validate:"omitempty,gt=0"`
	ParticipantID *int64 `json:"participant_id,omitempty" validate:"omitempty,gt=0"`
}

type AddTrainingMemberRequest struct {
	PersonID int64       `json:"person_id" binding:"required" validate:"gt=0"`
	Side     domain.Side `json:"side" binding:"required" validate:"oneof=client participant"`
}

type AddTrainingEquipmentRequest struct {
	EquipmentID int64 `json:"equipment_id" binding:"required" validate:"gt=0"`
}

type ReservationResponse struct {
	*domain.Reservation
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"duration_minutes"`
}

type TrainingResponse struct {
	*domain.Training
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"duration_minutes"`
}

func toReservationResponse(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{Reservation: r, End: r.Interval().End(), DurationMinutes: int(r.Duration.Minutes())}
}

func toTrainingResponse(t *domain.Training) TrainingResponse {
	return TrainingResponse{Training: t, End: t.Interval().End(), DurationMinutes: int(t.Duration.Minutes())}
}

// PersonBookings is everything a person paid for or plays in.
type PersonBookings struct {
	PersonID           int64                 `json:"person_id"`
	ReservationsBought []ReservationResponse `json:"reservations_bought"`
	Reservations       []ReservationResponse `json:"reservations"`
	TrainingsBought    []TrainingResponse    `json:"trainings_bought"`
	Trainings          []TrainingResponse    `json:"trainings"`
}
