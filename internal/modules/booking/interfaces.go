package booking

import (
	"context"
	"time"

	"tenniscourt/internal/domain"
)

// BookingRepository persists what the ledger decides.
type BookingRepository interface {
	CreateReservation(ctx context.Context, r *domain.Reservation) error
	UpdateReservationPeople(ctx context.Context, r *domain.Reservation) error
	CreateTraining(ctx context.Context, t *domain.Training) error
	ReplaceTrainingLinks(ctx context.Context, t *domain.Training) error
	ReservationsOnCourt(ctx context.Context, courtID int64, from, to time.Time) ([]*domain.Reservation, error)
}

// NotificationSender is told about bookings after they are stored.
type NotificationSender interface {
	NotifyReservationCreated(ctx context.Context, r *domain.Reservation) error
	NotifyTrainingCreated(ctx context.Context, t *domain.Training) error
}
