package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tenniscourt/internal/domain"
	"tenniscourt/internal/pkg/validator"
	"tenniscourt/internal/repository"
	"tenniscourt/internal/session"
)

type Service struct {
	session  *session.Session
	bookings BookingRepository
	notifs   NotificationSender
}

func NewService(s *session.Session, bookings BookingRepository, notifs NotificationSender) *Service {
	return &Service{session: s, bookings: bookings, notifs: notifs}
}

// storageConflict runs when the database refused a booking the ledger
// accepted, which means another writer got there first. If the court already
// holds a stored reservation in the interval the slot is reported as taken.
func (s *Service) storageConflict(ctx context.Context, courtID int64, want domain.Interval, cause error) error {
	stored, err := s.bookings.ReservationsOnCourt(ctx, courtID, want.Start, want.End())
	if err != nil {
		log.Printf("booking: recheck court=%d error=%v", courtID, err)
		return fmt.Errorf("persist booking: %w", cause)
	}
	if len(stored) > 0 {
		log.Printf("booking: court=%d taken in storage by reservation=%d", courtID, stored[0].ID)
		return &domain.TimeUnavailableError{Resource: domain.ResourceCourt, ResourceID: courtID, Interval: want}
	}
	return fmt.Errorf("persist booking: %w", cause)
}

// CreateReservation runs the reservation factory and stores the result. The
// availability check and the insert happen under one session lock, so two
// requests for the same slot cannot both pass the check.
func (s *Service) CreateReservation(ctx context.Context, req CreateReservationRequest) (*domain.Reservation, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}

	var out domain.Reservation
	err := s.session.Update(func(l *domain.Ledger) error {
		r, err := l.MakeReservation(domain.ReservationRequest{
			Start:         req.StartTime,
			Duration:      time.Duration(req.DurationMinutes) * time.Minute,
			CourtID:       req.CourtID,
			ClientID:      req.ClientID,
			ParticipantID: req.ParticipantID,
			EquipmentID:   req.EquipmentID,
		})
		if err != nil {
			return err
		}
		if err := s.bookings.CreateReservation(ctx, r); err != nil {
			l.DiscardReservation(r.ID)
			if errors.Is(err, repository.ErrConflict) {
				return s.storageConflict(ctx, r.CourtID, r.Interval(), err)
			}
			return fmt.Errorf("persist reservation: %w", err)
		}
		out = *r
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("reservation created id=%d court=%d client=%d participant=%d start=%s",
		out.ID, out.CourtID, out.ClientID, out.ParticipantID, out.Start.Format(time.RFC3339))
	if s.notifs != nil {
		_ = s.notifs.NotifyReservationCreated(ctx, &out)
	}
	return &out, nil
}

func (s *Service) CreateTraining(ctx context.Context, req CreateTrainingRequest) (*domain.Training, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}

	var out *domain.Training
	err := s.session.Update(func(l *domain.Ledger) error {
		t, err := l.MakeTraining(domain.TrainingRequest{
			Start:          req.StartTime,
			Duration:       time.Duration(req.DurationMinutes) * time.Minute,
			TrainerID:      req.TrainerID,
			CourtID:        req.CourtID,
			ClientIDs:      req.ClientIDs,
			ParticipantIDs: req.ParticipantIDs,
			EquipmentIDs:   req.EquipmentIDs,
		})
		if err != nil {
			return err
		}
		if err := s.bookings.CreateTraining(ctx, t); err != nil {
			l.DiscardTraining(t.ID)
			if errors.Is(err, repository.ErrConflict) {
				return s.storageConflict(ctx, t.CourtID, t.Interval(), err)
			}
			return fmt.Errorf("persist training: %w", err)
		}
		out = t.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("training created id=%d trainer=%d court=%d start=%s",
		out.ID, out.TrainerID, out.CourtID, out.Start.Format(time.RFC3339))
	if s.notifs != nil {
		_ = s.notifs.NotifyTrainingCreated(ctx, out)
	}
	return out, nil
}

// UpdateReservationPeople moves a reservation to another client and/or
// participant. Both changes are stored together or not at all.
func (s *Service) UpdateReservationPeople(ctx context.Context, id int64, req UpdateReservationPeopleRequest) (*domain.Reservation, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}

	var out domain.Reservation
	err := s.session.Update(func(l *domain.Ledger) error {
		r, err := l.Reservation(id)
		if err != nil {
			return err
		}
		prev := *r

		changed := false
		if req.ClientID != nil {
			c, err := l.AddReservationBought(*req.ClientID, id)
			if err != nil {
				return err
			}
			changed = changed || c
		}
		if req.ParticipantID != nil {
			c, err := l.AddReservation(*req.ParticipantID, id)
			if err != nil {
				*r = prev
				return err
			}
			changed = changed || c
		}
		if changed {
			if err := s.bookings.UpdateReservationPeople(ctx, r); err != nil {
				*r = prev
				return fmt.Errorf("persist reservation: %w", err)
			}
		}
		out = *r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AddTrainingMember attaches a client or participant to a training.
func (s *Service) AddTrainingMember(ctx context.Context, trainingID int64, req AddTrainingMemberRequest) (*domain.Training, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}
	return s.updateTraining(ctx, trainingID, func(l *domain.Ledger) (bool, error) {
		return l.AddTraining(req.Side, req.PersonID, trainingID)
	})
}

func (s *Service) AddTrainingEquipment(ctx context.Context, trainingID int64, req AddTrainingEquipmentRequest) (*domain.Training, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}
	return s.updateTraining(ctx, trainingID, func(l *domain.Ledger) (bool, error) {
		return l.AddTrainingEquipment(trainingID, req.EquipmentID)
	})
}

func (s *Service) updateTraining(ctx context.Context, id int64, change func(l *domain.Ledger) (bool, error)) (*domain.Training, error) {
	var out *domain.Training
	err := s.session.Update(func(l *domain.Ledger) error {
		t, err := l.Training(id)
		if err != nil {
			return err
		}
		prev := t.Clone()

		changed, err := change(l)
		if err != nil {
			return err
		}
		if changed {
			if err := s.bookings.ReplaceTrainingLinks(ctx, t); err != nil {
				l.Restore(nil, []*domain.Training{prev})
				return fmt.Errorf("persist training: %w", err)
			}
		}
		out = t.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) GetReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	var out domain.Reservation
	err := s.session.View(func(l *domain.Ledger) error {
		r, err := l.Reservation(id)
		if err != nil {
			return err
		}
		out = *r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) GetTraining(ctx context.Context, id int64) (*domain.Training, error) {
	var out *domain.Training
	err := s.session.View(func(l *domain.Ledger) error {
		t, err := l.Training(id)
		if err != nil {
			return err
		}
		out = t.Clone()
		return nil
	})
	return out, err
}

func (s *Service) ReservationPrice(ctx context.Context, id int64) (float64, error) {
	var price float64
	err := s.session.View(func(l *domain.Ledger) error {
		var err error
		price, err = l.ReservationPrice(id)
		return err
	})
	return price, err
}

func (s *Service) TrainingPrice(ctx context.Context, id int64) (float64, error) {
	var price float64
	err := s.session.View(func(l *domain.Ledger) error {
		var err error
		price, err = l.TrainingPrice(id)
		return err
	})
	return price, err
}

// PayReservation always fails: payments are handled elsewhere.
func (s *Service) PayReservation(ctx context.Context, id int64) error {
	return s.session.View(func(l *domain.Ledger) error {
		if _, err := l.Reservation(id); err != nil {
			return err
		}
		return l.Pay(id)
	})
}

// CancelReservation always fails: bookings cannot be cancelled.
func (s *Service) CancelReservation(ctx context.Context, id int64) error {
	return s.session.View(func(l *domain.Ledger) error {
		if _, err := l.Reservation(id); err != nil {
			return err
		}
		return l.Cancel(id)
	})
}

func (s *Service) PersonBookings(ctx context.Context, personID int64) (*PersonBookings, error) {
	out := &PersonBookings{PersonID: personID}
	err := s.session.View(func(l *domain.Ledger) error {
		if _, err := l.Person(personID); err != nil {
			return err
		}
		out.ReservationsBought = reservationResponses(l.ReservationsBoughtBy(personID))
		out.Reservations = reservationResponses(l.ReservationsOf(personID))
		out.TrainingsBought = trainingResponses(l.TrainingsBoughtBy(personID))
		out.Trainings = trainingResponses(l.TrainingsOf(personID))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func reservationResponses(in []*domain.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(in))
	for _, r := range in {
		cp := *r
		out = append(out, toReservationResponse(&cp))
	}
	return out
}

func trainingResponses(in []*domain.Training) []TrainingResponse {
	out := make([]TrainingResponse, 0, len(in))
	for _, t := range in {
		out = append(out, toTrainingResponse(t.Clone()))
	}
	return out
}
