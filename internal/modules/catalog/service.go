package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tenniscourt/internal/domain"
	"tenniscourt/internal/pkg/validator"
	"tenniscourt/internal/session"
)

var ErrValidation = errors.New("validation error")

// CatalogRepository persists courts, trainers and equipment.
type CatalogRepository interface {
	CreateCourt(ctx context.Context, c *domain.Court) error
	CreateTrainer(ctx context.Context, t *domain.Trainer) error
	UpdateWorkingHours(ctx context.Context, trainerID int64, hours []domain.WorkingHours) error
	CreateEquipment(ctx context.Context, e *domain.Equipment) error
}

type Service struct {
	session *session.Session
	repo    CatalogRepository
}

func NewService(s *session.Session, repo CatalogRepository) *Service {
	return &Service{session: s, repo: repo}
}

/* ---------- COURTS ---------- */

func (s *Service) ListCourts(ctx context.Context) ([]domain.Court, error) {
	out := []domain.Court{}
	err := s.session.View(func(l *domain.Ledger) error {
		for _, c := range l.Courts() {
			out = append(out, *c)
		}
		return nil
	})
	return out, err
}

func (s *Service) CreateCourt(ctx context.Context, req CreateCourtRequest) (*domain.Court, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}

	var out domain.Court
	err := s.session.Update(func(l *domain.Ledger) error {
		for _, c := range l.Courts() {
			if c.Number == req.Number {
				return fmt.Errorf("%w: %d", domain.ErrDuplicateCourt, req.Number)
			}
		}
		c := &domain.Court{Number: req.Number, Surface: req.Surface, Kind: req.Kind}
		if err := s.repo.CreateCourt(ctx, c); err != nil {
			return err
		}
		if err := l.AddCourt(c); err != nil {
			return err
		}
		out = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("court created id=%d number=%d kind=%s", out.ID, out.Number, out.Kind)
	return &out, nil
}

// CourtAvailability answers whether the court can be booked for
// [from, from+d).
func (s *Service) CourtAvailability(ctx context.Context, courtID int64, from time.Time, d time.Duration) (*AvailabilityResponse, error) {
	if d <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", domain.ErrInvalidInterval)
	}
	var ok, open bool
	err := s.session.View(func(l *domain.Ledger) error {
		var err error
		ok, err = l.CourtAvailable(courtID, from, d)
		open = l.Facility().IsOpen(from, d)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &AvailabilityResponse{ResourceID: courtID, From: from, Until: from.Add(d), Available: ok, FacilityOpen: open}, nil
}

func (s *Service) CourtSlots(ctx context.Context, courtID int64, day time.Time) (*SlotsResponse, error) {
	var free []domain.Interval
	err := s.session.View(func(l *domain.Ledger) error {
		var err error
		free, err = l.CourtSlots(courtID, day)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &SlotsResponse{ResourceID: courtID, Date: day.Format("2006-01-02"), Free: toTimeSlots(free)}, nil
}

/* ---------- TRAINERS ---------- */

func (s *Service) ListTrainers(ctx context.Context) ([]domain.Trainer, error) {
	out := []domain.Trainer{}
	err := s.session.View(func(l *domain.Ledger) error {
		for _, t := range l.Trainers() {
			out = append(out, *t)
		}
		return nil
	})
	return out, err
}

func (s *Service) CreateTrainer(ctx context.Context, req CreateTrainerRequest) (*domain.Trainer, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}
	if err := checkWorkingHours(req.WorkingHours); err != nil {
		return nil, err
	}

	var out domain.Trainer
	err := s.session.Update(func(l *domain.Ledger) error {
		t := &domain.Trainer{
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			Tier:         req.Tier,
			WorkingHours: req.WorkingHours,
		}
		if err := s.repo.CreateTrainer(ctx, t); err != nil {
			return err
		}
		if err := l.AddTrainer(t); err != nil {
			return err
		}
		out = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("trainer created id=%d tier=%s", out.ID, out.Tier)
	return &out, nil
}

// UpdateWorkingHours replaces a trainer's weekly schedule. Trainings already
// booked are kept even if they now fall outside the schedule.
func (s *Service) UpdateWorkingHours(ctx context.Context, trainerID int64, req UpdateWorkingHoursRequest) (*domain.Trainer, error) {
	if err := checkWorkingHours(req.WorkingHours); err != nil {
		return nil, err
	}

	var out domain.Trainer
	err := s.session.Update(func(l *domain.Ledger) error {
		t, err := l.Trainer(trainerID)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateWorkingHours(ctx, trainerID, req.WorkingHours); err != nil {
			return err
		}
		t.WorkingHours = req.WorkingHours
		out = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) TrainerAvailability(ctx context.Context, trainerID int64, from time.Time, d time.Duration) (*AvailabilityResponse, error) {
	if d <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", domain.ErrInvalidInterval)
	}
	var ok, open bool
	err := s.session.View(func(l *domain.Ledger) error {
		var err error
		ok, err = l.TrainerAvailable(trainerID, from, d)
		open = l.Facility().IsOpen(from, d)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &AvailabilityResponse{ResourceID: trainerID, From: from, Until: from.Add(d), Available: ok, FacilityOpen: open}, nil
}

func (s *Service) TrainerSlots(ctx context.Context, trainerID int64, day time.Time) (*SlotsResponse, error) {
	var free []domain.Interval
	err := s.session.View(func(l *domain.Ledger) error {
		var err error
		free, err = l.TrainerSlots(trainerID, day)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &SlotsResponse{ResourceID: trainerID, Date: day.Format("2006-01-02"), Free: toTimeSlots(free)}, nil
}

func checkWorkingHours(hours []domain.WorkingHours) error {
	seen := make(map[int]bool, len(hours))
	for _, wh := range hours {
		if wh.DayOfWeek < 0 || wh.DayOfWeek > 6 {
			return fmt.Errorf("%w: day_of_week %d out of range", ErrValidation, wh.DayOfWeek)
		}
		if seen[wh.DayOfWeek] {
			return fmt.Errorf("%w: day_of_week %d listed twice", ErrValidation, wh.DayOfWeek)
		}
		seen[wh.DayOfWeek] = true
		if wh.IsClosed {
			continue
		}
		if _, err := wh.Window(time.Now()); err != nil {
			return fmt.Errorf("%w: day_of_week %d: %v", ErrValidation, wh.DayOfWeek, err)
		}
	}
	return nil
}

/* ---------- EQUIPMENT ---------- */

func (s *Service) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	out := []domain.Equipment{}
	err := s.session.View(func(l *domain.Ledger) error {
		for _, e := range l.EquipmentList() {
			out = append(out, *e)
		}
		return nil
	})
	return out, err
}

func (s *Service) CreateEquipment(ctx context.Context, req CreateEquipmentRequest) (*domain.Equipment, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}

	var out domain.Equipment
	err := s.session.Update(func(l *domain.Ledger) error {
		e := &domain.Equipment{Name: req.Name, Kind: req.Kind, Brand: req.Brand}
		if err := s.repo.CreateEquipment(ctx, e); err != nil {
			return err
		}
		if err := l.AddEquipment(e); err != nil {
			return err
		}
		out = *e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FreeEquipment lists equipment of kind that no booking holds during
// [from, from+d). An empty kind matches everything.
func (s *Service) FreeEquipment(ctx context.Context, kind domain.EquipmentKind, from time.Time, d time.Duration) ([]domain.Equipment, error) {
	if kind != "" && !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown equipment kind %q", ErrValidation, kind)
	}
	if d <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", domain.ErrInvalidInterval)
	}
	out := []domain.Equipment{}
	err := s.session.View(func(l *domain.Ledger) error {
		for _, e := range l.FindFreeEquipment(kind, from, d) {
			out = append(out, *e)
		}
		return nil
	})
	return out, err
}
