// Package session holds the one booking graph the process works on and
// serializes every read and write against it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"tenniscourt/internal/domain"
)

// Source is what a session is loaded from.
type Source interface {
	GetFacility(ctx context.Context) (*domain.FacilityConfig, error)
	ListPeople(ctx context.Context) ([]*domain.Person, error)
	ListCourts(ctx context.Context) ([]*domain.Court, error)
	ListTrainers(ctx context.Context) ([]*domain.Trainer, error)
	ListEquipment(ctx context.Context) ([]*domain.Equipment, error)
	ListReservations(ctx context.Context) ([]*domain.Reservation, error)
	ListTrainings(ctx context.Context) ([]*domain.Training, error)
}

type Session struct {
	mu     sync.RWMutex
	ledger *domain.Ledger
}

func New(ledger *domain.Ledger) *Session {
	return &Session{ledger: ledger}
}

// Load builds a session from persisted state. fallback is used when no
// facility configuration has been stored.
func Load(ctx context.Context, src Source, fallback *domain.FacilityConfig) (*Session, error) {
	facility, err := src.GetFacility(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		facility = fallback
	} else if err != nil {
		return nil, err
	}

	l := domain.NewLedger(facility)

	people, err := src.ListPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("load people: %w", err)
	}
	// Owners go in before the people they own.
	pending := people
	for len(pending) > 0 {
		var next []*domain.Person
		for _, p := range pending {
			if p.OwningClientID != nil {
				if _, err := l.Person(*p.OwningClientID); err != nil {
					next = append(next, p)
					continue
				}
			}
			if err := l.AddPerson(p); err != nil {
				return nil, fmt.Errorf("load person %d: %w", p.ID, err)
			}
		}
		if len(next) == len(pending) {
			return nil, fmt.Errorf("load person %d: owning client %d: %w", next[0].ID, *next[0].OwningClientID, domain.ErrNotFound)
		}
		pending = next
	}

	courts, err := src.ListCourts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load courts: %w", err)
	}
	for _, c := range courts {
		if err := l.AddCourt(c); err != nil {
			return nil, fmt.Errorf("load court %d: %w", c.ID, err)
		}
	}

	trainers, err := src.ListTrainers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load trainers: %w", err)
	}
	for _, t := range trainers {
		if err := l.AddTrainer(t); err != nil {
			return nil, fmt.Errorf("load trainer %d: %w", t.ID, err)
		}
	}

	equipment, err := src.ListEquipment(ctx)
	if err != nil {
		return nil, fmt.Errorf("load equipment: %w", err)
	}
	for _, e := range equipment {
		if err := l.AddEquipment(e); err != nil {
			return nil, fmt.Errorf("load equipment %d: %w", e.ID, err)
		}
	}

	reservations, err := src.ListReservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}
	trainings, err := src.ListTrainings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load trainings: %w", err)
	}
	l.Restore(reservations, trainings)

	log.Printf("session loaded: people=%d courts=%d trainers=%d equipment=%d reservations=%d trainings=%d",
		len(people), len(courts), len(trainers), len(equipment), len(reservations), len(trainings))

	return New(l), nil
}

// View runs fn with shared access. fn must not modify the ledger.
func (s *Session) View(fn func(l *domain.Ledger) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.ledger)
}

// Update runs fn with exclusive access. Availability checks and the insert
// that depends on them must happen inside the same Update call.
func (s *Session) Update(fn func(l *domain.Ledger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.ledger)
}
