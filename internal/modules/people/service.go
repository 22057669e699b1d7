package people

import (
	"context"
	"fmt"
	"log"

	"tenniscourt/internal/domain"
	"tenniscourt/internal/pkg/validator"
	"tenniscourt/internal/session"
)

// PersonRepository persists people and their owning client link.
type PersonRepository interface {
	CreatePerson(ctx context.Context, p *domain.Person) error
	UpdateOwningClient(ctx context.Context, personID int64, clientID *int64) error
}

type Service struct {
	session *session.Session
	repo    PersonRepository
}

func NewService(s *session.Session, repo PersonRepository) *Service {
	return &Service{session: s, repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreatePersonRequest) (*PersonResponse, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, errs)
	}
	roles, err := domain.ParseRoles(req.Roles)
	if err != nil {
		return nil, err
	}
	p, err := domain.NewPerson(0, req.Name, roles, req.OwningClientID)
	if err != nil {
		return nil, err
	}
	p.Email = req.Email
	p.Phone = req.Phone

	var out *PersonResponse
	err = s.session.Update(func(l *domain.Ledger) error {
		// Check the owner before anything is written.
		if p.OwningClientID != nil {
			owner, err := l.Person(*p.OwningClientID)
			if err != nil {
				return err
			}
			if !owner.IsClient() {
				return &domain.RoleMismatchError{Side: domain.SideClient, PersonID: owner.ID, Required: domain.RoleClient}
			}
		}
		if err := s.repo.CreatePerson(ctx, p); err != nil {
			return err
		}
		if err := l.AddPerson(p); err != nil {
			return err
		}
		out = toResponse(l, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("person created id=%d roles=%v", p.ID, p.Roles.List())
	return out, nil
}

func (s *Service) List(ctx context.Context) ([]PersonResponse, error) {
	out := []PersonResponse{}
	err := s.session.View(func(l *domain.Ledger) error {
		for _, p := range l.People() {
			out = append(out, *toResponse(l, p))
		}
		return nil
	})
	return out, err
}

func (s *Service) Get(ctx context.Context, id int64) (*PersonResponse, error) {
	var out *PersonResponse
	err := s.session.View(func(l *domain.Ledger) error {
		p, err := l.Person(id)
		if err != nil {
			return err
		}
		out = toResponse(l, p)
		return nil
	})
	return out, err
}

// SetOwner makes clientID the owning client of personID.
func (s *Service) SetOwner(ctx context.Context, personID int64, req SetOwnerRequest) (*PersonResponse, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, errs)
	}

	var out *PersonResponse
	err := s.session.Update(func(l *domain.Ledger) error {
		p, err := l.Person(personID)
		if err != nil {
			return err
		}
		prev := p.OwningClientID

		changed, err := l.SetOwningClient(personID, req.ClientID)
		if err != nil {
			return err
		}
		if changed {
			if err := s.repo.UpdateOwningClient(ctx, personID, p.OwningClientID); err != nil {
				p.OwningClientID = prev
				return fmt.Errorf("persist owner: %w", err)
			}
		}
		out = toResponse(l, p)
		return nil
	})
	return out, err
}

// RemoveOwner unlinks a person from their owning client. People who can
// only participate must keep an owner.
func (s *Service) RemoveOwner(ctx context.Context, personID int64) (*PersonResponse, error) {
	var out *PersonResponse
	err := s.session.Update(func(l *domain.Ledger) error {
		p, err := l.Person(personID)
		if err != nil {
			return err
		}
		if p.OwningClientID == nil {
			return fmt.Errorf("person %d: %w", personID, ErrNoOwner)
		}
		prev := *p.OwningClientID

		if _, err := l.RemoveParticipant(prev, personID); err != nil {
			return err
		}
		if err := s.repo.UpdateOwningClient(ctx, personID, nil); err != nil {
			p.OwningClientID = &prev
			return fmt.Errorf("persist owner: %w", err)
		}
		out = toResponse(l, p)
		return nil
	})
	return out, err
}

// Total is what a client owes for every booking they paid for.
func (s *Service) Total(ctx context.Context, clientID int64) (*TotalResponse, error) {
	var total float64
	err := s.session.View(func(l *domain.Ledger) error {
		var err error
		total, err = l.ClientTotal(clientID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &TotalResponse{ClientID: clientID, Total: total}, nil
}

func toResponse(l *domain.Ledger, p *domain.Person) *PersonResponse {
	cp := *p
	out := &PersonResponse{Person: &cp, Participants: []int64{}}
	if p.IsClient() {
		for _, kid := range l.ParticipantsOf(p.ID) {
			out.Participants = append(out.Participants, kid.ID)
		}
	}
	return out
}
