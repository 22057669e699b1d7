package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenniscourt/internal/domain"
)

type fakeSource struct {
	facility     *domain.FacilityConfig
	people       []*domain.Person
	courts       []*domain.Court
	trainers     []*domain.Trainer
	equipment    []*domain.Equipment
	reservations []*domain.Reservation
	trainings    []*domain.Training
	err          error
}

func (f *fakeSource) GetFacility(ctx context.Context) (*domain.FacilityConfig, error) {
	if f.facility == nil {
		return nil, domain.ErrNotFound
	}
	return f.facility, nil
}

func (f *fakeSource) ListPeople(ctx context.Context) ([]*domain.Person, error) {
	return f.people, f.err
}

func (f *fakeSource) ListCourts(ctx context.Context) ([]*domain.Court, error) {
	return f.courts, nil
}

func (f *fakeSource) ListTrainers(ctx context.Context) ([]*domain.Trainer, error) {
	return f.trainers, nil
}

func (f *fakeSource) ListEquipment(ctx context.Context) ([]*domain.Equipment, error) {
	return f.equipment, nil
}

func (f *fakeSource) ListReservations(ctx context.Context) ([]*domain.Reservation, error) {
	return f.reservations, nil
}

func (f *fakeSource) ListTrainings(ctx context.Context) ([]*domain.Training, error) {
	return f.trainings, nil
}

func ptr(v int64) *int64 { return &v }

func TestLoad_OwnersBeforeDependents(t *testing.T) {
	start := time.Date(2026, 6, 6, 10, 0, 0, 0, time.UTC)
	src := &fakeSource{
		// participant listed before its owner
		people: []*domain.Person{
			{ID: 2, Name: "Kid", Roles: domain.Roles(domain.RoleParticipant), OwningClientID: ptr(1)},
			{ID: 1, Name: "Anna", Roles: domain.Roles(domain.RoleClient)},
		},
		courts: []*domain.Court{{ID: 1, Number: 1, Surface: domain.SurfaceHard, Kind: domain.CourtRoofed}},
		reservations: []*domain.Reservation{
			{ID: 5, Start: start, Duration: time.Hour, CourtID: 1, ClientID: 1, ParticipantID: 2},
		},
	}

	s, err := Load(context.Background(), src, domain.DefaultFacilityConfig())
	require.NoError(t, err)

	err = s.View(func(l *domain.Ledger) error {
		kids := l.ParticipantsOf(1)
		require.Len(t, kids, 1)
		assert.Equal(t, int64(2), kids[0].ID)

		ok, err := l.CourtAvailable(1, start.Add(30*time.Minute), time.Hour)
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)

	// ids continue after the restored bookings
	err = s.Update(func(l *domain.Ledger) error {
		r, err := l.MakeReservation(domain.ReservationRequest{
			Start: start.Add(time.Hour), Duration: time.Hour, CourtID: 1, ClientID: 1, ParticipantID: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(6), r.ID)
		return nil
	})
	require.NoError(t, err)
}

func TestLoad_MissingOwner(t *testing.T) {
	src := &fakeSource{
		people: []*domain.Person{
			{ID: 2, Name: "Kid", Roles: domain.Roles(domain.RoleParticipant), OwningClientID: ptr(9)},
		},
	}

	_, err := Load(context.Background(), src, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoad_SourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Load(context.Background(), &fakeSource{err: boom}, nil)
	assert.ErrorIs(t, err, boom)
}

func TestLoad_StoredFacilityWins(t *testing.T) {
	stored := &domain.FacilityConfig{OpenTime: "08:00", CloseTime: "20:00"}
	s, err := Load(context.Background(), &fakeSource{facility: stored}, domain.DefaultFacilityConfig())
	require.NoError(t, err)

	_ = s.View(func(l *domain.Ledger) error {
		assert.Equal(t, "20:00", l.Facility().CloseTime)
		return nil
	})
}

func TestUpdate_SerializesCheckThenInsert(t *testing.T) {
	l := domain.NewLedger(nil)
	client, err := domain.NewClientParticipant(1, "Anna")
	require.NoError(t, err)
	require.NoError(t, l.AddPerson(client))
	require.NoError(t, l.AddCourt(&domain.Court{ID: 1, Number: 1, Surface: domain.SurfaceClay, Kind: domain.CourtRoofed}))
	s := New(l)

	start := time.Date(2026, 6, 6, 10, 0, 0, 0, time.UTC)
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Update(func(l *domain.Ledger) error {
				_, err := l.MakeReservation(domain.ReservationRequest{
					Start: start, Duration: time.Hour, CourtID: 1, ClientID: 1, ParticipantID: 1,
				})
				return err
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}
