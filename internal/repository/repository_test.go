package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenniscourt/internal/database"
	"tenniscourt/internal/domain"
)

func setupStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:repo_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn, database.Options{Quiet: true})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return NewStore(db)
}

func TestPersonRepository_OwningClient(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	client := &domain.Person{Name: "Anna", Email: "anna@club.test", Roles: domain.Roles(domain.RoleClient)}
	require.NoError(t, s.CreatePerson(ctx, client))
	require.NotZero(t, client.ID)

	kid := &domain.Person{Name: "Kid", Roles: domain.Roles(domain.RoleParticipant), OwningClientID: &client.ID}
	require.NoError(t, s.CreatePerson(ctx, kid))

	got, err := s.GetPerson(ctx, kid.ID)
	require.NoError(t, err)
	assert.True(t, got.IsParticipant())
	assert.False(t, got.IsClient())
	require.NotNil(t, got.OwningClientID)
	assert.Equal(t, client.ID, *got.OwningClientID)

	require.NoError(t, s.UpdateOwningClient(ctx, kid.ID, nil))
	got, err = s.GetPerson(ctx, kid.ID)
	require.NoError(t, err)
	assert.Nil(t, got.OwningClientID)

	assert.ErrorIs(t, s.UpdateOwningClient(ctx, 999, nil), domain.ErrNotFound)

	_, err = s.GetPerson(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogRepository(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	require.NoError(t, s.CreateCourt(ctx, &domain.Court{Number: 2, Surface: domain.SurfaceClay, Kind: domain.CourtUnroofed}))
	require.NoError(t, s.CreateCourt(ctx, &domain.Court{Number: 1, Surface: domain.SurfaceHard, Kind: domain.CourtRoofed}))
	err := s.CreateCourt(ctx, &domain.Court{Number: 1, Surface: domain.SurfaceHard, Kind: domain.CourtRoofed})
	assert.ErrorIs(t, err, domain.ErrDuplicateCourt)

	courts, err := s.ListCourts(ctx)
	require.NoError(t, err)
	require.Len(t, courts, 2)
	assert.Equal(t, 1, courts[0].Number)
	assert.Equal(t, domain.CourtUnroofed, courts[1].Kind)

	trainer := &domain.Trainer{
		Name: "Coach",
		Tier: domain.TierMaster,
		WorkingHours: []domain.WorkingHours{
			{DayOfWeek: 6, OpenTime: "09:00", CloseTime: "17:00"},
		},
	}
	require.NoError(t, s.CreateTrainer(ctx, trainer))
	require.NoError(t, s.UpdateWorkingHours(ctx, trainer.ID, []domain.WorkingHours{
		{DayOfWeek: 1, OpenTime: "08:00", CloseTime: "12:00"},
	}))

	trainers, err := s.ListTrainers(ctx)
	require.NoError(t, err)
	require.Len(t, trainers, 1)
	assert.Equal(t, domain.TierMaster, trainers[0].Tier)
	assert.Equal(t, []domain.WorkingHours{{DayOfWeek: 1, OpenTime: "08:00", CloseTime: "12:00"}}, trainers[0].WorkingHours)

	require.NoError(t, s.CreateEquipment(ctx, &domain.Equipment{Name: "Racket", Kind: domain.EquipmentRacket}))
	eq, err := s.ListEquipment(ctx)
	require.NoError(t, err)
	require.Len(t, eq, 1)
	assert.Equal(t, domain.EquipmentRacket, eq[0].Kind)
}

func TestBookingRepository_TrainingRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	start := time.Date(2026, 6, 6, 10, 0, 0, 0, time.UTC)
	tr := &domain.Training{
		ID: 7, Start: start, Duration: 90 * time.Minute,
		TrainerID: 1, CourtID: 1,
		ClientIDs: []int64{1}, ParticipantIDs: []int64{2, 3}, EquipmentIDs: []int64{4},
		CreatedAt: start.Add(-time.Hour),
	}
	require.NoError(t, s.CreateTraining(ctx, tr))

	tr.ParticipantIDs = []int64{2}
	tr.EquipmentIDs = nil
	require.NoError(t, s.ReplaceTrainingLinks(ctx, tr))

	list, err := s.ListTrainings(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0]
	assert.Equal(t, int64(7), got.ID)
	assert.True(t, got.Start.Equal(start))
	assert.Equal(t, 90*time.Minute, got.Duration)
	assert.Equal(t, []int64{1}, got.ClientIDs)
	assert.Equal(t, []int64{2}, got.ParticipantIDs)
	assert.Empty(t, got.EquipmentIDs)

	assert.ErrorIs(t, s.ReplaceTrainingLinks(ctx, &domain.Training{ID: 99}), domain.ErrNotFound)
}

func TestBookingRepository_Reservations(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	start := time.Date(2026, 6, 6, 10, 0, 0, 0, time.UTC)
	r := &domain.Reservation{ID: 1, Start: start, Duration: time.Hour, CourtID: 1, ClientID: 1, ParticipantID: 2}
	require.NoError(t, s.CreateReservation(ctx, r))
	assert.ErrorIs(t, s.CreateReservation(ctx, r), ErrConflict)

	r.ParticipantID = 3
	require.NoError(t, s.UpdateReservationPeople(ctx, r))

	onCourt, err := s.ReservationsOnCourt(ctx, 1, start.Add(30*time.Minute), start.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, onCourt, 1)
	assert.Equal(t, int64(3), onCourt[0].ParticipantID)

	onCourt, err = s.ReservationsOnCourt(ctx, 1, start.Add(time.Hour), start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, onCourt, "touching intervals do not overlap")
}

func TestFacilityRepository(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	_, err := s.GetFacility(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cfg := &domain.FacilityConfig{
		OpenTime:  "08:00",
		CloseTime: "21:00",
		Seasons: []domain.Season{{
			CourtKind:     domain.CourtUnroofed,
			Window:        domain.SeasonWindow{Start: domain.MonthDay{Month: time.May, Day: 1}, End: domain.MonthDay{Month: time.August, Day: 31}},
			InSeasonRate:  30,
			OffSeasonRate: 20,
		}},
	}
	require.NoError(t, s.SaveFacility(ctx, cfg))
	cfg.CloseTime = "22:00"
	require.NoError(t, s.SaveFacility(ctx, cfg))

	got, err := s.GetFacility(ctx)
	require.NoError(t, err)
	assert.Equal(t, "22:00", got.CloseTime)
	require.Len(t, got.Seasons, 1)
	assert.Equal(t, 30.0, got.Seasons[0].InSeasonRate)
}
