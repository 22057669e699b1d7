package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPerson_Validation(t *testing.T) {
	_, err := NewPerson(1, "  ", Roles(RoleClient), nil)
	assert.ErrorIs(t, err, ErrInvalidPerson)

	_, err = NewPerson(1, "No Roles", 0, nil)
	assert.ErrorIs(t, err, ErrInvalidPerson)

	_, err = NewPerson(1, "Orphan", Roles(RoleParticipant), nil)
	assert.ErrorIs(t, err, ErrInvalidPerson)

	participant, err := NewParticipant(2, "Kid", &Person{ID: 1, Name: "P", Roles: Roles(RoleParticipant)})
	assert.ErrorIs(t, err, ErrRoleMismatch)
	assert.Nil(t, participant)

	roles, err := ParseRoles([]string{"Client", "participant"})
	require.NoError(t, err)
	assert.True(t, roles.Has(RoleClient))
	assert.True(t, roles.Has(RoleParticipant))
	assert.Equal(t, []string{"client", "participant"}, roles.List())

	_, err = ParseRoles([]string{"coach"})
	assert.ErrorIs(t, err, ErrInvalidPerson)
}

func TestSetOwningClient(t *testing.T) {
	f := newFixture(t)
	other, err := NewClient(10, "Other Client")
	require.NoError(t, err)
	require.NoError(t, f.ledger.AddPerson(other))

	changed, err := f.ledger.SetOwningClient(f.participant.ID, f.client.ID)
	require.NoError(t, err)
	assert.False(t, changed, "already linked")

	changed, err = f.ledger.AddParticipant(other.ID, f.participant.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, other.ID, *f.participant.OwningClientID)
	assert.Empty(t, f.ledger.ParticipantsOf(f.client.ID))
	assert.Equal(t, []*Person{f.participant}, f.ledger.ParticipantsOf(other.ID))

	_, err = f.ledger.SetOwningClient(f.client.ID, other.ID)
	var rm *RoleMismatchError
	require.ErrorAs(t, err, &rm)
	assert.Equal(t, SideParticipant, rm.Side)

	_, err = f.ledger.SetOwningClient(f.participant.ID, f.participant.ID)
	require.ErrorAs(t, err, &rm)
	assert.Equal(t, SideClient, rm.Side)
}

func TestRemoveParticipant(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.RemoveParticipant(f.client.ID, f.participant.ID)
	assert.ErrorIs(t, err, ErrRoleMismatch, "participant-only person keeps an owner")
	assert.NotNil(t, f.participant.OwningClientID)

	changed, err := f.ledger.AddParticipant(f.client.ID, f.both.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = f.ledger.RemoveParticipant(f.client.ID, f.both.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Nil(t, f.both.OwningClientID)

	changed, err = f.ledger.RemoveParticipant(f.client.ID, f.both.ID)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestBookingLinks(t *testing.T) {
	f := newFixture(t)
	r, err := f.ledger.MakeReservation(ReservationRequest{
		Start: saturday(12, 0), Duration: time.Hour,
		CourtID: f.roofed.ID, ClientID: f.client.ID, ParticipantID: f.participant.ID,
	})
	require.NoError(t, err)

	changed, err := f.ledger.AddReservationBought(f.client.ID, r.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = f.ledger.AddReservationBought(f.participant.ID, r.ID)
	assert.ErrorIs(t, err, ErrRoleMismatch)

	changed, err = f.ledger.AddReservation(f.both.ID, r.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, f.ledger.ReservationsOf(f.participant.ID))
	assert.Equal(t, []*Reservation{r}, f.ledger.ReservationsOf(f.both.ID))

	tr, err := f.ledger.MakeTraining(TrainingRequest{
		Start: saturday(14, 0), Duration: time.Hour,
		TrainerID: f.trainer.ID, CourtID: f.roofed.ID,
		ClientIDs: []int64{f.client.ID}, ParticipantIDs: []int64{f.participant.ID},
	})
	require.NoError(t, err)

	changed, err = f.ledger.AddTraining(SideClient, f.both.ID, tr.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []*Training{tr}, f.ledger.TrainingsBoughtBy(f.both.ID))

	changed, err = f.ledger.AddTraining(SideParticipant, f.participant.ID, tr.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = f.ledger.AddTraining(SideClient, f.participant.ID, tr.ID)
	assert.ErrorIs(t, err, ErrRoleMismatch)

	changed, err = f.ledger.AddTrainingEquipment(tr.ID, f.racket.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	ok, err := f.ledger.EquipmentAvailable(f.racket.ID, saturday(14, 30), time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddTrainingEquipment(t *testing.T) {
	f := newFixture(t)
	tr, err := f.ledger.MakeTraining(TrainingRequest{
		Start: saturday(14, 0), Duration: time.Hour,
		TrainerID: f.trainer.ID, CourtID: f.roofed.ID,
		ClientIDs: []int64{f.client.ID}, ParticipantIDs: []int64{f.participant.ID},
	})
	require.NoError(t, err)

	// the racket is out on a reservation that overlaps the training
	_, err = f.ledger.MakeReservation(ReservationRequest{
		Start: saturday(14, 30), Duration: time.Hour,
		CourtID: f.unroofed.ID, ClientID: f.client.ID, ParticipantID: f.participant.ID,
		EquipmentID: &f.racket.ID,
	})
	require.NoError(t, err)

	_, err = f.ledger.AddTrainingEquipment(tr.ID, f.racket.ID)
	var tu *TimeUnavailableError
	require.ErrorAs(t, err, &tu)
	assert.Equal(t, ResourceEquipment, tu.Resource)
	assert.Empty(t, tr.EquipmentIDs)
	assert.Empty(t, f.ledger.TrainingsWithEquipment(f.racket.ID))

	changed, err := f.ledger.AddTrainingEquipment(tr.ID, 2)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = f.ledger.AddTrainingEquipment(tr.ID, 2)
	require.NoError(t, err)
	assert.False(t, changed, "adding the same equipment twice is a no-op")
	assert.Equal(t, []int64{2}, tr.EquipmentIDs)

	_, err = f.ledger.AddTrainingEquipment(99, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}
