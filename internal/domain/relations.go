package domain

import "slices"

// The operations below attach people to each other and to bookings. Each one
// checks the role required on each side, is a no-op when the link already
// exists, and reports whether anything changed.

// SetOwningClient makes client the owner of participant.
func (l *Ledger) SetOwningClient(participantID, clientID int64) (bool, error) {
	participant, client, err := l.pair(participantID, clientID)
	if err != nil {
		return false, err
	}
	if participant.OwningClientID != nil && *participant.OwningClientID == client.ID {
		return false, nil
	}
	id := client.ID
	participant.OwningClientID = &id
	return true, nil
}

// AddParticipant is SetOwningClient seen from the client side.
func (l *Ledger) AddParticipant(clientID, participantID int64) (bool, error) {
	return l.SetOwningClient(participantID, clientID)
}

// RemoveParticipant unlinks participant from client. A participant who is
// not also a client must keep an owner, so removing theirs fails.
func (l *Ledger) RemoveParticipant(clientID, participantID int64) (bool, error) {
	participant, client, err := l.pair(participantID, clientID)
	if err != nil {
		return false, err
	}
	if participant.OwningClientID == nil || *participant.OwningClientID != client.ID {
		return false, nil
	}
	if participant.NeedsOwner() {
		return false, roleMismatch(SideParticipant, participant, RoleClient)
	}
	participant.OwningClientID = nil
	return true, nil
}

// AddReservationBought records clientID as the payer of the reservation.
func (l *Ledger) AddReservationBought(clientID, reservationID int64) (bool, error) {
	client, err := l.Person(clientID)
	if err != nil {
		return false, err
	}
	if !client.IsClient() {
		return false, roleMismatch(SideClient, client, RoleClient)
	}
	r, err := l.Reservation(reservationID)
	if err != nil {
		return false, err
	}
	if r.ClientID == client.ID {
		return false, nil
	}
	r.ClientID = client.ID
	return true, nil
}

// AddReservation records participantID as the player of the reservation.
func (l *Ledger) AddReservation(participantID, reservationID int64) (bool, error) {
	participant, err := l.Person(participantID)
	if err != nil {
		return false, err
	}
	if !participant.IsParticipant() {
		return false, roleMismatch(SideParticipant, participant, RoleParticipant)
	}
	r, err := l.Reservation(reservationID)
	if err != nil {
		return false, err
	}
	if r.ParticipantID == participant.ID {
		return false, nil
	}
	r.ParticipantID = participant.ID
	return true, nil
}

// AddTraining attaches a person to a training on the given side.
func (l *Ledger) AddTraining(side Side, personID, trainingID int64) (bool, error) {
	p, err := l.Person(personID)
	if err != nil {
		return false, err
	}
	t, err := l.Training(trainingID)
	if err != nil {
		return false, err
	}
	switch side {
	case SideClient:
		if !p.IsClient() {
			return false, roleMismatch(SideClient, p, RoleClient)
		}
		if t.HasClient(p.ID) {
			return false, nil
		}
		t.ClientIDs = append(t.ClientIDs, p.ID)
	default:
		if !p.IsParticipant() {
			return false, roleMismatch(SideParticipant, p, RoleParticipant)
		}
		if t.HasParticipant(p.ID) {
			return false, nil
		}
		t.ParticipantIDs = append(t.ParticipantIDs, p.ID)
	}
	return true, nil
}

// AddTrainingEquipment puts a piece of equipment into a training, provided
// no other booking holds it at that time.
func (l *Ledger) AddTrainingEquipment(trainingID, equipmentID int64) (bool, error) {
	t, err := l.Training(trainingID)
	if err != nil {
		return false, err
	}
	if t.UsesEquipment(equipmentID) {
		return false, nil
	}
	if err := l.checkEquipment([]int64{equipmentID}, t.Interval()); err != nil {
		return false, err
	}
	t.EquipmentIDs = append(slices.Clone(t.EquipmentIDs), equipmentID)
	return true, nil
}

// pair resolves a participant/client pair and checks both roles.
func (l *Ledger) pair(participantID, clientID int64) (*Person, *Person, error) {
	participant, err := l.Person(participantID)
	if err != nil {
		return nil, nil, err
	}
	client, err := l.Person(clientID)
	if err != nil {
		return nil, nil, err
	}
	if !participant.IsParticipant() {
		return nil, nil, roleMismatch(SideParticipant, participant, RoleParticipant)
	}
	if !client.IsClient() {
		return nil, nil, roleMismatch(SideClient, client, RoleClient)
	}
	return participant, client, nil
}
