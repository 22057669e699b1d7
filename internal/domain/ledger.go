package domain

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// Ledger is the in-memory booking graph of the facility.
//
// Bookings are stored once, keyed by ID. Every "who/what is this booking
// attached to" question (a court's reservations, a client's bought
// bookings, a participant's trainings) is answered by scanning those tables,
// so the two sides of a relation cannot drift apart.
//
// A Ledger is not safe for concurrent use; callers serialize access.
type Ledger struct {
	facility *FacilityConfig
	now      func() time.Time

	people    map[int64]*Person
	courts    map[int64]*Court
	trainers  map[int64]*Trainer
	equipment map[int64]*Equipment

	reservations map[int64]*Reservation
	trainings    map[int64]*Training

	nextReservationID int64
	nextTrainingID    int64
}

func NewLedger(facility *FacilityConfig) *Ledger {
	if facility == nil {
		facility = DefaultFacilityConfig()
	}
	return &Ledger{
		facility:          facility,
		now:               time.Now,
		people:            make(map[int64]*Person),
		courts:            make(map[int64]*Court),
		trainers:          make(map[int64]*Trainer),
		equipment:         make(map[int64]*Equipment),
		reservations:      make(map[int64]*Reservation),
		trainings:         make(map[int64]*Training),
		nextReservationID: 1,
		nextTrainingID:    1,
	}
}

func (l *Ledger) Facility() *FacilityConfig { return l.facility }

/* ---------- registration ---------- */

func (l *Ledger) AddPerson(p *Person) error {
	if p == nil || p.ID <= 0 {
		return fmt.Errorf("%w: person needs a positive id", ErrInvalidPerson)
	}
	if p.Roles == 0 {
		return fmt.Errorf("%w: person %d has no roles", ErrInvalidPerson, p.ID)
	}
	if p.NeedsOwner() && p.OwningClientID == nil {
		return fmt.Errorf("%w: participant %d has no owning client", ErrInvalidPerson, p.ID)
	}
	if p.OwningClientID != nil {
		owner, ok := l.people[*p.OwningClientID]
		if !ok {
			return fmt.Errorf("owning client %d: %w", *p.OwningClientID, ErrNotFound)
		}
		if !owner.IsClient() {
			return roleMismatch(SideClient, owner, RoleClient)
		}
	}
	l.people[p.ID] = p
	return nil
}

// AddCourt registers a court. Unroofed courts pick up the season window of
// the facility configuration.
func (l *Ledger) AddCourt(c *Court) error {
	if c == nil || c.ID <= 0 {
		return fmt.Errorf("court needs a positive id")
	}
	if !c.Kind.Valid() {
		return fmt.Errorf("court %d: unknown kind %q", c.ID, c.Kind)
	}
	for _, other := range l.courts {
		if other.ID != c.ID && other.Number == c.Number {
			return fmt.Errorf("%w: %d", ErrDuplicateCourt, c.Number)
		}
	}
	c.Season = nil
	if c.Kind == CourtUnroofed {
		if s, ok := l.facility.SeasonFor(CourtUnroofed); ok {
			w := s.Window
			c.Season = &w
		}
	}
	l.courts[c.ID] = c
	return nil
}

func (l *Ledger) AddTrainer(t *Trainer) error {
	if t == nil || t.ID <= 0 {
		return fmt.Errorf("trainer needs a positive id")
	}
	for _, wh := range t.WorkingHours {
		if wh.DayOfWeek < 0 || wh.DayOfWeek > 6 {
			return fmt.Errorf("trainer %d: day_of_week %d out of range", t.ID, wh.DayOfWeek)
		}
	}
	l.trainers[t.ID] = t
	return nil
}

func (l *Ledger) AddEquipment(e *Equipment) error {
	if e == nil || e.ID <= 0 {
		return fmt.Errorf("equipment needs a positive id")
	}
	if !e.Kind.Valid() {
		return fmt.Errorf("equipment %d: unknown kind %q", e.ID, e.Kind)
	}
	l.equipment[e.ID] = e
	return nil
}

// Restore puts already persisted bookings back without re-running the
// factory checks.
func (l *Ledger) Restore(reservations []*Reservation, trainings []*Training) {
	for _, r := range reservations {
		l.reservations[r.ID] = r
		if r.ID >= l.nextReservationID {
			l.nextReservationID = r.ID + 1
		}
	}
	for _, t := range trainings {
		l.trainings[t.ID] = t
		if t.ID >= l.nextTrainingID {
			l.nextTrainingID = t.ID + 1
		}
	}
}

/* ---------- lookups ---------- */

func (l *Ledger) Person(id int64) (*Person, error) {
	p, ok := l.people[id]
	if !ok {
		return nil, fmt.Errorf("person %d: %w", id, ErrNotFound)
	}
	return p, nil
}

func (l *Ledger) Court(id int64) (*Court, error) {
	c, ok := l.courts[id]
	if !ok {
		return nil, fmt.Errorf("court %d: %w", id, ErrNotFound)
	}
	return c, nil
}

func (l *Ledger) Trainer(id int64) (*Trainer, error) {
	t, ok := l.trainers[id]
	if !ok {
		return nil, fmt.Errorf("trainer %d: %w", id, ErrNotFound)
	}
	return t, nil
}

func (l *Ledger) EquipmentByID(id int64) (*Equipment, error) {
	e, ok := l.equipment[id]
	if !ok {
		return nil, fmt.Errorf("equipment %d: %w", id, ErrNotFound)
	}
	return e, nil
}

func (l *Ledger) Reservation(id int64) (*Reservation, error) {
	r, ok := l.reservations[id]
	if !ok {
		return nil, fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	return r, nil
}

func (l *Ledger) Training(id int64) (*Training, error) {
	t, ok := l.trainings[id]
	if !ok {
		return nil, fmt.Errorf("training %d: %w", id, ErrNotFound)
	}
	return t, nil
}

func (l *Ledger) People() []*Person {
	return sortedByID(l.people, func(p *Person) int64 { return p.ID })
}

func (l *Ledger) Courts() []*Court {
	return sortedByID(l.courts, func(c *Court) int64 { return c.ID })
}

func (l *Ledger) Trainers() []*Trainer {
	return sortedByID(l.trainers, func(t *Trainer) int64 { return t.ID })
}

func (l *Ledger) EquipmentList() []*Equipment {
	return sortedByID(l.equipment, func(e *Equipment) int64 { return e.ID })
}

func (l *Ledger) ReservationsOnCourt(courtID int64) []*Reservation {
	return l.filterReservations(func(r *Reservation) bool { return r.CourtID == courtID })
}

func (l *Ledger) TrainingsOnCourt(courtID int64) []*Training {
	return l.filterTrainings(func(t *Training) bool { return t.CourtID == courtID })
}

func (l *Ledger) TrainingsWithTrainer(trainerID int64) []*Training {
	return l.filterTrainings(func(t *Training) bool { return t.TrainerID == trainerID })
}

func (l *Ledger) TrainingsWithEquipment(equipmentID int64) []*Training {
	return l.filterTrainings(func(t *Training) bool { return t.UsesEquipment(equipmentID) })
}

func (l *Ledger) ReservationsWithEquipment(equipmentID int64) []*Reservation {
	return l.filterReservations(func(r *Reservation) bool { return r.usesEquipment(equipmentID) })
}

func (l *Ledger) ReservationsBoughtBy(clientID int64) []*Reservation {
	return l.filterReservations(func(r *Reservation) bool { return r.ClientID == clientID })
}

func (l *Ledger) ReservationsOf(participantID int64) []*Reservation {
	return l.filterReservations(func(r *Reservation) bool { return r.ParticipantID == participantID })
}

func (l *Ledger) TrainingsBoughtBy(clientID int64) []*Training {
	return l.filterTrainings(func(t *Training) bool { return t.HasClient(clientID) })
}

func (l *Ledger) TrainingsOf(participantID int64) []*Training {
	return l.filterTrainings(func(t *Training) bool { return t.HasParticipant(participantID) })
}

// ParticipantsOf lists the people whose owning client is clientID.
func (l *Ledger) ParticipantsOf(clientID int64) []*Person {
	var out []*Person
	for _, p := range l.People() {
		if p.OwningClientID != nil && *p.OwningClientID == clientID {
			out = append(out, p)
		}
	}
	return out
}

// CourtBusy returns every booked interval on the court, sorted by start.
func (l *Ledger) CourtBusy(courtID int64) []Interval {
	var out []Interval
	for _, r := range l.ReservationsOnCourt(courtID) {
		out = append(out, r.Interval())
	}
	for _, t := range l.TrainingsOnCourt(courtID) {
		out = append(out, t.Interval())
	}
	sortIntervals(out)
	return out
}

func (l *Ledger) TrainerBusy(trainerID int64) []Interval {
	var out []Interval
	for _, t := range l.TrainingsWithTrainer(trainerID) {
		out = append(out, t.Interval())
	}
	return out
}

func (l *Ledger) EquipmentBusy(equipmentID int64) []Interval {
	var out []Interval
	for _, t := range l.TrainingsWithEquipment(equipmentID) {
		out = append(out, t.Interval())
	}
	for _, r := range l.ReservationsWithEquipment(equipmentID) {
		out = append(out, r.Interval())
	}
	sortIntervals(out)
	return out
}

/* ---------- availability ---------- */

func (l *Ledger) CourtAvailable(courtID int64, from time.Time, d time.Duration) (bool, error) {
	c, err := l.Court(courtID)
	if err != nil {
		return false, err
	}
	return c.IsAvailable(l.CourtBusy(courtID), from, d), nil
}

func (l *Ledger) TrainerAvailable(trainerID int64, from time.Time, d time.Duration) (bool, error) {
	t, err := l.Trainer(trainerID)
	if err != nil {
		return false, err
	}
	return t.IsAvailable(l.TrainerBusy(trainerID), from, d), nil
}

func (l *Ledger) EquipmentAvailable(equipmentID int64, from time.Time, d time.Duration) (bool, error) {
	e, err := l.EquipmentByID(equipmentID)
	if err != nil {
		return false, err
	}
	return e.IsAvailable(l.EquipmentBusy(equipmentID), from, d), nil
}

// CourtSlots lists the free windows on a court within the facility's opening
// hours for the day. An unroofed court out of season is free all day.
func (l *Ledger) CourtSlots(courtID int64, day time.Time) ([]Interval, error) {
	c, err := l.Court(courtID)
	if err != nil {
		return nil, err
	}
	window, err := l.facility.OpeningWindow(day)
	if err != nil {
		return nil, err
	}
	if c.OutOfSeason(day) {
		return []Interval{window}, nil
	}
	return FreeWindows(window, l.CourtBusy(courtID)), nil
}

// TrainerSlots lists the free windows in the trainer's shift for the day.
func (l *Ledger) TrainerSlots(trainerID int64, day time.Time) ([]Interval, error) {
	t, err := l.Trainer(trainerID)
	if err != nil {
		return nil, err
	}
	window, ok := t.WorkingWindow(day)
	if !ok {
		return []Interval{}, nil
	}
	return FreeWindows(window, l.TrainerBusy(trainerID)), nil
}

// FindFreeEquipment lists equipment of the given kind that is not used by
// any booking overlapping the interval. An empty kind matches all kinds.
func (l *Ledger) FindFreeEquipment(kind EquipmentKind, from time.Time, d time.Duration) []*Equipment {
	var out []*Equipment
	for _, e := range l.EquipmentList() {
		if kind != "" && e.Kind != kind {
			continue
		}
		if e.IsAvailable(l.EquipmentBusy(e.ID), from, d) {
			out = append(out, e)
		}
	}
	return out
}

/* ---------- factories ---------- */

// MakeReservation books a court. Checks run in a fixed order and the first
// failure is returned: court availability, equipment availability, client
// role, participant role. Nothing is recorded unless every check passes.
func (l *Ledger) MakeReservation(req ReservationRequest) (*Reservation, error) {
	if req.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidInterval)
	}
	want := NewInterval(req.Start, req.Duration)

	ok, err := l.CourtAvailable(req.CourtID, req.Start, req.Duration)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &TimeUnavailableError{Resource: ResourceCourt, ResourceID: req.CourtID, Interval: want}
	}
	if req.EquipmentID != nil {
		if err := l.checkEquipment([]int64{*req.EquipmentID}, want); err != nil {
			return nil, err
		}
	}

	client, err := l.Person(req.ClientID)
	if err != nil {
		return nil, err
	}
	if !client.IsClient() {
		return nil, roleMismatch(SideClient, client, RoleClient)
	}
	participant, err := l.Person(req.ParticipantID)
	if err != nil {
		return nil, err
	}
	if !participant.IsParticipant() {
		return nil, roleMismatch(SideParticipant, participant, RoleParticipant)
	}

	r := &Reservation{
		ID:            l.nextReservationID,
		Start:         req.Start,
		Duration:      req.Duration,
		CourtID:       req.CourtID,
		ClientID:      client.ID,
		ParticipantID: participant.ID,
		CreatedAt:     l.now(),
	}
	if req.EquipmentID != nil {
		id := *req.EquipmentID
		r.EquipmentID = &id
	}
	l.reservations[r.ID] = r
	l.nextReservationID++
	return r, nil
}

// MakeTraining books a trainer on a court. Order: court, trainer and
// equipment availability, then every client's role, then every
// participant's role.
func (l *Ledger) MakeTraining(req TrainingRequest) (*Training, error) {
	if req.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidInterval)
	}
	if len(req.ClientIDs) == 0 || len(req.ParticipantIDs) == 0 {
		return nil, fmt.Errorf("%w: training needs at least one client and one participant", ErrInvalidPerson)
	}
	want := NewInterval(req.Start, req.Duration)

	ok, err := l.CourtAvailable(req.CourtID, req.Start, req.Duration)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &TimeUnavailableError{Resource: ResourceCourt, ResourceID: req.CourtID, Interval: want}
	}
	ok, err = l.TrainerAvailable(req.TrainerID, req.Start, req.Duration)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &TimeUnavailableError{Resource: ResourceTrainer, ResourceID: req.TrainerID, Interval: want}
	}
	if err := l.checkEquipment(req.EquipmentIDs, want); err != nil {
		return nil, err
	}

	for _, id := range req.ClientIDs {
		p, err := l.Person(id)
		if err != nil {
			return nil, err
		}
		if !p.IsClient() {
			return nil, roleMismatch(SideClient, p, RoleClient)
		}
	}
	for _, id := range req.ParticipantIDs {
		p, err := l.Person(id)
		if err != nil {
			return nil, err
		}
		if !p.IsParticipant() {
			return nil, roleMismatch(SideParticipant, p, RoleParticipant)
		}
	}

	t := &Training{
		ID:             l.nextTrainingID,
		Start:          req.Start,
		Duration:       req.Duration,
		TrainerID:      req.TrainerID,
		CourtID:        req.CourtID,
		ClientIDs:      dedup(req.ClientIDs),
		ParticipantIDs: dedup(req.ParticipantIDs),
		EquipmentIDs:   dedup(req.EquipmentIDs),
		CreatedAt:      l.now(),
	}
	l.trainings[t.ID] = t
	l.nextTrainingID++
	return t, nil
}

func (l *Ledger) checkEquipment(ids []int64, want Interval) error {
	for _, id := range ids {
		ok, err := l.EquipmentAvailable(id, want.Start, want.Duration)
		if err != nil {
			return err
		}
		if !ok {
			return &TimeUnavailableError{Resource: ResourceEquipment, ResourceID: id, Interval: want}
		}
	}
	return nil
}

// DiscardReservation drops a reservation that could not be persisted.
func (l *Ledger) DiscardReservation(id int64) {
	delete(l.reservations, id)
	if id == l.nextReservationID-1 {
		l.nextReservationID--
	}
}

// DiscardTraining drops a training that could not be persisted.
func (l *Ledger) DiscardTraining(id int64) {
	delete(l.trainings, id)
	if id == l.nextTrainingID-1 {
		l.nextTrainingID--
	}
}

/* ---------- helpers ---------- */

func (l *Ledger) filterReservations(keep func(*Reservation) bool) []*Reservation {
	var out []*Reservation
	for _, r := range l.reservations {
		if keep(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b *Reservation) int {
		return cmp.Or(a.Start.Compare(b.Start), cmp.Compare(a.ID, b.ID))
	})
	return out
}

func (l *Ledger) filterTrainings(keep func(*Training) bool) []*Training {
	var out []*Training
	for _, t := range l.trainings {
		if keep(t) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b *Training) int {
		return cmp.Or(a.Start.Compare(b.Start), cmp.Compare(a.ID, b.ID))
	})
	return out
}

func sortedByID[T any](m map[int64]T, id func(T) int64) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
	return out
}

func sortIntervals(in []Interval) {
	slices.SortFunc(in, func(a, b Interval) int { return a.Start.Compare(b.Start) })
}

func dedup(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
