package repository

import (
	"context"
	"time"

	"tenniscourt/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type reservationModel struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement:false"`
	CourtID       int64     `gorm:"column:court_id;not null;index:idx_reservations_court_time"`
	ClientID      int64     `gorm:"column:client_id;not null;index"`
	ParticipantID int64     `gorm:"column:participant_id;not null;index"`
	EquipmentID   *int64    `gorm:"column:equipment_id;index"`
	StartTime     time.Time `gorm:"column:start_time;not null;index:idx_reservations_court_time"`
	EndTime       time.Time `gorm:"column:end_time;not null"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (reservationModel) TableName() string { return "reservations" }

type trainingModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement:false"`
	TrainerID int64     `gorm:"column:trainer_id;not null;index"`
	CourtID   int64     `gorm:"column:court_id;not null;index"`
	StartTime time.Time `gorm:"column:start_time;not null"`
	EndTime   time.Time `gorm:"column:end_time;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (trainingModel) TableName() string { return "trainings" }

// trainingMemberModel links a person to a training as client or participant.
type trainingMemberModel struct {
	TrainingID int64  `gorm:"column:training_id;primaryKey"`
	PersonID   int64  `gorm:"column:person_id;primaryKey;index"`
	Side       string `gorm:"column:side;primaryKey"`
}

func (trainingMemberModel) TableName() string { return "training_members" }

type trainingEquipmentModel struct {
	TrainingID  int64 `gorm:"column:training_id;primaryKey"`
	EquipmentID int64 `gorm:"column:equipment_id;primaryKey;index"`
}

func (trainingEquipmentModel) TableName() string { return "training_equipment" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	return &domain.Reservation{
		ID:            m.ID,
		Start:         m.StartTime,
		Duration:      m.EndTime.Sub(m.StartTime),
		CourtID:       m.CourtID,
		ClientID:      m.ClientID,
		ParticipantID: m.ParticipantID,
		EquipmentID:   m.EquipmentID,
		CreatedAt:     m.CreatedAt,
	}
}

func toReservationModel(r *domain.Reservation) reservationModel {
	return reservationModel{
		ID:            r.ID,
		CourtID:       r.CourtID,
		ClientID:      r.ClientID,
		ParticipantID: r.ParticipantID,
		EquipmentID:   r.EquipmentID,
		StartTime:     r.Start,
		EndTime:       r.Start.Add(r.Duration),
		CreatedAt:     r.CreatedAt,
	}
}

// CreateReservation stores a reservation under the id the ledger assigned.
func (r *BookingRepository) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	return translate(r.db.WithContext(ctx).Create(&m).Error, "create reservation")
}

// UpdateReservationPeople rewrites the client and participant of a reservation.
func (r *BookingRepository) UpdateReservationPeople(ctx context.Context, res *domain.Reservation) error {
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("id = ?", res.ID).
		Updates(map[string]any{
			"client_id":      res.ClientID,
			"participant_id": res.ParticipantID,
		})
	if tx.Error != nil {
		return translate(tx.Error, "update reservation")
	}
	if tx.RowsAffected == 0 {
		return wrap(domain.ErrNotFound, "update reservation")
	}
	return nil
}

func (r *BookingRepository) ListReservations(ctx context.Context) ([]*domain.Reservation, error) {
	var rows []reservationModel
	if err := r.db.WithContext(ctx).Order("start_time, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainReservation(m))
	}
	return out, nil
}

// ReservationsOnCourt fetches the reservations of one court that overlap
// [from, to).
func (r *BookingRepository) ReservationsOnCourt(ctx context.Context, courtID int64, from, to time.Time) ([]*domain.Reservation, error) {
	var rows []reservationModel
	tx := r.db.WithContext(ctx).
		Where("court_id = ? AND start_time < ? AND end_time > ?", courtID, to, from).
		Order("start_time").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]*domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainReservation(m))
	}
	return out, nil
}

// CreateTraining stores the training together with its member and
// equipment rows in one transaction.
func (r *BookingRepository) CreateTraining(ctx context.Context, t *domain.Training) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := trainingModel{
			ID:        t.ID,
			TrainerID: t.TrainerID,
			CourtID:   t.CourtID,
			StartTime: t.Start,
			EndTime:   t.Start.Add(t.Duration),
			CreatedAt: t.CreatedAt,
		}
		if err := tx.Create(&m).Error; err != nil {
			return translate(err, "create training")
		}
		return writeTrainingLinks(tx, t)
	})
}

// ReplaceTrainingLinks rewrites the member and equipment rows of a training.
func (r *BookingRepository) ReplaceTrainingLinks(ctx context.Context, t *domain.Training) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&trainingModel{}).Where("id = ?", t.ID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return wrap(domain.ErrNotFound, "replace training links")
		}
		if err := tx.Where("training_id = ?", t.ID).Delete(&trainingMemberModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("training_id = ?", t.ID).Delete(&trainingEquipmentModel{}).Error; err != nil {
			return err
		}
		return writeTrainingLinks(tx, t)
	})
}

func writeTrainingLinks(tx *gorm.DB, t *domain.Training) error {
	members := make([]trainingMemberModel, 0, len(t.ClientIDs)+len(t.ParticipantIDs))
	for _, id := range t.ClientIDs {
		members = append(members, trainingMemberModel{TrainingID: t.ID, PersonID: id, Side: string(domain.SideClient)})
	}
	for _, id := range t.ParticipantIDs {
		members = append(members, trainingMemberModel{TrainingID: t.ID, PersonID: id, Side: string(domain.SideParticipant)})
	}
	if len(members) > 0 {
		if err := tx.Create(&members).Error; err != nil {
			return translate(err, "create training members")
		}
	}
	if len(t.EquipmentIDs) == 0 {
		return nil
	}
	equipment := make([]trainingEquipmentModel, 0, len(t.EquipmentIDs))
	for _, id := range t.EquipmentIDs {
		equipment = append(equipment, trainingEquipmentModel{TrainingID: t.ID, EquipmentID: id})
	}
	if err := tx.Create(&equipment).Error; err != nil {
		return translate(err, "create training equipment")
	}
	return nil
}

func (r *BookingRepository) ListTrainings(ctx context.Context) ([]*domain.Training, error) {
	db := r.db.WithContext(ctx)

	var rows []trainingModel
	if err := db.Order("start_time, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	var members []trainingMemberModel
	if err := db.Order("training_id, person_id").Find(&members).Error; err != nil {
		return nil, err
	}
	var equipment []trainingEquipmentModel
	if err := db.Order("training_id, equipment_id").Find(&equipment).Error; err != nil {
		return nil, err
	}

	byID := make(map[int64]*domain.Training, len(rows))
	out := make([]*domain.Training, 0, len(rows))
	for _, m := range rows {
		t := &domain.Training{
			ID:             m.ID,
			Start:          m.StartTime,
			Duration:       m.EndTime.Sub(m.StartTime),
			TrainerID:      m.TrainerID,
			CourtID:        m.CourtID,
			ClientIDs:      []int64{},
			ParticipantIDs: []int64{},
			EquipmentIDs:   []int64{},
			CreatedAt:      m.CreatedAt,
		}
		byID[t.ID] = t
		out = append(out, t)
	}
	for _, mm := range members {
		t, ok := byID[mm.TrainingID]
		if !ok {
			continue
		}
		if mm.Side == string(domain.SideClient) {
			t.ClientIDs = append(t.ClientIDs, mm.PersonID)
		} else {
			t.ParticipantIDs = append(t.ParticipantIDs, mm.PersonID)
		}
	}
	for _, em := range equipment {
		if t, ok := byID[em.TrainingID]; ok {
			t.EquipmentIDs = append(t.EquipmentIDs, em.EquipmentID)
		}
	}
	return out, nil
}
