package repository

import (
	"context"
	"time"

	"tenniscourt/internal/domain"

	"gorm.io/gorm"
)

// CatalogRepository stores the bookable resources: courts, trainers and
// equipment.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

type courtModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Number    int       `gorm:"column:number;uniqueIndex:idx_courts_number;not null"`
	Surface   string    `gorm:"column:surface;not null"`
	Kind      string    `gorm:"column:kind;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (courtModel) TableName() string { return "courts" }

type trainerModel struct {
	ID           int64                 `gorm:"column:id;primaryKey"`
	Name         string                `gorm:"column:name;not null"`
	Email        string                `gorm:"column:email"`
	Phone        string                `gorm:"column:phone"`
	Tier         string                `gorm:"column:tier"`
	WorkingHours []domain.WorkingHours `gorm:"column:working_hours;serializer:json"`
	CreatedAt    time.Time             `gorm:"column:created_at"`
}

func (trainerModel) TableName() string { return "trainers" }

type equipmentModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Kind      string    `gorm:"column:kind;not null;index"`
	Brand     string    `gorm:"column:brand"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (equipmentModel) TableName() string { return "equipment" }

func (r *CatalogRepository) CreateCourt(ctx context.Context, c *domain.Court) error {
	m := courtModel{ID: c.ID, Number: c.Number, Surface: string(c.Surface), Kind: string(c.Kind)}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err, "create court")
	}
	c.ID = m.ID
	return nil
}

func (r *CatalogRepository) ListCourts(ctx context.Context) ([]*domain.Court, error) {
	var rows []courtModel
	if err := r.db.WithContext(ctx).Order("number").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Court, 0, len(rows))
	for _, m := range rows {
		out = append(out, &domain.Court{
			ID:      m.ID,
			Number:  m.Number,
			Surface: domain.Surface(m.Surface),
			Kind:    domain.CourtKind(m.Kind),
		})
	}
	return out, nil
}

func (r *CatalogRepository) CreateTrainer(ctx context.Context, t *domain.Trainer) error {
	m := trainerModel{
		ID:           t.ID,
		Name:         t.Name,
		Email:        t.Email,
		Phone:        t.Phone,
		Tier:         string(t.Tier),
		WorkingHours: t.WorkingHours,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err, "create trainer")
	}
	t.ID = m.ID
	return nil
}

// UpdateWorkingHours replaces the weekly schedule of a trainer.
func (r *CatalogRepository) UpdateWorkingHours(ctx context.Context, trainerID int64, hours []domain.WorkingHours) error {
	m := trainerModel{ID: trainerID, WorkingHours: hours}
	tx := r.db.WithContext(ctx).Model(&m).Select("working_hours").Updates(&m)
	if tx.Error != nil {
		return translate(tx.Error, "update working hours")
	}
	if tx.RowsAffected == 0 {
		return wrap(domain.ErrNotFound, "update working hours")
	}
	return nil
}

func (r *CatalogRepository) ListTrainers(ctx context.Context) ([]*domain.Trainer, error) {
	var rows []trainerModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Trainer, 0, len(rows))
	for _, m := range rows {
		out = append(out, &domain.Trainer{
			ID:           m.ID,
			Name:         m.Name,
			Email:        m.Email,
			Phone:        m.Phone,
			Tier:         domain.TrainerTier(m.Tier),
			WorkingHours: m.WorkingHours,
		})
	}
	return out, nil
}

func (r *CatalogRepository) CreateEquipment(ctx context.Context, e *domain.Equipment) error {
	m := equipmentModel{ID: e.ID, Name: e.Name, Kind: string(e.Kind), Brand: e.Brand}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err, "create equipment")
	}
	e.ID = m.ID
	return nil
}

func (r *CatalogRepository) ListEquipment(ctx context.Context) ([]*domain.Equipment, error) {
	var rows []equipmentModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Equipment, 0, len(rows))
	for _, m := range rows {
		out = append(out, &domain.Equipment{
			ID:    m.ID,
			Name:  m.Name,
			Kind:  domain.EquipmentKind(m.Kind),
			Brand: m.Brand,
		})
	}
	return out, nil
}
