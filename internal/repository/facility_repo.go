package repository

import (
	"context"
	"time"

	"tenniscourt/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const facilityRowID = 1

type FacilityRepository struct {
	db *gorm.DB
}

func NewFacilityRepository(db *gorm.DB) *FacilityRepository {
	return &FacilityRepository{db: db}
}

// facilityModel is the single row holding the facility-wide settings.
type facilityModel struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement:false"`
	OpenTime  string          `gorm:"column:open_time;not null"`
	CloseTime string          `gorm:"column:close_time;not null"`
	Seasons   []domain.Season `gorm:"column:seasons;serializer:json"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (facilityModel) TableName() string { return "facility_config" }

// GetFacility returns the stored configuration, or domain.ErrNotFound when none was
// saved yet.
func (r *FacilityRepository) GetFacility(ctx context.Context) (*domain.FacilityConfig, error) {
	var m facilityModel
	if err := r.db.WithContext(ctx).First(&m, facilityRowID).Error; err != nil {
		return nil, translate(err, "get facility config")
	}
	return &domain.FacilityConfig{
		OpenTime:  m.OpenTime,
		CloseTime: m.CloseTime,
		Seasons:   m.Seasons,
	}, nil
}

// SaveFacility upserts the configuration row.
func (r *FacilityRepository) SaveFacility(ctx context.Context, f *domain.FacilityConfig) error {
	m := facilityModel{
		ID:        facilityRowID,
		OpenTime:  f.OpenTime,
		CloseTime: f.CloseTime,
		Seasons:   f.Seasons,
	}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"open_time", "close_time", "seasons", "updated_at"}),
	}).Create(&m)
	return translate(tx.Error, "save facility config")
}
