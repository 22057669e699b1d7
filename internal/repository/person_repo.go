package repository

import (
	"context"
	"time"

	"tenniscourt/internal/domain"

	"gorm.io/gorm"
)

type PersonRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

type personModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	Name           string    `gorm:"column:name;not null"`
	Email          *string   `gorm:"column:email"`
	Phone          *string   `gorm:"column:phone"`
	Roles          uint8     `gorm:"column:roles;not null"`
	OwningClientID *int64    `gorm:"column:owning_client_id;index"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`

	OwningClient *personModel `gorm:"foreignKey:OwningClientID"`
}

func (personModel) TableName() string { return "persons" }

func toDomainPerson(m personModel) *domain.Person {
	p := &domain.Person{
		ID:    m.ID,
		Name:  m.Name,
		Roles: domain.Roles(m.Roles),
	}
	if m.Email != nil {
		p.Email = *m.Email
	}
	if m.Phone != nil {
		p.Phone = *m.Phone
	}
	if m.OwningClientID != nil {
		v := *m.OwningClientID
		p.OwningClientID = &v
	}
	return p
}

func toPersonModel(p *domain.Person) personModel {
	m := personModel{
		ID:             p.ID,
		Name:           p.Name,
		Roles:          uint8(p.Roles),
		OwningClientID: p.OwningClientID,
	}
	if p.Email != "" {
		v := p.Email
		m.Email = &v
	}
	if p.Phone != "" {
		v := p.Phone
		m.Phone = &v
	}
	return m
}

// CreatePerson inserts the person and copies the generated id back.
func (r *PersonRepository) CreatePerson(ctx context.Context, p *domain.Person) error {
	m := toPersonModel(p)
	if err := r.db.WithContext(ctx).Omit("OwningClient").Create(&m).Error; err != nil {
		return translate(err, "create person")
	}
	p.ID = m.ID
	return nil
}

func (r *PersonRepository) GetPerson(ctx context.Context, id int64) (*domain.Person, error) {
	var m personModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err, "get person")
	}
	return toDomainPerson(m), nil
}

func (r *PersonRepository) ListPeople(ctx context.Context) ([]*domain.Person, error) {
	var rows []personModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Person, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainPerson(m))
	}
	return out, nil
}

// UpdateOwningClient sets or clears (nil) the owning client of a person.
func (r *PersonRepository) UpdateOwningClient(ctx context.Context, personID int64, clientID *int64) error {
	tx := r.db.WithContext(ctx).
		Model(&personModel{}).
		Where("id = ?", personID).
		Update("owning_client_id", clientID)
	if tx.Error != nil {
		return translate(tx.Error, "update owning client")
	}
	if tx.RowsAffected == 0 {
		return wrap(domain.ErrNotFound, "update owning client")
	}
	return nil
}
