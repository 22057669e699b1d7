package repository

import "gorm.io/gorm"

// Store bundles every repository over one database handle.
type Store struct {
	*PersonRepository
	*CatalogRepository
	*BookingRepository
	*FacilityRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		PersonRepository:   NewPersonRepository(db),
		CatalogRepository:  NewCatalogRepository(db),
		BookingRepository:  NewBookingRepository(db),
		FacilityRepository: NewFacilityRepository(db),
	}
}
