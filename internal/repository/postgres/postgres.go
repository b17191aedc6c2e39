package postgres

import (
	"database/sql"

	"greencommute-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.OrganizationRepository
	repository.LedgerRepository
	repository.CommuteLogRepository
	repository.ListingRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		OrganizationRepository: NewOrganizationRepository(db),
		LedgerRepository:       NewLedgerRepository(db),
		CommuteLogRepository:   NewCommuteLogRepository(db),
		ListingRepository:      NewListingRepository(db),
	}
}
