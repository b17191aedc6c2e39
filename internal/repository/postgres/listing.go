package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/repository"
)

type listingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

const listingColumns = `id, organization_id, credits_amount, price_per_credit, status, created_on`

func (r *listingRepository) Create(ctx context.Context, l *domain.Listing) error {
	query := `INSERT INTO listings (organization_id, credits_amount, price_per_credit, status, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	l.Status = domain.ListingStatusActive
	l.CreatedOn = time.Now().UTC()
	return r.db.QueryRowContext(ctx, query, l.OrganizationID, l.CreditsAmount, l.PricePerCredit, l.Status, l.CreatedOn).Scan(&l.ID)
}

func (r *listingRepository) GetByID(ctx context.Context, id int32) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	l := &domain.Listing{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&l.ID, &l.OrganizationID, &l.CreditsAmount, &l.PricePerCredit, &l.Status, &l.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *listingRepository) ListActive(ctx context.Context) ([]domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE status = 'active' ORDER BY created_on DESC`
	return r.queryListings(ctx, query)
}

func (r *listingRepository) ListByOrg(ctx context.Context, orgID int32, status domain.ListingStatus) ([]domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE organization_id = $1 AND status = $2 ORDER BY created_on DESC`
	return r.queryListings(ctx, query, orgID, status)
}

func (r *listingRepository) ListSold(ctx context.Context) ([]domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE status = 'sold' ORDER BY created_on DESC`
	return r.queryListings(ctx, query)
}

func (r *listingRepository) queryListings(ctx context.Context, query string, args ...any) ([]domain.Listing, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := rows.Scan(&l.ID, &l.OrganizationID, &l.CreditsAmount, &l.PricePerCredit, &l.Status, &l.CreatedOn); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
