package postgres_test

import (
	"context"
	"testing"
	"time"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestListingRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewListingRepository(db)
	ctx := context.Background()

	listing := &domain.Listing{
		OrganizationID: 5,
		CreditsAmount:  decimal.NewFromInt(40),
		PricePerCredit: decimal.NewFromInt(2),
	}
	mock.ExpectQuery("INSERT INTO listings").
		WithArgs(listing.OrganizationID, listing.CreditsAmount, listing.PricePerCredit, domain.ListingStatusActive, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	err = repo.Create(ctx, listing)
	assert.NoError(t, err)
	assert.Equal(t, int32(3), listing.ID)
	assert.Equal(t, domain.ListingStatusActive, listing.Status)
}

func TestListingRepository_ListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewListingRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "organization_id", "credits_amount", "price_per_credit", "status", "created_on"}).
		AddRow(3, 5, "40", "2", "active", time.Now()).
		AddRow(2, 8, "10", "1.25", "active", time.Now())
	mock.ExpectQuery("SELECT (.+) FROM listings WHERE status = 'active'").
		WillReturnRows(rows)

	listings, err := repo.ListActive(ctx)
	assert.NoError(t, err)
	assert.Len(t, listings, 2)
	assert.True(t, listings[0].TotalCost().Equal(decimal.NewFromInt(80)))
	assert.True(t, listings[1].TotalCost().Equal(decimal.NewFromFloat(12.5)))
}
