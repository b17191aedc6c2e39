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

var orgCols = []string{"id", "name", "description", "status", "rejection_reason", "total_credits", "virtual_balance", "created_on"}

func TestOrganizationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOrganizationRepository(db)
	ctx := context.Background()

	org := &domain.Organization{
		Name:           "Acme",
		Description:    "Widgets",
		Status:         domain.OrganizationStatusPending,
		TotalCredits:   decimal.Zero,
		VirtualBalance: domain.InitialVirtualBalance,
	}
	mock.ExpectQuery("INSERT INTO organizations").
		WithArgs(org.Name, org.Description, org.Status, org.TotalCredits, org.VirtualBalance, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	err = repo.Create(ctx, org)
	assert.NoError(t, err)
	assert.Equal(t, int32(5), org.ID)
}

func TestOrganizationRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOrganizationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(orgCols).
			AddRow(5, "Acme", "Widgets", "approved", nil, "120.50", "875", time.Now())
		mock.ExpectQuery("SELECT (.+) FROM organizations WHERE id =").
			WithArgs(int32(5)).
			WillReturnRows(rows)

		org, err := repo.GetByID(ctx, 5)
		assert.NoError(t, err)
		assert.Equal(t, domain.OrganizationStatusApproved, org.Status)
		assert.True(t, org.TotalCredits.Equal(decimal.NewFromFloat(120.5)))
		assert.True(t, org.VirtualBalance.Equal(decimal.NewFromInt(875)))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM organizations WHERE id =").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(orgCols))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestOrganizationRepository_Review(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOrganizationRepository(db)
	ctx := context.Background()

	t.Run("Approve", func(t *testing.T) {
		mock.ExpectExec("UPDATE organizations SET status =").
			WithArgs(int32(5), domain.OrganizationStatusApproved, nil).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Review(ctx, 5, domain.OrganizationStatusApproved, nil)
		assert.NoError(t, err)
	})

	t.Run("AlreadyDecided", func(t *testing.T) {
		reason := "Incomplete application"
		mock.ExpectExec("UPDATE organizations SET status =").
			WithArgs(int32(5), domain.OrganizationStatusRejected, &reason).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Review(ctx, 5, domain.OrganizationStatusRejected, &reason)
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	})
}
