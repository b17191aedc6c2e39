package service_test

import (
	"context"
	"testing"
	"time"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newMarketplace(listingRepo *MockListingRepo, ledgerRepo *MockLedgerRepo, orgRepo *MockOrganizationRepo, userRepo *MockUserRepo, emailSvc *MockEmailService) service.MarketplaceService {
	return service.NewMarketplaceService(listingRepo, ledgerRepo, orgRepo, userRepo, emailSvc)
}

func TestMarketplaceService_CreateListing(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		orgRepo := new(MockOrganizationRepo)
		svc := newMarketplace(listingRepo, new(MockLedgerRepo), orgRepo, new(MockUserRepo), new(MockEmailService))

		orgRepo.On("GetByID", ctx, int32(5)).Return(&domain.Organization{
			ID:           5,
			Status:       domain.OrganizationStatusApproved,
			TotalCredits: decimal.NewFromInt(100),
		}, nil)
		listingRepo.On("Create", ctx, &domain.Listing{
			OrganizationID: 5,
			CreditsAmount:  decimal.NewFromInt(40),
			PricePerCredit: decimal.NewFromInt(2),
		}).Return(nil)

		listing, err := svc.CreateListing(ctx, 5, decimal.NewFromInt(40), decimal.NewFromInt(2))
		assert.NoError(t, err)
		assert.True(t, listing.TotalCost().Equal(decimal.NewFromInt(80)))
		listingRepo.AssertExpectations(t)
	})

	t.Run("InsufficientCredits", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		orgRepo := new(MockOrganizationRepo)
		svc := newMarketplace(listingRepo, new(MockLedgerRepo), orgRepo, new(MockUserRepo), new(MockEmailService))

		orgRepo.On("GetByID", ctx, int32(5)).Return(&domain.Organization{
			ID:           5,
			TotalCredits: decimal.NewFromInt(10),
		}, nil)

		_, err := svc.CreateListing(ctx, 5, decimal.NewFromInt(40), decimal.NewFromInt(2))
		assert.ErrorIs(t, err, domain.ErrInsufficientCredits)
		listingRepo.AssertNotCalled(t, "Create")
	})

	t.Run("NonPositiveAmounts", func(t *testing.T) {
		svc := newMarketplace(new(MockListingRepo), new(MockLedgerRepo), new(MockOrganizationRepo), new(MockUserRepo), new(MockEmailService))

		_, err := svc.CreateListing(ctx, 5, decimal.Zero, decimal.NewFromInt(2))
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = svc.CreateListing(ctx, 5, decimal.NewFromInt(10), decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestMarketplaceService_PurchaseListing(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		ledgerRepo := new(MockLedgerRepo)
		userRepo := new(MockUserRepo)
		emailSvc := new(MockEmailService)
		svc := newMarketplace(listingRepo, ledgerRepo, new(MockOrganizationRepo), userRepo, emailSvc)

		listing := &domain.Listing{
			ID:             3,
			OrganizationID: 5,
			CreditsAmount:  decimal.NewFromInt(40),
			PricePerCredit: decimal.NewFromInt(2),
			Status:         domain.ListingStatusActive,
		}
		listingRepo.On("GetByID", ctx, int32(3)).Return(listing, nil)
		ledgerRepo.On("ExecuteTrade", ctx, int32(3), int32(8), int32(5), decimal.NewFromInt(80), decimal.NewFromInt(40)).Return(nil)
		userRepo.On("GetOrgAdmin", ctx, int32(5)).Return(&domain.User{Username: "admin@seller.com", Name: "Sam"}, nil)
		emailSvc.On("SendListingSoldNotification", ctx, "admin@seller.com", "Sam", decimal.NewFromInt(40), decimal.NewFromInt(80)).Return(nil)

		err := svc.PurchaseListing(ctx, 3, 8)
		assert.NoError(t, err)
		ledgerRepo.AssertExpectations(t)
		emailSvc.AssertExpectations(t)
	})

	t.Run("AlreadySold", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := newMarketplace(listingRepo, ledgerRepo, new(MockOrganizationRepo), new(MockUserRepo), new(MockEmailService))

		listingRepo.On("GetByID", ctx, int32(3)).Return(&domain.Listing{
			ID:             3,
			OrganizationID: 5,
			Status:         domain.ListingStatusSold,
		}, nil)

		err := svc.PurchaseListing(ctx, 3, 8)
		assert.ErrorIs(t, err, domain.ErrListingNotActive)
		ledgerRepo.AssertNotCalled(t, "ExecuteTrade")
	})

	t.Run("SelfTrade", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := newMarketplace(listingRepo, ledgerRepo, new(MockOrganizationRepo), new(MockUserRepo), new(MockEmailService))

		listingRepo.On("GetByID", ctx, int32(3)).Return(&domain.Listing{
			ID:             3,
			OrganizationID: 8,
			Status:         domain.ListingStatusActive,
		}, nil)

		err := svc.PurchaseListing(ctx, 3, 8)
		assert.ErrorIs(t, err, domain.ErrSelfTrade)
		ledgerRepo.AssertNotCalled(t, "ExecuteTrade")
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		ledgerRepo := new(MockLedgerRepo)
		emailSvc := new(MockEmailService)
		svc := newMarketplace(listingRepo, ledgerRepo, new(MockOrganizationRepo), new(MockUserRepo), emailSvc)

		listing := &domain.Listing{
			ID:             3,
			OrganizationID: 5,
			CreditsAmount:  decimal.NewFromInt(40),
			PricePerCredit: decimal.NewFromInt(100),
			Status:         domain.ListingStatusActive,
		}
		listingRepo.On("GetByID", ctx, int32(3)).Return(listing, nil)
		ledgerRepo.On("ExecuteTrade", ctx, int32(3), int32(8), int32(5), decimal.NewFromInt(4000), decimal.NewFromInt(40)).Return(domain.ErrInsufficientFunds)

		err := svc.PurchaseListing(ctx, 3, 8)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		emailSvc.AssertNotCalled(t, "SendListingSoldNotification")
	})
}

func TestMarketplaceService_MarketplaceHistory(t *testing.T) {
	ctx := context.Background()

	listingRepo := new(MockListingRepo)
	svc := newMarketplace(listingRepo, new(MockLedgerRepo), new(MockOrganizationRepo), new(MockUserRepo), new(MockEmailService))

	active := []domain.Listing{
		{ID: 1, OrganizationID: 5, CreditsAmount: decimal.NewFromInt(10), PricePerCredit: decimal.NewFromInt(1), Status: domain.ListingStatusActive},
	}
	sold := []domain.Listing{
		{ID: 2, OrganizationID: 5, CreditsAmount: decimal.NewFromInt(20), PricePerCredit: decimal.NewFromInt(2), Status: domain.ListingStatusSold},
		{ID: 3, OrganizationID: 5, CreditsAmount: decimal.NewFromInt(5), PricePerCredit: decimal.NewFromInt(4), Status: domain.ListingStatusSold},
	}
	listingRepo.On("ListByOrg", ctx, int32(5), domain.ListingStatusActive).Return(active, nil)
	listingRepo.On("ListByOrg", ctx, int32(5), domain.ListingStatusSold).Return(sold, nil)

	history, err := svc.MarketplaceHistory(ctx, 5)
	assert.NoError(t, err)
	assert.Len(t, history.Active, 1)
	assert.Len(t, history.Sold, 2)
	assert.True(t, history.TotalSoldCredits.Equal(decimal.NewFromInt(25)))
	assert.True(t, history.TotalSoldValue.Equal(decimal.NewFromInt(60)))
}

func TestMarketplaceService_MarketplaceAnalytics(t *testing.T) {
	ctx := context.Background()

	t.Run("AggregatesTrendAndPrices", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		svc := newMarketplace(listingRepo, new(MockLedgerRepo), new(MockOrganizationRepo), new(MockUserRepo), new(MockEmailService))

		active := []domain.Listing{
			{ID: 10, OrganizationID: 5, CreditsAmount: decimal.NewFromInt(15), PricePerCredit: decimal.NewFromInt(3), Status: domain.ListingStatusActive},
			{ID: 11, OrganizationID: 5, CreditsAmount: decimal.NewFromInt(5), PricePerCredit: decimal.NewFromInt(2), Status: domain.ListingStatusActive},
		}
		sold := []domain.Listing{
			{ID: 1, OrganizationID: 5, CreditsAmount: decimal.NewFromInt(20), PricePerCredit: decimal.NewFromInt(2), Status: domain.ListingStatusSold, CreatedOn: time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)},
			{ID: 2, OrganizationID: 5, CreditsAmount: decimal.NewFromInt(10), PricePerCredit: decimal.NewFromInt(4), Status: domain.ListingStatusSold, CreatedOn: time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)},
			{ID: 3, OrganizationID: 5, CreditsAmount: decimal.NewFromInt(5), PricePerCredit: decimal.NewFromInt(3), Status: domain.ListingStatusSold, CreatedOn: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		}
		listingRepo.On("ListByOrg", ctx, int32(5), domain.ListingStatusActive).Return(active, nil)
		listingRepo.On("ListByOrg", ctx, int32(5), domain.ListingStatusSold).Return(sold, nil)

		analytics, err := svc.MarketplaceAnalytics(ctx, 5)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), analytics.ActiveListings)
		assert.True(t, analytics.ActiveCredits.Equal(decimal.NewFromInt(20)))
		assert.Equal(t, int32(3), analytics.SoldListings)
		assert.True(t, analytics.TotalSoldCredits.Equal(decimal.NewFromInt(35)))
		assert.True(t, analytics.TotalSoldValue.Equal(decimal.NewFromInt(95)))

		assert.True(t, analytics.MonthlySales["2025-02"].Credits.Equal(decimal.NewFromInt(30)))
		assert.True(t, analytics.MonthlySales["2025-02"].Volume.Equal(decimal.NewFromInt(80)))
		assert.True(t, analytics.MonthlySales["2025-03"].Volume.Equal(decimal.NewFromInt(15)))

		assert.True(t, analytics.SoldPrices.Min.Equal(decimal.NewFromInt(2)))
		assert.True(t, analytics.SoldPrices.Max.Equal(decimal.NewFromInt(4)))
		assert.True(t, analytics.SoldPrices.Average.Equal(decimal.NewFromInt(3)))
	})

	t.Run("NoSales", func(t *testing.T) {
		listingRepo := new(MockListingRepo)
		svc := newMarketplace(listingRepo, new(MockLedgerRepo), new(MockOrganizationRepo), new(MockUserRepo), new(MockEmailService))

		listingRepo.On("ListByOrg", ctx, int32(5), domain.ListingStatusActive).Return([]domain.Listing{}, nil)
		listingRepo.On("ListByOrg", ctx, int32(5), domain.ListingStatusSold).Return([]domain.Listing{}, nil)

		analytics, err := svc.MarketplaceAnalytics(ctx, 5)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), analytics.SoldListings)
		assert.True(t, analytics.SoldPrices.Average.IsZero())
		assert.Empty(t, analytics.MonthlySales)
	})
}
