package service

import (
	"context"
	"fmt"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/logger"
	"greencommute-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type marketplaceService struct {
	listingRepo repository.ListingRepository
	ledgerRepo  repository.LedgerRepository
	orgRepo     repository.OrganizationRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
}

func NewMarketplaceService(
	listingRepo repository.ListingRepository,
	ledgerRepo repository.LedgerRepository,
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) MarketplaceService {
	return &marketplaceService{
		listingRepo: listingRepo,
		ledgerRepo:  ledgerRepo,
		orgRepo:     orgRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
	}
}

// CreateListing validates the seller's credit balance at creation time.
// Listed credits are not reserved; the purchase re-checks them inside its
// own transaction.
func (s *marketplaceService) CreateListing(ctx context.Context, orgID int32, creditsAmount, pricePerCredit decimal.Decimal) (*domain.Listing, error) {
	if creditsAmount.Sign() <= 0 || pricePerCredit.Sign() <= 0 {
		return nil, domain.ErrValidation
	}

	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	if org.TotalCredits.LessThan(creditsAmount) {
		return nil, domain.ErrInsufficientCredits
	}

	listing := &domain.Listing{
		OrganizationID: orgID,
		CreditsAmount:  creditsAmount,
		PricePerCredit: pricePerCredit,
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	return listing, nil
}

func (s *marketplaceService) ListActiveListings(ctx context.Context) ([]domain.Listing, error) {
	return s.listingRepo.ListActive(ctx)
}

// PurchaseListing executes the trade. The ledger commits the listing flip,
// the cash transfer and the credit transfer in one transaction; of N
// concurrent purchases of the same listing exactly one succeeds.
func (s *marketplaceService) PurchaseListing(ctx context.Context, listingID, buyerOrgID int32) error {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.Status != domain.ListingStatusActive {
		return domain.ErrListingNotActive
	}
	if listing.OrganizationID == buyerOrgID {
		return domain.ErrSelfTrade
	}

	totalCost := listing.TotalCost()
	if err := s.ledgerRepo.ExecuteTrade(ctx, listingID, buyerOrgID, listing.OrganizationID, totalCost, listing.CreditsAmount); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Listing purchased", "listing_id", listingID, "buyer_org_id", buyerOrgID, "seller_org_id", listing.OrganizationID, "cost", totalCost.String())

	// Notify the seller's admin; best effort.
	if admin, err := s.userRepo.GetOrgAdmin(ctx, listing.OrganizationID); err == nil {
		_ = s.emailSvc.SendListingSoldNotification(ctx, admin.Username, admin.Name, listing.CreditsAmount, totalCost)
	}
	return nil
}

func (s *marketplaceService) MarketplaceHistory(ctx context.Context, orgID int32) (*domain.MarketplaceHistory, error) {
	active, err := s.listingRepo.ListByOrg(ctx, orgID, domain.ListingStatusActive)
	if err != nil {
		return nil, err
	}
	sold, err := s.listingRepo.ListByOrg(ctx, orgID, domain.ListingStatusSold)
	if err != nil {
		return nil, err
	}

	history := &domain.MarketplaceHistory{
		Active:           active,
		Sold:             sold,
		TotalSoldCredits: decimal.Zero,
		TotalSoldValue:   decimal.Zero,
	}
	for _, l := range sold {
		history.TotalSoldCredits = history.TotalSoldCredits.Add(l.CreditsAmount)
		history.TotalSoldValue = history.TotalSoldValue.Add(l.TotalCost())
	}
	return history, nil
}

// MarketplaceAnalytics aggregates the organization's trading record: what
// is on offer right now, the monthly sales trend, and per-credit price
// statistics over completed sales.
func (s *marketplaceService) MarketplaceAnalytics(ctx context.Context, orgID int32) (*domain.MarketplaceAnalytics, error) {
	active, err := s.listingRepo.ListByOrg(ctx, orgID, domain.ListingStatusActive)
	if err != nil {
		return nil, err
	}
	sold, err := s.listingRepo.ListByOrg(ctx, orgID, domain.ListingStatusSold)
	if err != nil {
		return nil, err
	}

	analytics := &domain.MarketplaceAnalytics{
		ActiveListings:   int32(len(active)),
		ActiveCredits:    decimal.Zero,
		SoldListings:     int32(len(sold)),
		TotalSoldCredits: decimal.Zero,
		TotalSoldValue:   decimal.Zero,
		MonthlySales:     make(map[string]domain.MonthlyTrading),
	}
	for _, l := range active {
		analytics.ActiveCredits = analytics.ActiveCredits.Add(l.CreditsAmount)
	}

	priceSum := decimal.Zero
	for i, l := range sold {
		value := l.TotalCost()
		analytics.TotalSoldCredits = analytics.TotalSoldCredits.Add(l.CreditsAmount)
		analytics.TotalSoldValue = analytics.TotalSoldValue.Add(value)

		month := l.CreatedOn.Format("2006-01")
		mt := analytics.MonthlySales[month]
		mt.Credits = mt.Credits.Add(l.CreditsAmount)
		mt.Volume = mt.Volume.Add(value)
		analytics.MonthlySales[month] = mt

		priceSum = priceSum.Add(l.PricePerCredit)
		if i == 0 || l.PricePerCredit.LessThan(analytics.SoldPrices.Min) {
			analytics.SoldPrices.Min = l.PricePerCredit
		}
		if i == 0 || l.PricePerCredit.GreaterThan(analytics.SoldPrices.Max) {
			analytics.SoldPrices.Max = l.PricePerCredit
		}
	}
	if len(sold) > 0 {
		analytics.SoldPrices.Average = priceSum.DivRound(decimal.NewFromInt(int64(len(sold))), 2)
	}
	return analytics, nil
}
