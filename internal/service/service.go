package service

import (
	"context"
	"time"

	"greencommute-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type AuthService interface {
	Signup(ctx context.Context, username, name, password string, role domain.UserRole, orgRequest *int32) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error) // user, access token
}

type MembershipService interface {
	RequestMembership(ctx context.Context, userID, orgID int32) error
	ApproveMembership(ctx context.Context, adminOrgID, userID int32) error
	RejectMembership(ctx context.Context, adminOrgID, userID int32, reason string) error
	ListPendingRequests(ctx context.Context, orgID int32) ([]domain.User, error)
}

type OrganizationService interface {
	RegisterOrganization(ctx context.Context, adminUserID int32, name, description string) (*domain.Organization, error)
	GetOrganization(ctx context.Context, id int32) (*domain.Organization, error)
	ListApproved(ctx context.Context) ([]domain.Organization, error)
	ListPending(ctx context.Context) ([]domain.Organization, error)
	ApproveOrganization(ctx context.Context, orgID int32) error
	RejectOrganization(ctx context.Context, orgID int32, reason string) error
}

type LedgerService interface {
	CreditOrganization(ctx context.Context, orgID int32, amount decimal.Decimal) error
	DebitOrganization(ctx context.Context, orgID int32, amount decimal.Decimal) error
	TransferBalance(ctx context.Context, payerOrgID, payeeOrgID int32, amount decimal.Decimal) error
	TransferCredits(ctx context.Context, fromOrgID, toOrgID int32, amount decimal.Decimal) error
	GetBalances(ctx context.Context, orgID int32) (totalCredits, virtualBalance decimal.Decimal, err error)
}

type CommuteService interface {
	SetCommuteDistance(ctx context.Context, userID int32, distance decimal.Decimal) error
	RecordCommute(ctx context.Context, userID int32, date time.Time, method domain.TransportMethod) (*domain.CommuteLog, error)
	ListUserCommutes(ctx context.Context, userID int32) ([]domain.CommuteLog, error)
	CommuteAnalytics(ctx context.Context, userID int32) (*domain.CommuteAnalytics, error)
}

type MarketplaceService interface {
	CreateListing(ctx context.Context, orgID int32, creditsAmount, pricePerCredit decimal.Decimal) (*domain.Listing, error)
	ListActiveListings(ctx context.Context) ([]domain.Listing, error)
	PurchaseListing(ctx context.Context, listingID, buyerOrgID int32) error
	MarketplaceHistory(ctx context.Context, orgID int32) (*domain.MarketplaceHistory, error)
	MarketplaceAnalytics(ctx context.Context, orgID int32) (*domain.MarketplaceAnalytics, error)
}

type AnalyticsService interface {
	OrganizationSummary(ctx context.Context, orgID int32) (*domain.OrganizationSummary, error)
	SystemSummary(ctx context.Context) (*domain.SystemSummary, error)
}

type EmailService interface {
	SendMembershipDecision(ctx context.Context, email, name, orgName string, approved bool, reason string) error
	SendOrganizationDecision(ctx context.Context, email, name, orgName string, approved bool, reason string) error
	SendListingSoldNotification(ctx context.Context, email, name string, credits, value decimal.Decimal) error
	SendPointsDigest(ctx context.Context, email, name, orgName string, points decimal.Decimal, commutes int) error
	SendMembershipReminder(ctx context.Context, email, name, orgName string, pendingCount int) error
}
