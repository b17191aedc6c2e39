package repository

import (
	"context"
	"time"

	"greencommute-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	SetCommuteDistance(ctx context.Context, userID int32, distance decimal.Decimal) error

	// Membership lifecycle. Each transition is a guarded single-statement
	// update so the state check and the write cannot be split by a
	// concurrent request; zero rows affected means the user was not in the
	// required state.
	RequestJoin(ctx context.Context, userID, orgID int32) error
	ApproveRequest(ctx context.Context, userID, orgID int32) error
	RejectRequest(ctx context.Context, userID, orgID int32, reason string) error
	AttachToOrganization(ctx context.Context, userID, orgID int32) error

	ListPendingByOrg(ctx context.Context, orgID int32) ([]domain.User, error)
	ListByOrg(ctx context.Context, orgID int32) ([]domain.User, error)
	GetOrgAdmin(ctx context.Context, orgID int32) (*domain.User, error)
	CountByRole(ctx context.Context) (map[domain.UserRole]int32, error)
	CountCreatedByMonth(ctx context.Context) (map[string]int32, error)
}

type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id int32) (*domain.Organization, error)
	ListByStatus(ctx context.Context, status domain.OrganizationStatus) ([]domain.Organization, error)
	// Review transitions the organization out of pending; zero rows
	// affected means it was not pending.
	Review(ctx context.Context, orgID int32, status domain.OrganizationStatus, reason *string) error
	CountCreatedByMonth(ctx context.Context) (map[string]int32, error)
}

// LedgerRepository owns the balance fields of organizations. Every
// mutation commits atomically; neither total_credits nor virtual_balance
// is ever observable below zero.
type LedgerRepository interface {
	Credit(ctx context.Context, orgID int32, amount decimal.Decimal) error
	Debit(ctx context.Context, orgID int32, amount decimal.Decimal) error
	TransferBalance(ctx context.Context, payerOrgID, payeeOrgID int32, amount decimal.Decimal) error
	TransferCredits(ctx context.Context, fromOrgID, toOrgID int32, amount decimal.Decimal) error
	// ExecuteTrade flips the listing from active to sold and moves cash and
	// credits between the two organizations in one transaction.
	ExecuteTrade(ctx context.Context, listingID, buyerOrgID, sellerOrgID int32, cost, credits decimal.Decimal) error
}

type CommuteLogRepository interface {
	// Create inserts the log; a second log for the same user and day fails
	// with domain.ErrDuplicateCommuteLog.
	Create(ctx context.Context, log *domain.CommuteLog) error
	ListByUser(ctx context.Context, userID int32) ([]domain.CommuteLog, error)
	ListByOrgSince(ctx context.Context, orgID int32, since time.Time) ([]domain.CommuteLog, error)
}

type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id int32) (*domain.Listing, error)
	ListActive(ctx context.Context) ([]domain.Listing, error)
	ListByOrg(ctx context.Context, orgID int32, status domain.ListingStatus) ([]domain.Listing, error)
	ListSold(ctx context.Context) ([]domain.Listing, error)
}
