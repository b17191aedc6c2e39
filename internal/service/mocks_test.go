package service_test

import (
	"context"
	"time"

	"greencommute-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) SetCommuteDistance(ctx context.Context, userID int32, distance decimal.Decimal) error {
	args := m.Called(ctx, userID, distance)
	return args.Error(0)
}
func (m *MockUserRepo) RequestJoin(ctx context.Context, userID, orgID int32) error {
	args := m.Called(ctx, userID, orgID)
	return args.Error(0)
}
func (m *MockUserRepo) ApproveRequest(ctx context.Context, userID, orgID int32) error {
	args := m.Called(ctx, userID, orgID)
	return args.Error(0)
}
func (m *MockUserRepo) RejectRequest(ctx context.Context, userID, orgID int32, reason string) error {
	args := m.Called(ctx, userID, orgID, reason)
	return args.Error(0)
}
func (m *MockUserRepo) AttachToOrganization(ctx context.Context, userID, orgID int32) error {
	args := m.Called(ctx, userID, orgID)
	return args.Error(0)
}
func (m *MockUserRepo) ListPendingByOrg(ctx context.Context, orgID int32) ([]domain.User, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) ListByOrg(ctx context.Context, orgID int32) ([]domain.User, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) GetOrgAdmin(ctx context.Context, orgID int32) (*domain.User, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) CountByRole(ctx context.Context) (map[domain.UserRole]int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.UserRole]int32), args.Error(1)
}
func (m *MockUserRepo) CountCreatedByMonth(ctx context.Context) (map[string]int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int32), args.Error(1)
}

// MockOrganizationRepo
type MockOrganizationRepo struct {
	mock.Mock
}

func (m *MockOrganizationRepo) Create(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrganizationRepo) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) ListByStatus(ctx context.Context, status domain.OrganizationStatus) ([]domain.Organization, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) Review(ctx context.Context, orgID int32, status domain.OrganizationStatus, reason *string) error {
	args := m.Called(ctx, orgID, status, reason)
	return args.Error(0)
}
func (m *MockOrganizationRepo) CountCreatedByMonth(ctx context.Context) (map[string]int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int32), args.Error(1)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) Credit(ctx context.Context, orgID int32, amount decimal.Decimal) error {
	args := m.Called(ctx, orgID, amount)
	return args.Error(0)
}
func (m *MockLedgerRepo) Debit(ctx context.Context, orgID int32, amount decimal.Decimal) error {
	args := m.Called(ctx, orgID, amount)
	return args.Error(0)
}
func (m *MockLedgerRepo) TransferBalance(ctx context.Context, payerOrgID, payeeOrgID int32, amount decimal.Decimal) error {
	args := m.Called(ctx, payerOrgID, payeeOrgID, amount)
	return args.Error(0)
}
func (m *MockLedgerRepo) TransferCredits(ctx context.Context, fromOrgID, toOrgID int32, amount decimal.Decimal) error {
	args := m.Called(ctx, fromOrgID, toOrgID, amount)
	return args.Error(0)
}
func (m *MockLedgerRepo) ExecuteTrade(ctx context.Context, listingID, buyerOrgID, sellerOrgID int32, cost, credits decimal.Decimal) error {
	args := m.Called(ctx, listingID, buyerOrgID, sellerOrgID, cost, credits)
	return args.Error(0)
}

// MockCommuteLogRepo
type MockCommuteLogRepo struct {
	mock.Mock
}

func (m *MockCommuteLogRepo) Create(ctx context.Context, log *domain.CommuteLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}
func (m *MockCommuteLogRepo) ListByUser(ctx context.Context, userID int32) ([]domain.CommuteLog, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.CommuteLog), args.Error(1)
}
func (m *MockCommuteLogRepo) ListByOrgSince(ctx context.Context, orgID int32, since time.Time) ([]domain.CommuteLog, error) {
	args := m.Called(ctx, orgID, since)
	return args.Get(0).([]domain.CommuteLog), args.Error(1)
}

// MockListingRepo
type MockListingRepo struct {
	mock.Mock
}

func (m *MockListingRepo) Create(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepo) GetByID(ctx context.Context, id int32) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingRepo) ListActive(ctx context.Context) ([]domain.Listing, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Listing), args.Error(1)
}
func (m *MockListingRepo) ListByOrg(ctx context.Context, orgID int32, status domain.ListingStatus) ([]domain.Listing, error) {
	args := m.Called(ctx, orgID, status)
	return args.Get(0).([]domain.Listing), args.Error(1)
}
func (m *MockListingRepo) ListSold(ctx context.Context) ([]domain.Listing, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Listing), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendMembershipDecision(ctx context.Context, email, name, orgName string, approved bool, reason string) error {
	args := m.Called(ctx, email, name, orgName, approved, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendOrganizationDecision(ctx context.Context, email, name, orgName string, approved bool, reason string) error {
	args := m.Called(ctx, email, name, orgName, approved, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendListingSoldNotification(ctx context.Context, email, name string, credits, value decimal.Decimal) error {
	args := m.Called(ctx, email, name, credits, value)
	return args.Error(0)
}
func (m *MockEmailService) SendPointsDigest(ctx context.Context, email, name, orgName string, points decimal.Decimal, commutes int) error {
	args := m.Called(ctx, email, name, orgName, points, commutes)
	return args.Error(0)
}
func (m *MockEmailService) SendMembershipReminder(ctx context.Context, email, name, orgName string, pendingCount int) error {
	args := m.Called(ctx, email, name, orgName, pendingCount)
	return args.Error(0)
}
