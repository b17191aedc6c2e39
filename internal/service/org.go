package service

import (
	"context"
	"fmt"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type organizationService struct {
	orgRepo  repository.OrganizationRepository
	userRepo repository.UserRepository
	emailSvc EmailService
}

func NewOrganizationService(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository, emailSvc EmailService) OrganizationService {
	return &organizationService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
		emailSvc: emailSvc,
	}
}

// RegisterOrganization creates an organization on behalf of the acting
// user. An org admin registering their own organization is trusted by
// construction: the organization starts approved and the admin's user
// record is attached directly, skipping the pending phase.
func (s *organizationService) RegisterOrganization(ctx context.Context, adminUserID int32, name, description string) (*domain.Organization, error) {
	if name == "" {
		return nil, domain.ErrValidation
	}
	admin, err := s.userRepo.GetByID(ctx, adminUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if admin.Role == domain.UserRoleOrgAdmin && admin.OrganizationID != nil {
		return nil, domain.ErrInvalidStateTransition
	}

	org := &domain.Organization{
		Name:           name,
		Description:    description,
		Status:         domain.OrganizationStatusPending,
		TotalCredits:   decimal.Zero,
		VirtualBalance: domain.InitialVirtualBalance,
	}
	if admin.Role == domain.UserRoleOrgAdmin {
		org.Status = domain.OrganizationStatusApproved
	}

	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	if admin.Role == domain.UserRoleOrgAdmin {
		if err := s.userRepo.AttachToOrganization(ctx, adminUserID, org.ID); err != nil {
			return nil, fmt.Errorf("failed to attach admin to organization: %w", err)
		}
	}
	return org, nil
}

func (s *organizationService) GetOrganization(ctx context.Context, id int32) (*domain.Organization, error) {
	return s.orgRepo.GetByID(ctx, id)
}

func (s *organizationService) ListApproved(ctx context.Context) ([]domain.Organization, error) {
	return s.orgRepo.ListByStatus(ctx, domain.OrganizationStatusApproved)
}

func (s *organizationService) ListPending(ctx context.Context) ([]domain.Organization, error) {
	return s.orgRepo.ListByStatus(ctx, domain.OrganizationStatusPending)
}

func (s *organizationService) ApproveOrganization(ctx context.Context, orgID int32) error {
	if err := s.orgRepo.Review(ctx, orgID, domain.OrganizationStatusApproved, nil); err != nil {
		return err
	}
	s.notifyDecision(ctx, orgID, true, "")
	return nil
}

func (s *organizationService) RejectOrganization(ctx context.Context, orgID int32, reason string) error {
	if reason == "" {
		reason = defaultRejectionReason
	}
	if err := s.orgRepo.Review(ctx, orgID, domain.OrganizationStatusRejected, &reason); err != nil {
		return err
	}
	s.notifyDecision(ctx, orgID, false, reason)
	return nil
}

func (s *organizationService) notifyDecision(ctx context.Context, orgID int32, approved bool, reason string) {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return
	}
	admin, err := s.userRepo.GetOrgAdmin(ctx, orgID)
	if err != nil {
		return
	}
	_ = s.emailSvc.SendOrganizationDecision(ctx, admin.Username, admin.Name, org.Name, approved, reason)
}
