package service

import (
	"context"
	"fmt"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/repository"
)

const defaultRejectionReason = "Request rejected"

type membershipService struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	emailSvc EmailService
}

func NewMembershipService(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository, emailSvc EmailService) MembershipService {
	return &membershipService{
		userRepo: userRepo,
		orgRepo:  orgRepo,
		emailSvc: emailSvc,
	}
}

// RequestMembership puts an unaffiliated or rejected user into the pending
// state for the target organization.
func (s *membershipService) RequestMembership(ctx context.Context, userID, orgID int32) error {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return fmt.Errorf("failed to get organization: %w", err)
	}
	if org.Status != domain.OrganizationStatusApproved {
		return domain.ErrOrganizationNotApproved
	}
	return s.userRepo.RequestJoin(ctx, userID, orgID)
}

// ApproveMembership admits a user pending on the acting admin's
// organization. The repository transition re-checks the pending state, so
// two concurrent decisions cannot both take effect.
func (s *membershipService) ApproveMembership(ctx context.Context, adminOrgID, userID int32) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user.Status != domain.MembershipStatusPending || user.OrganizationRequest == nil {
		return domain.ErrInvalidStateTransition
	}
	if !user.HasPendingRequestFor(adminOrgID) {
		return domain.ErrUnauthorized
	}

	if err := s.userRepo.ApproveRequest(ctx, userID, adminOrgID); err != nil {
		return err
	}

	s.notifyDecision(ctx, user, adminOrgID, true, "")
	return nil
}

func (s *membershipService) RejectMembership(ctx context.Context, adminOrgID, userID int32, reason string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user.Status != domain.MembershipStatusPending || user.OrganizationRequest == nil {
		return domain.ErrInvalidStateTransition
	}
	if !user.HasPendingRequestFor(adminOrgID) {
		return domain.ErrUnauthorized
	}
	if reason == "" {
		reason = defaultRejectionReason
	}

	if err := s.userRepo.RejectRequest(ctx, userID, adminOrgID, reason); err != nil {
		return err
	}

	s.notifyDecision(ctx, user, adminOrgID, false, reason)
	return nil
}

func (s *membershipService) ListPendingRequests(ctx context.Context, orgID int32) ([]domain.User, error) {
	return s.userRepo.ListPendingByOrg(ctx, orgID)
}

func (s *membershipService) notifyDecision(ctx context.Context, user *domain.User, orgID int32, approved bool, reason string) {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return
	}
	_ = s.emailSvc.SendMembershipDecision(ctx, user.Username, user.Name, org.Name, approved, reason)
}
