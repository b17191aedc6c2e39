package service_test

import (
	"context"
	"testing"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func int32Ptr(v int32) *int32 { return &v }

func TestMembershipService_RequestMembership(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		orgRepo := new(MockOrganizationRepo)
		svc := service.NewMembershipService(userRepo, orgRepo, new(MockEmailService))

		orgRepo.On("GetByID", ctx, int32(5)).Return(&domain.Organization{ID: 5, Status: domain.OrganizationStatusApproved}, nil)
		userRepo.On("RequestJoin", ctx, int32(1), int32(5)).Return(nil)

		err := svc.RequestMembership(ctx, 1, 5)
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("OrganizationNotApproved", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		orgRepo := new(MockOrganizationRepo)
		svc := service.NewMembershipService(userRepo, orgRepo, new(MockEmailService))

		orgRepo.On("GetByID", ctx, int32(5)).Return(&domain.Organization{ID: 5, Status: domain.OrganizationStatusPending}, nil)

		err := svc.RequestMembership(ctx, 1, 5)
		assert.ErrorIs(t, err, domain.ErrOrganizationNotApproved)
		userRepo.AssertNotCalled(t, "RequestJoin", ctx, int32(1), int32(5))
	})

	t.Run("AlreadyMemberTransitionRejected", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		orgRepo := new(MockOrganizationRepo)
		svc := service.NewMembershipService(userRepo, orgRepo, new(MockEmailService))

		orgRepo.On("GetByID", ctx, int32(5)).Return(&domain.Organization{ID: 5, Status: domain.OrganizationStatusApproved}, nil)
		userRepo.On("RequestJoin", ctx, int32(1), int32(5)).Return(domain.ErrInvalidStateTransition)

		err := svc.RequestMembership(ctx, 1, 5)
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	})
}

func TestMembershipService_ApproveMembership(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		orgRepo := new(MockOrganizationRepo)
		emailSvc := new(MockEmailService)
		svc := service.NewMembershipService(userRepo, orgRepo, emailSvc)

		user := &domain.User{
			ID:                  1,
			Username:            "jane@acme.com",
			Name:                "Jane",
			Status:              domain.MembershipStatusPending,
			OrganizationRequest: int32Ptr(5),
		}
		userRepo.On("GetByID", ctx, int32(1)).Return(user, nil)
		userRepo.On("ApproveRequest", ctx, int32(1), int32(5)).Return(nil)
		orgRepo.On("GetByID", ctx, int32(5)).Return(&domain.Organization{ID: 5, Name: "Acme"}, nil)
		emailSvc.On("SendMembershipDecision", ctx, "jane@acme.com", "Jane", "Acme", true, "").Return(nil)

		err := svc.ApproveMembership(ctx, 5, 1)
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
		emailSvc.AssertExpectations(t)
	})

	t.Run("NotPending", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewMembershipService(userRepo, new(MockOrganizationRepo), new(MockEmailService))

		user := &domain.User{ID: 1, Status: domain.MembershipStatusApproved, OrganizationID: int32Ptr(5)}
		userRepo.On("GetByID", ctx, int32(1)).Return(user, nil)

		err := svc.ApproveMembership(ctx, 5, 1)
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
		userRepo.AssertNotCalled(t, "ApproveRequest", ctx, int32(1), int32(5))
	})

	t.Run("WrongOrganization", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewMembershipService(userRepo, new(MockOrganizationRepo), new(MockEmailService))

		user := &domain.User{ID: 1, Status: domain.MembershipStatusPending, OrganizationRequest: int32Ptr(9)}
		userRepo.On("GetByID", ctx, int32(1)).Return(user, nil)

		err := svc.ApproveMembership(ctx, 5, 1)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("LostRaceOnTransition", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewMembershipService(userRepo, new(MockOrganizationRepo), new(MockEmailService))

		user := &domain.User{ID: 1, Status: domain.MembershipStatusPending, OrganizationRequest: int32Ptr(5)}
		userRepo.On("GetByID", ctx, int32(1)).Return(user, nil)
		userRepo.On("ApproveRequest", ctx, int32(1), int32(5)).Return(domain.ErrInvalidStateTransition)

		err := svc.ApproveMembership(ctx, 5, 1)
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	})
}

func TestMembershipService_RejectMembership(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultReason", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		orgRepo := new(MockOrganizationRepo)
		emailSvc := new(MockEmailService)
		svc := service.NewMembershipService(userRepo, orgRepo, emailSvc)

		user := &domain.User{
			ID:                  1,
			Username:            "jane@acme.com",
			Name:                "Jane",
			Status:              domain.MembershipStatusPending,
			OrganizationRequest: int32Ptr(5),
		}
		userRepo.On("GetByID", ctx, int32(1)).Return(user, nil)
		userRepo.On("RejectRequest", ctx, int32(1), int32(5), "Request rejected").Return(nil)
		orgRepo.On("GetByID", ctx, int32(5)).Return(&domain.Organization{ID: 5, Name: "Acme"}, nil)
		emailSvc.On("SendMembershipDecision", ctx, "jane@acme.com", "Jane", "Acme", false, "Request rejected").Return(nil)

		err := svc.RejectMembership(ctx, 5, 1, "")
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("AlreadyRejected", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewMembershipService(userRepo, new(MockOrganizationRepo), new(MockEmailService))

		reason := "No capacity"
		user := &domain.User{ID: 1, Status: domain.MembershipStatusRejected, RejectionReason: &reason}
		userRepo.On("GetByID", ctx, int32(1)).Return(user, nil)

		err := svc.RejectMembership(ctx, 5, 1, "again")
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
		userRepo.AssertNotCalled(t, "RejectRequest", ctx, int32(1), int32(5), "again")
	})
}
