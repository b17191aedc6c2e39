package service

import (
	"context"
	"errors"
	"fmt"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/repository"
	"greencommute-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type authService struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository, tokens security.TokenManager) AuthService {
	return &authService{userRepo: userRepo, orgRepo: orgRepo, tokens: tokens}
}

// Signup creates an unaffiliated user. Employees may name an organization
// to request membership of right away. System admins are provisioned out
// of band, not through signup.
func (s *authService) Signup(ctx context.Context, username, name, password string, role domain.UserRole, orgRequest *int32) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrValidation
	}
	if role != domain.UserRoleEmployee && role != domain.UserRoleOrgAdmin {
		return nil, domain.ErrValidation
	}
	if orgRequest != nil {
		if role != domain.UserRoleEmployee {
			return nil, domain.ErrValidation
		}
		org, err := s.orgRepo.GetByID(ctx, *orgRequest)
		if err != nil {
			return nil, err
		}
		if org.Status != domain.OrganizationStatusApproved {
			return nil, domain.ErrOrganizationNotApproved
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:            username,
		Name:                name,
		PasswordHash:        string(hash),
		Role:                role,
		Status:              domain.MembershipStatusPending,
		OrganizationRequest: orgRequest,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}
