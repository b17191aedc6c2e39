package service

import (
	"context"
	"fmt"
	"time"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/logger"
	"greencommute-backend/internal/repository"
	"greencommute-backend/internal/utils"

	"github.com/shopspring/decimal"
)

type commuteService struct {
	userRepo    repository.UserRepository
	commuteRepo repository.CommuteLogRepository
	ledgerRepo  repository.LedgerRepository
}

func NewCommuteService(userRepo repository.UserRepository, commuteRepo repository.CommuteLogRepository, ledgerRepo repository.LedgerRepository) CommuteService {
	return &commuteService{
		userRepo:    userRepo,
		commuteRepo: commuteRepo,
		ledgerRepo:  ledgerRepo,
	}
}

func (s *commuteService) SetCommuteDistance(ctx context.Context, userID int32, distance decimal.Decimal) error {
	if distance.Sign() <= 0 {
		return domain.ErrValidation
	}
	return s.userRepo.SetCommuteDistance(ctx, userID, distance)
}

// RecordCommute scores the commute and credits the user's organization.
// The unique index on (user_id, date) carries the one-per-day rule, so
// concurrent submissions for the same day resolve to a single log.
func (s *commuteService) RecordCommute(ctx context.Context, userID int32, date time.Time, method domain.TransportMethod) (*domain.CommuteLog, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.Status != domain.MembershipStatusApproved || user.OrganizationID == nil {
		return nil, domain.ErrNotApproved
	}
	if user.CommuteDistance == nil {
		return nil, domain.ErrMissingCommuteDistance
	}

	points, err := utils.CalculateCommutePoints(*user.CommuteDistance, method)
	if err != nil {
		return nil, err
	}

	log := &domain.CommuteLog{
		UserID:       userID,
		OrgID:        *user.OrganizationID,
		Date:         date.Truncate(24 * time.Hour),
		Method:       method,
		PointsEarned: points,
	}
	if err := s.commuteRepo.Create(ctx, log); err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.Credit(ctx, *user.OrganizationID, points); err != nil {
		return nil, fmt.Errorf("failed to credit organization: %w", err)
	}
	logger.InfoContext(ctx, "Commute logged", "user_id", userID, "org_id", *user.OrganizationID, "points", points.String())

	return log, nil
}

func (s *commuteService) ListUserCommutes(ctx context.Context, userID int32) ([]domain.CommuteLog, error) {
	return s.commuteRepo.ListByUser(ctx, userID)
}

func (s *commuteService) CommuteAnalytics(ctx context.Context, userID int32) (*domain.CommuteAnalytics, error) {
	logs, err := s.commuteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	analytics := &domain.CommuteAnalytics{
		TotalPoints:     decimal.Zero,
		MethodBreakdown: make(map[domain.TransportMethod]int32),
		DailyAverage:    decimal.Zero,
	}
	for _, log := range logs {
		analytics.TotalPoints = analytics.TotalPoints.Add(log.PointsEarned)
		analytics.MethodBreakdown[log.Method]++
	}
	if len(logs) > 0 {
		analytics.DailyAverage = analytics.TotalPoints.DivRound(decimal.NewFromInt(int64(len(logs))), utils.PointsPrecision)
	}
	return analytics, nil
}
