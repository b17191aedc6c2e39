package service

import (
	"context"
	"fmt"
	"time"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// analyticsService derives read-only views from committed state. It runs
// lock-free; slightly stale numbers are acceptable here.
type analyticsService struct {
	orgRepo     repository.OrganizationRepository
	userRepo    repository.UserRepository
	commuteRepo repository.CommuteLogRepository
	listingRepo repository.ListingRepository
}

func NewAnalyticsService(
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
	commuteRepo repository.CommuteLogRepository,
	listingRepo repository.ListingRepository,
) AnalyticsService {
	return &analyticsService{
		orgRepo:     orgRepo,
		userRepo:    userRepo,
		commuteRepo: commuteRepo,
		listingRepo: listingRepo,
	}
}

func (s *analyticsService) OrganizationSummary(ctx context.Context, orgID int32) (*domain.OrganizationSummary, error) {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	members, err := s.userRepo.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	thirtyDaysAgo := time.Now().UTC().AddDate(0, 0, -30)
	logs, err := s.commuteRepo.ListByOrgSince(ctx, orgID, thirtyDaysAgo)
	if err != nil {
		return nil, fmt.Errorf("failed to list commute logs: %w", err)
	}

	summary := &domain.OrganizationSummary{
		OrganizationName:   org.Name,
		TotalPoints:        decimal.Zero,
		TotalCredits:       org.TotalCredits,
		VirtualBalance:     org.VirtualBalance,
		EmployeeCount:      int32(len(members)),
		MethodDistribution: make(map[domain.TransportMethod]int32),
		DailyTrend:         make(map[string]decimal.Decimal),
	}

	perUser := make(map[int32]*domain.EmployeeStats, len(members))
	for i := range members {
		m := &members[i]
		perUser[m.ID] = &domain.EmployeeStats{UserID: m.ID, Name: m.Name, TotalPoints: decimal.Zero}
	}

	for _, log := range logs {
		summary.TotalPoints = summary.TotalPoints.Add(log.PointsEarned)
		summary.MethodDistribution[log.Method]++
		day := log.Date.Format("2006-01-02")
		summary.DailyTrend[day] = summary.DailyTrend[day].Add(log.PointsEarned)
		if st, ok := perUser[log.UserID]; ok {
			st.TotalPoints = st.TotalPoints.Add(log.PointsEarned)
			st.LogCount++
		}
	}

	summary.EmployeeStats = make([]domain.EmployeeStats, 0, len(perUser))
	for _, m := range members {
		summary.EmployeeStats = append(summary.EmployeeStats, *perUser[m.ID])
	}
	return summary, nil
}

func (s *analyticsService) SystemSummary(ctx context.Context) (*domain.SystemSummary, error) {
	userGrowth, err := s.userRepo.CountCreatedByMonth(ctx)
	if err != nil {
		return nil, err
	}
	orgGrowth, err := s.orgRepo.CountCreatedByMonth(ctx)
	if err != nil {
		return nil, err
	}
	roleCounts, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.listingRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	sold, err := s.listingRepo.ListSold(ctx)
	if err != nil {
		return nil, err
	}

	summary := &domain.SystemSummary{
		TotalCreditsTraded: decimal.Zero,
		TotalTradingVolume: decimal.Zero,
		UserGrowth:         userGrowth,
		OrganizationGrowth: orgGrowth,
		TradingActivity:    make(map[string]domain.MonthlyTrading),
		UserDistribution:   roleCounts,
		ActiveListings:     int32(len(active)),
		CompletedTrades:    int32(len(sold)),
	}
	for _, count := range userGrowth {
		summary.TotalUsers += count
	}
	for _, count := range orgGrowth {
		summary.TotalOrganizations += count
	}
	for _, l := range sold {
		value := l.TotalCost()
		summary.TotalCreditsTraded = summary.TotalCreditsTraded.Add(l.CreditsAmount)
		summary.TotalTradingVolume = summary.TotalTradingVolume.Add(value)

		month := l.CreatedOn.Format("2006-01")
		mt := summary.TradingActivity[month]
		mt.Credits = mt.Credits.Add(l.CreditsAmount)
		mt.Volume = mt.Volume.Add(value)
		summary.TradingActivity[month] = mt
	}
	return summary, nil
}
