package jobs

import (
	"context"
	"time"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/logger"

	"github.com/shopspring/decimal"
)

// SendPointsDigest emails each organization admin the credits their
// organization earned yesterday. Read-side only.
func (jr *JobRunner) SendPointsDigest() {
	jr.runWithRecovery("SendPointsDigest", func() {
		ctx := context.Background()
		orgs, err := jr.store.OrganizationRepository.ListByStatus(ctx, domain.OrganizationStatusApproved)
		if err != nil {
			logger.Error("Failed to list organizations", "job", "SendPointsDigest", "error", err)
			return
		}

		yesterday := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)
		for _, org := range orgs {
			logs, err := jr.store.CommuteLogRepository.ListByOrgSince(ctx, org.ID, yesterday)
			if err != nil {
				logger.Error("Failed to list commute logs", "org_id", org.ID, "error", err)
				continue
			}

			points := decimal.Zero
			count := 0
			for _, l := range logs {
				if l.Date.Before(yesterday.AddDate(0, 0, 1)) {
					points = points.Add(l.PointsEarned)
					count++
				}
			}
			if count == 0 {
				continue
			}

			admin, err := jr.store.UserRepository.GetOrgAdmin(ctx, org.ID)
			if err != nil {
				continue
			}
			if err := jr.emailSvc.SendPointsDigest(ctx, admin.Username, admin.Name, org.Name, points, count); err != nil {
				logger.Error("Failed to send points digest", "org_id", org.ID, "error", err)
			}
		}
	})
}

// SendMembershipReminders nudges org admins about pending join requests.
func (jr *JobRunner) SendMembershipReminders() {
	jr.runWithRecovery("SendMembershipReminders", func() {
		ctx := context.Background()
		orgs, err := jr.store.OrganizationRepository.ListByStatus(ctx, domain.OrganizationStatusApproved)
		if err != nil {
			logger.Error("Failed to list organizations", "job", "SendMembershipReminders", "error", err)
			return
		}

		for _, org := range orgs {
			pending, err := jr.store.UserRepository.ListPendingByOrg(ctx, org.ID)
			if err != nil || len(pending) == 0 {
				continue
			}
			admin, err := jr.store.UserRepository.GetOrgAdmin(ctx, org.ID)
			if err != nil {
				continue
			}
			if err := jr.emailSvc.SendMembershipReminder(ctx, admin.Username, admin.Name, org.Name, len(pending)); err != nil {
				logger.Error("Failed to send membership reminder", "org_id", org.ID, "error", err)
			}
		}
	})
}
