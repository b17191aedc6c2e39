package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/repository"

	"github.com/lib/pq"
)

type commuteLogRepository struct {
	db *sql.DB
}

func NewCommuteLogRepository(db *sql.DB) repository.CommuteLogRepository {
	return &commuteLogRepository{db: db}
}

// Create inserts the log. The one-per-user-per-day rule is the unique
// index on (user_id, date); a violation maps to ErrDuplicateCommuteLog so
// concurrent submissions for the same day cannot both land.
func (r *commuteLogRepository) Create(ctx context.Context, log *domain.CommuteLog) error {
	query := `INSERT INTO commute_logs (user_id, org_id, date, method, points_earned, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	log.CreatedOn = time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, log.UserID, log.OrgID, log.Date.Format("2006-01-02"), log.Method, log.PointsEarned, log.CreatedOn).Scan(&log.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ErrDuplicateCommuteLog
	}
	return err
}

func (r *commuteLogRepository) ListByUser(ctx context.Context, userID int32) ([]domain.CommuteLog, error) {
	query := `SELECT id, user_id, org_id, date, method, points_earned, created_on
	          FROM commute_logs WHERE user_id = $1 ORDER BY date DESC`
	return r.queryLogs(ctx, query, userID)
}

func (r *commuteLogRepository) ListByOrgSince(ctx context.Context, orgID int32, since time.Time) ([]domain.CommuteLog, error) {
	query := `SELECT id, user_id, org_id, date, method, points_earned, created_on
	          FROM commute_logs WHERE org_id = $1 AND date >= $2 ORDER BY date DESC`
	return r.queryLogs(ctx, query, orgID, since.Format("2006-01-02"))
}

func (r *commuteLogRepository) queryLogs(ctx context.Context, query string, args ...any) ([]domain.CommuteLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.CommuteLog
	for rows.Next() {
		var l domain.CommuteLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.OrgID, &l.Date, &l.Method, &l.PointsEarned, &l.CreatedOn); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
