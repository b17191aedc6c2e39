package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/repository"
)

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

const orgColumns = `id, name, COALESCE(description, ''), status, rejection_reason, total_credits, virtual_balance, created_on`

func scanOrganization(row interface{ Scan(...any) error }) (*domain.Organization, error) {
	o := &domain.Organization{}
	var rejectionReason sql.NullString
	err := row.Scan(&o.ID, &o.Name, &o.Description, &o.Status, &rejectionReason, &o.TotalCredits, &o.VirtualBalance, &o.CreatedOn)
	if err != nil {
		return nil, err
	}
	if rejectionReason.Valid {
		o.RejectionReason = &rejectionReason.String
	}
	return o, nil
}

func (r *organizationRepository) Create(ctx context.Context, o *domain.Organization) error {
	query := `INSERT INTO organizations (name, description, status, total_credits, virtual_balance, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	o.CreatedOn = time.Now().UTC()
	return r.db.QueryRowContext(ctx, query, o.Name, o.Description, o.Status, o.TotalCredits, o.VirtualBalance, o.CreatedOn).Scan(&o.ID)
}

func (r *organizationRepository) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE id = $1`
	o, err := scanOrganization(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return o, err
}

func (r *organizationRepository) ListByStatus(ctx context.Context, status domain.OrganizationStatus) ([]domain.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE status = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, *o)
	}
	return orgs, rows.Err()
}

// Review decides a pending organization. The pending guard is part of the
// statement; review is irreversible.
func (r *organizationRepository) Review(ctx context.Context, orgID int32, status domain.OrganizationStatus, reason *string) error {
	query := `UPDATE organizations SET status = $2, rejection_reason = $3 WHERE id = $1 AND status = 'pending'`
	res, err := r.db.ExecContext(ctx, query, orgID, status, reason)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrInvalidStateTransition
	}
	return nil
}

func (r *organizationRepository) CountCreatedByMonth(ctx context.Context) (map[string]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT to_char(created_on, 'YYYY-MM'), count(*) FROM organizations GROUP BY 1 ORDER BY 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int32)
	for rows.Next() {
		var month string
		var count int32
		if err := rows.Scan(&month, &count); err != nil {
			return nil, err
		}
		counts[month] = count
	}
	return counts, rows.Err()
}
