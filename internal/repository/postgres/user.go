package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, name, password_hash, role, status, organization_id, organization_request, rejection_reason, commute_distance, created_on`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	var orgID, orgRequest sql.NullInt32
	var rejectionReason sql.NullString
	var distance sql.NullString
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.Role, &u.Status, &orgID, &orgRequest, &rejectionReason, &distance, &u.CreatedOn)
	if err != nil {
		return nil, err
	}
	if orgID.Valid {
		u.OrganizationID = &orgID.Int32
	}
	if orgRequest.Valid {
		u.OrganizationRequest = &orgRequest.Int32
	}
	if rejectionReason.Valid {
		u.RejectionReason = &rejectionReason.String
	}
	if distance.Valid {
		d, err := decimal.NewFromString(distance.String)
		if err != nil {
			return nil, err
		}
		u.CommuteDistance = &d
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (username, name, password_hash, role, status, organization_id, organization_request, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	u.CreatedOn = time.Now().UTC()
	return r.db.QueryRowContext(ctx, query, u.Username, u.Name, u.PasswordHash, u.Role, u.Status, u.OrganizationID, u.OrganizationRequest, u.CreatedOn).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1)`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

func (r *userRepository) SetCommuteDistance(ctx context.Context, userID int32, distance decimal.Decimal) error {
	query := `UPDATE users SET commute_distance = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, distance.String(), userID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RequestJoin marks the user as pending for the given organization. The
// WHERE clause admits only unaffiliated or rejected users, so the state
// check and the write are one statement.
func (r *userRepository) RequestJoin(ctx context.Context, userID, orgID int32) error {
	query := `UPDATE users SET status = 'pending', organization_request = $2, rejection_reason = NULL
	          WHERE id = $1 AND organization_id IS NULL AND organization_request IS NULL AND status <> 'approved'`
	res, err := r.db.ExecContext(ctx, query, userID, orgID)
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

// ApproveRequest moves a user pending on orgID into the organization and
// clears the pending marker.
func (r *userRepository) ApproveRequest(ctx context.Context, userID, orgID int32) error {
	query := `UPDATE users SET status = 'approved', organization_id = $2, organization_request = NULL, rejection_reason = NULL
	          WHERE id = $1 AND status = 'pending' AND organization_request = $2`
	res, err := r.db.ExecContext(ctx, query, userID, orgID)
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

// RejectRequest records the rejection and clears the pending marker.
func (r *userRepository) RejectRequest(ctx context.Context, userID, orgID int32, reason string) error {
	query := `UPDATE users SET status = 'rejected', organization_request = NULL, rejection_reason = $3
	          WHERE id = $1 AND status = 'pending' AND organization_request = $2`
	res, err := r.db.ExecContext(ctx, query, userID, orgID, reason)
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

// AttachToOrganization sets a user directly to approved membership of the
// organization. Used when an org admin registers their own organization.
func (r *userRepository) AttachToOrganization(ctx context.Context, userID, orgID int32) error {
	query := `UPDATE users SET status = 'approved', organization_id = $2, organization_request = NULL WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, userID, orgID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) ListPendingByOrg(ctx context.Context, orgID int32) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE status = 'pending' AND organization_request = $1 ORDER BY created_on`
	return r.queryUsers(ctx, query, orgID)
}

func (r *userRepository) ListByOrg(ctx context.Context, orgID int32) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE organization_id = $1 ORDER BY id`
	return r.queryUsers(ctx, query, orgID)
}

func (r *userRepository) GetOrgAdmin(ctx context.Context, orgID int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE organization_id = $1 AND role = 'org_admin' ORDER BY id LIMIT 1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, orgID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

func (r *userRepository) queryUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepository) CountByRole(ctx context.Context) (map[domain.UserRole]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role, count(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.UserRole]int32)
	for rows.Next() {
		var role domain.UserRole
		var count int32
		if err := rows.Scan(&role, &count); err != nil {
			return nil, err
		}
		counts[role] = count
	}
	return counts, rows.Err()
}

func (r *userRepository) CountCreatedByMonth(ctx context.Context) (map[string]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT to_char(created_on, 'YYYY-MM'), count(*) FROM users GROUP BY 1 ORDER BY 1`)
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
