package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadex/acadex/internal/app/models"
	"github.com/acadex/acadex/internal/pkg/apperrors"
	"github.com/acadex/acadex/internal/pkg/dberrors"
)

const userColumns = `id, email, password, first_name, last_name, role_type, tenant,
	specialization, additional_branches, is_active, is_protected, created_at, updated_at, last_login_at`

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.RoleType,
		&user.Tenant,
		&user.Specialization,
		&user.AdditionalBranches,
		&user.IsActive,
		&user.IsProtected,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create creates a new user account
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.AdditionalBranches == nil {
		user.AdditionalBranches = []string{}
	}

	query := `
		INSERT INTO users (email, password, first_name, last_name, role_type, tenant,
			specialization, additional_branches, is_active, is_protected, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		user.Email, user.Password, user.FirstName, user.LastName, user.RoleType, user.Tenant,
		user.Specialization, user.AdditionalBranches, user.IsActive, user.IsProtected, now, now,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}

	return user, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// Update updates an existing user account
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if user.AdditionalBranches == nil {
		user.AdditionalBranches = []string{}
	}

	query := `
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3, role_type = $4, tenant = $5,
			specialization = $6, additional_branches = $7, is_active = $8, updated_at = $9
		WHERE id = $10
	`

	cmdTag, err := r.db.Exec(ctx, query,
		user.Email, user.FirstName, user.LastName, user.RoleType, user.Tenant,
		user.Specialization, user.AdditionalBranches, user.IsActive, time.Now(), user.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating user: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// Delete deletes a user account. Protected accounts are refused.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if user.IsProtected {
		return apperrors.ErrUserProtected
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// ListByRole retrieves all users of a role within a tenant, ordered by ID so
// iteration order is deterministic.
func (r *UserRepository) ListByRole(ctx context.Context, role models.RoleType, tenant models.Tenant) ([]*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE role_type = $1 AND tenant = $2 AND is_active ORDER BY id`, userColumns)

	rows, err := r.db.Query(ctx, query, role, tenant)
	if err != nil {
		return nil, fmt.Errorf("error listing users by role: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// ListTeachersByBranch retrieves active teachers whose specialization matches
// the branch, within a tenant, ordered by ID.
func (r *UserRepository) ListTeachersByBranch(ctx context.Context, branch string, tenant models.Tenant) ([]*models.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE role_type = $1 AND tenant = $2 AND specialization = $3 AND is_active
		ORDER BY id`, userColumns)

	rows, err := r.db.Query(ctx, query, models.RoleTeacher, tenant, branch)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers by branch: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// Search retrieves a page of users matching the given filters, together with
// the total match count.
func (r *UserRepository) Search(ctx context.Context, params UserSearchParams) ([]*models.User, int64, error) {
	base := r.sb.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"tenant": params.Tenant})

	countBase := r.sb.Select("COUNT(*)").
		From("users").
		Where(squirrel.Eq{"tenant": params.Tenant})

	if params.Role != nil {
		base = base.Where(squirrel.Eq{"role_type": *params.Role})
		countBase = countBase.Where(squirrel.Eq{"role_type": *params.Role})
	}

	if params.Query != "" {
		like := "%" + params.Query + "%"
		cond := squirrel.Or{
			squirrel.ILike{"email": like},
			squirrel.ILike{"first_name": like},
			squirrel.ILike{"last_name": like},
		}
		base = base.Where(cond)
		countBase = countBase.Where(cond)
	}

	countSQL, countArgs, err := countBase.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build user count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 10
	}

	listSQL, listArgs, err := base.OrderBy("id").Offset(params.Offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build user search query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error searching users: %w", err)
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// UpdateAdditionalBranches replaces the admin-granted branch set of a teacher
func (r *UserRepository) UpdateAdditionalBranches(ctx context.Context, userID int64, branches []string) error {
	if branches == nil {
		branches = []string{}
	}

	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET additional_branches = $1, updated_at = $2 WHERE id = $3`,
		branches, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("error updating additional branches: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin records the time of a successful login
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET last_login_at = $1 WHERE id = $2`, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

func collectUsers(rows pgx.Rows) ([]*models.User, error) {
	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
