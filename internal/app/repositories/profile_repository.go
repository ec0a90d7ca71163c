package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadex/acadex/internal/app/models"
	"github.com/acadex/acadex/internal/pkg/apperrors"
	"github.com/acadex/acadex/internal/pkg/dberrors"
)

const profileColumns = `id, user_id, roll_number, branch, year, course, assigned_teacher, created_at, updated_at`

// ProfileRepository handles database operations for student profiles
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

func scanProfile(row pgx.Row) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.RollNumber,
		&profile.Branch,
		&profile.Year,
		&profile.Course,
		&profile.AssignedTeacherID,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Create creates a new student profile
func (r *ProfileRepository) Create(ctx context.Context, profile *models.StudentProfile) error {
	query := `
		INSERT INTO student_profiles (user_id, roll_number, branch, year, course, assigned_teacher, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		profile.UserID, profile.RollNumber, profile.Branch, profile.Year, profile.Course,
		profile.AssignedTeacherID, now, now,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "student_profiles_roll_number_key") {
			return apperrors.ErrRollNumberAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "student_profiles_user_id_key") {
			return apperrors.ErrProfileAlreadyExists
		}
		return fmt.Errorf("error creating student profile: %w", err)
	}

	return nil
}

// GetByID retrieves a profile by its ID
func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*models.StudentProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM student_profiles WHERE id = $1`, profileColumns)

	profile, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}

	return profile, nil
}

// GetByUserID retrieves the profile owned by a student account
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM student_profiles WHERE user_id = $1`, profileColumns)

	profile, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving student profile by user: %w", err)
	}

	return profile, nil
}

// Update updates the mutable fields of a profile
func (r *ProfileRepository) Update(ctx context.Context, profile *models.StudentProfile) error {
	query := `
		UPDATE student_profiles
		SET roll_number = $1, branch = $2, year = $3, course = $4, updated_at = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		profile.RollNumber, profile.Branch, profile.Year, profile.Course, time.Now(), profile.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "student_profiles_roll_number_key") {
			return apperrors.ErrRollNumberAlreadyExists
		}
		return fmt.Errorf("error updating student profile: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}

// ListAll retrieves every profile whose owning account belongs to the tenant.
// The join is inner, so profiles with a missing owner are excluded.
func (r *ProfileRepository) ListAll(ctx context.Context, tenant models.Tenant) ([]*models.StudentProfile, error) {
	query := `
		SELECT p.id, p.user_id, p.roll_number, p.branch, p.year, p.course, p.assigned_teacher, p.created_at, p.updated_at
		FROM student_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE u.tenant = $1
		ORDER BY p.id
	`

	rows, err := r.db.Query(ctx, query, tenant)
	if err != nil {
		return nil, fmt.Errorf("error listing student profiles: %w", err)
	}
	defer rows.Close()

	return collectProfiles(rows)
}

// ListUnassigned retrieves tenant profiles without an assigned teacher
func (r *ProfileRepository) ListUnassigned(ctx context.Context, tenant models.Tenant) ([]*models.StudentProfile, error) {
	query := `
		SELECT p.id, p.user_id, p.roll_number, p.branch, p.year, p.course, p.assigned_teacher, p.created_at, p.updated_at
		FROM student_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE u.tenant = $1 AND p.assigned_teacher IS NULL
		ORDER BY p.id
	`

	rows, err := r.db.Query(ctx, query, tenant)
	if err != nil {
		return nil, fmt.Errorf("error listing unassigned profiles: %w", err)
	}
	defer rows.Close()

	return collectProfiles(rows)
}

// ListByTeacher retrieves the profiles assigned to a teacher
func (r *ProfileRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]*models.StudentProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM student_profiles WHERE assigned_teacher = $1 ORDER BY id`, profileColumns)

	rows, err := r.db.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error listing profiles by teacher: %w", err)
	}
	defer rows.Close()

	return collectProfiles(rows)
}

// CountByAssignedTeacher returns the current workload of a teacher. Always a
// fresh query; assignment decisions must not act on cached counts.
func (r *ProfileRepository) CountByAssignedTeacher(ctx context.Context, teacherID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM student_profiles WHERE assigned_teacher = $1`, teacherID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting assigned students: %w", err)
	}
	return count, nil
}

// UpdateAssignedTeacher sets or clears the assigned teacher reference
func (r *ProfileRepository) UpdateAssignedTeacher(ctx context.Context, profileID int64, teacherID *int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE student_profiles SET assigned_teacher = $1, updated_at = $2 WHERE id = $3`,
		teacherID, time.Now(), profileID)
	if err != nil {
		return fmt.Errorf("error updating assigned teacher: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}

func collectProfiles(rows pgx.Rows) ([]*models.StudentProfile, error) {
	var profiles []*models.StudentProfile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}
