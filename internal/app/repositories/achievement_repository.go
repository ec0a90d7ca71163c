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
)

const achievementColumns = `id, student_id, title, description, type, status, feedback, proof_url, verified_by, verified_at, created_at, updated_at`

// AchievementRepository handles database operations for achievements
type AchievementRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAchievementRepository creates a new achievement repository
func NewAchievementRepository(db *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanAchievement(row pgx.Row) (*models.Achievement, error) {
	var a models.Achievement
	err := row.Scan(
		&a.ID,
		&a.StudentID,
		&a.Title,
		&a.Description,
		&a.Type,
		&a.Status,
		&a.Feedback,
		&a.ProofURL,
		&a.VerifiedBy,
		&a.VerifiedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new achievement
func (r *AchievementRepository) Create(ctx context.Context, achievement *models.Achievement) error {
	query := `
		INSERT INTO achievements (student_id, title, description, type, status, feedback, proof_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		achievement.StudentID, achievement.Title, achievement.Description,
		achievement.Type, achievement.Status, achievement.Feedback, achievement.ProofURL, now, now,
	).Scan(&achievement.ID, &achievement.CreatedAt, &achievement.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating achievement: %w", err)
	}

	return nil
}

// GetByID retrieves an achievement by ID
func (r *AchievementRepository) GetByID(ctx context.Context, id int64) (*models.Achievement, error) {
	query := fmt.Sprintf(`SELECT %s FROM achievements WHERE id = $1`, achievementColumns)

	achievement, err := scanAchievement(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAchievementNotFound
		}
		return nil, fmt.Errorf("error retrieving achievement: %w", err)
	}

	return achievement, nil
}

// Update persists the full state of an achievement. Document-style
// last-write-wins: no optimistic concurrency token is involved.
func (r *AchievementRepository) Update(ctx context.Context, achievement *models.Achievement) error {
	query := `
		UPDATE achievements
		SET title = $1, description = $2, type = $3, status = $4, feedback = $5,
			proof_url = $6, verified_by = $7, verified_at = $8, updated_at = $9
		WHERE id = $10
	`

	cmdTag, err := r.db.Exec(ctx, query,
		achievement.Title, achievement.Description, achievement.Type, achievement.Status,
		achievement.Feedback, achievement.ProofURL, achievement.VerifiedBy, achievement.VerifiedAt,
		time.Now(), achievement.ID)
	if err != nil {
		return fmt.Errorf("error updating achievement: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAchievementNotFound
	}

	return nil
}

// Delete removes an achievement
func (r *AchievementRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM achievements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting achievement: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAchievementNotFound
	}

	return nil
}

// ListByStudent retrieves all achievements owned by a student
func (r *AchievementRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Achievement, error) {
	query := fmt.Sprintf(`SELECT %s FROM achievements WHERE student_id = $1 ORDER BY created_at DESC`, achievementColumns)

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing achievements by student: %w", err)
	}
	defer rows.Close()

	return collectAchievements(rows)
}

// List retrieves a page of achievements matching the filter, with the total
// match count. The owner join is inner so achievements whose owning account
// cannot be resolved never appear in a listing.
func (r *AchievementRepository) List(ctx context.Context, filter AchievementFilter) ([]*models.Achievement, int64, error) {
	selectCols := `a.id, a.student_id, a.title, a.description, a.type, a.status, a.feedback,
		a.proof_url, a.verified_by, a.verified_at, a.created_at, a.updated_at`

	base := r.sb.Select(selectCols).
		From("achievements a").
		Join("users u ON u.id = a.student_id").
		Where(squirrel.Eq{"u.tenant": filter.Tenant})

	countBase := r.sb.Select("COUNT(*)").
		From("achievements a").
		Join("users u ON u.id = a.student_id").
		Where(squirrel.Eq{"u.tenant": filter.Tenant})

	apply := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		if filter.StudentID != nil {
			b = b.Where(squirrel.Eq{"a.student_id": *filter.StudentID})
		}
		if filter.TeacherID != nil {
			b = b.Where(`a.student_id IN (SELECT user_id FROM student_profiles WHERE assigned_teacher = ?)`, *filter.TeacherID)
		}
		if filter.Status != nil {
			b = b.Where(squirrel.Eq{"a.status": *filter.Status})
		}
		if filter.Type != nil {
			b = b.Where(squirrel.Eq{"a.type": *filter.Type})
		}
		return b
	}

	base = apply(base)
	countBase = apply(countBase)

	countSQL, countArgs, err := countBase.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build achievement count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting achievements: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	listSQL, listArgs, err := base.OrderBy("a.created_at DESC").Offset(filter.Offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build achievement list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing achievements: %w", err)
	}
	defer rows.Close()

	achievements, err := collectAchievements(rows)
	if err != nil {
		return nil, 0, err
	}

	return achievements, total, nil
}

// CountByStatus aggregates tenant achievements per review status
func (r *AchievementRepository) CountByStatus(ctx context.Context, tenant models.Tenant) (map[models.AchievementStatus]int64, error) {
	query := `
		SELECT a.status, COUNT(*)
		FROM achievements a
		JOIN users u ON u.id = a.student_id
		WHERE u.tenant = $1
		GROUP BY a.status
	`

	rows, err := r.db.Query(ctx, query, tenant)
	if err != nil {
		return nil, fmt.Errorf("error counting achievements by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.AchievementStatus]int64)
	for rows.Next() {
		var status models.AchievementStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// CountByType aggregates tenant achievements per category
func (r *AchievementRepository) CountByType(ctx context.Context, tenant models.Tenant) (map[models.AchievementType]int64, error) {
	query := `
		SELECT a.type, COUNT(*)
		FROM achievements a
		JOIN users u ON u.id = a.student_id
		WHERE u.tenant = $1
		GROUP BY a.type
	`

	rows, err := r.db.Query(ctx, query, tenant)
	if err != nil {
		return nil, fmt.Errorf("error counting achievements by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.AchievementType]int64)
	for rows.Next() {
		var typ models.AchievementType
		var count int64
		if err := rows.Scan(&typ, &count); err != nil {
			return nil, err
		}
		counts[typ] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func collectAchievements(rows pgx.Rows) ([]*models.Achievement, error) {
	var achievements []*models.Achievement
	for rows.Next() {
		achievement, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		achievements = append(achievements, achievement)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return achievements, nil
}
