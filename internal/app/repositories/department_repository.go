package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadex/acadex/internal/app/models"
	"github.com/acadex/acadex/internal/pkg/apperrors"
	"github.com/acadex/acadex/internal/pkg/dberrors"
)

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
	}
}

func scanDepartment(row pgx.Row) (*models.Department, error) {
	var d models.Department
	err := row.Scan(&d.ID, &d.Name, &d.Code, &d.Description)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	query := `
		INSERT INTO departments (name, code, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		department.Name, department.Code, department.Description).Scan(&department.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDepartmentAlreadyExists
		}
		return fmt.Errorf("error creating department: %w", err)
	}

	return nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	department, err := scanDepartment(r.db.QueryRow(ctx,
		`SELECT id, name, code, description FROM departments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	return department, nil
}

// GetByName retrieves a department by its name
func (r *DepartmentRepository) GetByName(ctx context.Context, name string) (*models.Department, error) {
	department, err := scanDepartment(r.db.QueryRow(ctx,
		`SELECT id, name, code, description FROM departments WHERE name = $1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department by name: %w", err)
	}

	return department, nil
}

// GetAll retrieves all departments ordered by name. Departments are shared
// reference data, not tenant partitioned.
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, code, description FROM departments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error listing departments: %w", err)
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		department, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		departments = append(departments, department)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

// Update updates a department
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE departments SET name = $1, code = $2, description = $3 WHERE id = $4`,
		department.Name, department.Code, department.Description, department.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDepartmentAlreadyExists
		}
		return fmt.Errorf("error updating department: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}

	return nil
}

// Delete deletes a department
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting department: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}

	return nil
}

// CountMembers counts tenant accounts attached to a department name, either
// through a student profile branch or a teacher specialization.
func (r *DepartmentRepository) CountMembers(ctx context.Context, name string, tenant models.Tenant) (int64, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM student_profiles p JOIN users u ON u.id = p.user_id
				WHERE p.branch = $1 AND u.tenant = $2)
			+
			(SELECT COUNT(*) FROM users
				WHERE role_type = $3 AND specialization = $1 AND tenant = $2)
	`

	var count int64
	err := r.db.QueryRow(ctx, query, name, tenant, models.RoleTeacher).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting department members: %w", err)
	}

	return count, nil
}
