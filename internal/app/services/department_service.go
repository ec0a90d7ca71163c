package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/acadex/acadex/internal/app/models"
	"github.com/acadex/acadex/internal/app/models/dto"
	"github.com/acadex/acadex/internal/app/repositories"
	"github.com/acadex/acadex/internal/pkg/apperrors"
)

// DepartmentService handles department reference data
type DepartmentService struct {
	departmentRepo repositories.DepartmentStore
	logger         zerolog.Logger
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(departmentRepo repositories.DepartmentStore, logger zerolog.Logger) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

// ListDepartments returns all departments
func (s *DepartmentService) ListDepartments(ctx context.Context) ([]*dto.DepartmentResponse, error) {
	departments, err := s.departmentRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewDepartmentListResponse(departments), nil
}

// GetDepartment returns a department by ID
func (s *DepartmentService) GetDepartment(ctx context.Context, id int64) (*dto.DepartmentResponse, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewDepartmentResponse(department), nil
}

// CreateDepartment creates a new department
func (s *DepartmentService) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	department := &models.Department{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	}

	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("departmentID", department.ID).Str("name", department.Name).
		Msg("Department created")

	return dto.NewDepartmentResponse(department), nil
}

// UpdateDepartment updates a department
func (s *DepartmentService) UpdateDepartment(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	department.Name = req.Name
	department.Code = req.Code
	department.Description = req.Description

	if err := s.departmentRepo.Update(ctx, department); err != nil {
		return nil, err
	}

	return dto.NewDepartmentResponse(department), nil
}

// DeleteDepartment removes a department. Departments with members in either
// tenant are refused.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id int64) error {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	for _, t := range []models.Tenant{models.TenantProduction, models.TenantDemo} {
		members, err := s.departmentRepo.CountMembers(ctx, department.Name, t)
		if err != nil {
			return err
		}
		if members > 0 {
			return apperrors.ErrDepartmentHasRelations
		}
	}

	return s.departmentRepo.Delete(ctx, id)
}

// CountMembers returns the tenant-scoped membership of a department
func (s *DepartmentService) CountMembers(ctx context.Context, id int64, tenant models.Tenant) (int64, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return s.departmentRepo.CountMembers(ctx, department.Name, tenant)
}
