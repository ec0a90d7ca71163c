package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/acadex/acadex/internal/app/models"
	"github.com/acadex/acadex/internal/app/models/dto"
	"github.com/acadex/acadex/internal/app/repositories"
)

// StatsService produces tenant-scoped reporting counters
type StatsService struct {
	userRepo        repositories.AccountStore
	profileRepo     repositories.ProfileStore
	achievementRepo repositories.AchievementStore
	departmentRepo  repositories.DepartmentStore
	logger          zerolog.Logger
}

// NewStatsService creates a new StatsService
func NewStatsService(
	userRepo repositories.AccountStore,
	profileRepo repositories.ProfileStore,
	achievementRepo repositories.AchievementStore,
	departmentRepo repositories.DepartmentStore,
	logger zerolog.Logger,
) *StatsService {
	return &StatsService{
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		achievementRepo: achievementRepo,
		departmentRepo:  departmentRepo,
		logger:          logger,
	}
}

// Overview assembles the dashboard counters for one tenant. Every number is
// derived from records owned by accounts of that tenant only.
func (s *StatsService) Overview(ctx context.Context, tenant models.Tenant) (*dto.StatsResponse, error) {
	students, err := s.userRepo.ListByRole(ctx, models.RoleStudent, tenant)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	teachers, err := s.userRepo.ListByRole(ctx, models.RoleTeacher, tenant)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}

	byStatus, err := s.achievementRepo.CountByStatus(ctx, tenant)
	if err != nil {
		return nil, err
	}

	byType, err := s.achievementRepo.CountByType(ctx, tenant)
	if err != nil {
		return nil, err
	}

	var total int64
	statusCounts := make(map[string]int64, len(byStatus))
	for status, count := range byStatus {
		statusCounts[string(status)] = count
		total += count
	}
	typeCounts := make(map[string]int64, len(byType))
	for typ, count := range byType {
		typeCounts[string(typ)] = count
	}

	workloads := make([]dto.TeacherWorkload, 0, len(teachers))
	for _, teacher := range teachers {
		count, err := s.profileRepo.CountByAssignedTeacher(ctx, teacher.ID)
		if err != nil {
			return nil, err
		}
		workloads = append(workloads, dto.TeacherWorkload{
			TeacherID: teacher.ID,
			Name:      teacher.FirstName + " " + teacher.LastName,
			Students:  count,
		})
	}

	departments, err := s.departmentRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	departmentStats := make([]dto.DepartmentStats, 0, len(departments))
	for _, department := range departments {
		members, err := s.departmentRepo.CountMembers(ctx, department.Name, tenant)
		if err != nil {
			return nil, err
		}
		departmentStats = append(departmentStats, dto.DepartmentStats{
			DepartmentID: department.ID,
			Name:         department.Name,
			Members:      members,
		})
	}

	return &dto.StatsResponse{
		Students: int64(len(students)),
		Teachers: int64(len(teachers)),
		Achievements: dto.AchievementStats{
			Total:    total,
			ByStatus: statusCounts,
			ByType:   typeCounts,
		},
		TeacherWorkloads: workloads,
		Departments:      departmentStats,
	}, nil
}
