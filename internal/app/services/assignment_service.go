package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/acadex/acadex/internal/app/models"
	"github.com/acadex/acadex/internal/app/models/dto"
	"github.com/acadex/acadex/internal/app/repositories"
	"github.com/acadex/acadex/internal/pkg/apperrors"
)

// AssignmentService handles student profiles and mentor teacher assignment
type AssignmentService struct {
	userRepo    repositories.AccountStore
	profileRepo repositories.ProfileStore
	logger      zerolog.Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	userRepo repositories.AccountStore,
	profileRepo repositories.ProfileStore,
	logger zerolog.Logger,
) *AssignmentService {
	return &AssignmentService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// GetOwnProfile returns the profile of the authenticated student
func (s *AssignmentService) GetOwnProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile.AssignedTeacherID != nil {
		teacher, err := s.userRepo.GetByID(ctx, *profile.AssignedTeacherID)
		if err == nil {
			profile.AssignedTeacher = teacher
		}
	}

	return dto.NewProfileResponse(profile), nil
}

// UpdateOwnProfile updates the profile of the authenticated student
func (s *AssignmentService) UpdateOwnProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.RollNumber = req.RollNumber
	profile.Branch = req.Branch
	profile.Year = req.Year
	profile.Course = req.Course

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return dto.NewProfileResponse(profile), nil
}

// ListProfiles returns all profiles within a tenant
func (s *AssignmentService) ListProfiles(ctx context.Context, tenant models.Tenant) ([]*dto.ProfileResponse, error) {
	profiles, err := s.profileRepo.ListAll(ctx, tenant)
	if err != nil {
		return nil, err
	}
	return dto.NewProfileListResponse(profiles), nil
}

// ListUnassigned returns tenant profiles without an assigned teacher
func (s *AssignmentService) ListUnassigned(ctx context.Context, tenant models.Tenant) ([]*dto.ProfileResponse, error) {
	profiles, err := s.profileRepo.ListUnassigned(ctx, tenant)
	if err != nil {
		return nil, err
	}
	return dto.NewProfileListResponse(profiles), nil
}

// ListByTeacher returns the profiles assigned to a teacher
func (s *AssignmentService) ListByTeacher(ctx context.Context, teacherID int64) ([]*dto.ProfileResponse, error) {
	profiles, err := s.profileRepo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return dto.NewProfileListResponse(profiles), nil
}

// AutoAssignTeacher picks the least loaded eligible teacher for a profile and
// persists the assignment. Teachers specializing in the student's branch are
// preferred; when none exist, every teacher in the student's tenant is a
// candidate. Workloads are counted fresh at decision time, and ties go to the
// lowest account ID so repeated runs over the same state are deterministic.
func (s *AssignmentService) AutoAssignTeacher(ctx context.Context, profileID int64) (*dto.UserResponse, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetByID(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.userRepo.ListTeachersByBranch(ctx, profile.Branch, owner.Tenant)
	if err != nil {
		return nil, fmt.Errorf("error listing branch teachers: %w", err)
	}

	if len(candidates) == 0 {
		candidates, err = s.userRepo.ListByRole(ctx, models.RoleTeacher, owner.Tenant)
		if err != nil {
			return nil, fmt.Errorf("error listing teachers: %w", err)
		}
	}

	if len(candidates) == 0 {
		return nil, apperrors.ErrNoTeacherAvailable
	}

	var chosen *models.User
	var chosenLoad int64

	// Candidates arrive ordered by ID, so keeping the first minimum
	// implements the lowest-ID tie-break.
	for _, candidate := range candidates {
		load, err := s.profileRepo.CountByAssignedTeacher(ctx, candidate.ID)
		if err != nil {
			return nil, fmt.Errorf("error counting teacher workload: %w", err)
		}
		if chosen == nil || load < chosenLoad {
			chosen = candidate
			chosenLoad = load
		}
	}

	if err := s.profileRepo.UpdateAssignedTeacher(ctx, profileID, &chosen.ID); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("profileID", profileID).Int64("teacherID", chosen.ID).
		Int64("workload", chosenLoad).Msg("Teacher auto-assigned")

	return dto.NewUserResponse(chosen), nil
}

// AutoAssignAll assigns a teacher to every unassigned profile in the tenant.
// Failures are reported per profile and never abort the batch.
func (s *AssignmentService) AutoAssignAll(ctx context.Context, tenant models.Tenant) (*dto.BatchAssignResponse, error) {
	profiles, err := s.profileRepo.ListUnassigned(ctx, tenant)
	if err != nil {
		return nil, err
	}

	response := &dto.BatchAssignResponse{
		Results: make([]*dto.AssignmentResultResponse, 0, len(profiles)),
	}

	for _, profile := range profiles {
		result := &dto.AssignmentResultResponse{ProfileID: profile.ID}

		teacher, err := s.AutoAssignTeacher(ctx, profile.ID)
		if err != nil {
			result.Error = err.Error()
			response.Failed++
		} else {
			result.Teacher = teacher
			response.Assigned++
		}

		response.Results = append(response.Results, result)
	}

	return response, nil
}

// AssignTeacher sets a specific teacher on a profile, bypassing workload
// balancing. The target must be an active teacher in the student's tenant.
func (s *AssignmentService) AssignTeacher(ctx context.Context, profileID, teacherID int64) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetByID(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}

	teacher, err := s.userRepo.GetByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	if !teacher.IsTeacher() {
		return nil, apperrors.ErrNotATeacher
	}

	if !teacher.IsActive || teacher.Tenant != owner.Tenant {
		return nil, apperrors.NewBadRequestError("teacher is not available for this student")
	}

	if err := s.profileRepo.UpdateAssignedTeacher(ctx, profileID, &teacherID); err != nil {
		return nil, err
	}

	profile.AssignedTeacherID = &teacherID
	profile.AssignedTeacher = teacher
	return dto.NewProfileResponse(profile), nil
}

// RemoveTeacher clears the assigned teacher of a profile
func (s *AssignmentService) RemoveTeacher(ctx context.Context, profileID int64) error {
	if _, err := s.profileRepo.GetByID(ctx, profileID); err != nil {
		return err
	}
	return s.profileRepo.UpdateAssignedTeacher(ctx, profileID, nil)
}
