package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/acadex/acadex/internal/app/models"
	"github.com/acadex/acadex/internal/app/models/dto"
	"github.com/acadex/acadex/internal/app/repositories"
	"github.com/acadex/acadex/internal/pkg/apperrors"
)

// UserService handles admin account management
type UserService struct {
	userRepo repositories.AccountStore
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.AccountStore, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListUsers returns a page of accounts within the requester's tenant
func (s *UserService) ListUsers(ctx context.Context, params repositories.UserSearchParams) ([]*dto.UserResponse, int64, error) {
	users, total, err := s.userRepo.Search(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewUserResponse(user))
	}

	return responses, total, nil
}

// GetUser returns an account within the requester's tenant
func (s *UserService) GetUser(ctx context.Context, id int64, requesterTenant models.Tenant) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Tenant != requesterTenant {
		return nil, apperrors.ErrUserNotFound
	}

	return dto.NewUserResponse(user), nil
}

// UpdateUser applies an admin update to an account
func (s *UserService) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest, requesterTenant models.Tenant) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Tenant != requesterTenant {
		return nil, apperrors.ErrUserNotFound
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Specialization != nil {
		if !user.IsTeacher() {
			return nil, apperrors.ErrNotATeacher
		}
		user.Specialization = req.Specialization
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return dto.NewUserResponse(user), nil
}

// DeleteUser removes an account. Protected accounts are refused by the store.
func (s *UserService) DeleteUser(ctx context.Context, id int64, requesterTenant models.Tenant) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if user.Tenant != requesterTenant {
		return apperrors.ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", id).Msg("Account deleted")
	return nil
}

// GrantBranches adds branches to a teacher's admin-granted set
func (s *UserService) GrantBranches(ctx context.Context, userID int64, branches []string, requesterTenant models.Tenant) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Tenant != requesterTenant {
		return nil, apperrors.ErrUserNotFound
	}

	if !user.IsTeacher() {
		return nil, apperrors.ErrNotATeacher
	}

	merged := user.AdditionalBranches
	for _, branch := range branches {
		if branch == "" {
			return nil, apperrors.NewBadRequestError("branch name cannot be empty")
		}
		found := false
		for _, existing := range merged {
			if existing == branch {
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, branch)
		}
	}

	if err := s.userRepo.UpdateAdditionalBranches(ctx, userID, merged); err != nil {
		return nil, err
	}

	user.AdditionalBranches = merged
	s.logger.Info().Int64("userID", userID).Strs("branches", branches).Msg("Branches granted")
	return dto.NewUserResponse(user), nil
}

// RevokeBranch removes a branch from a teacher's admin-granted set
func (s *UserService) RevokeBranch(ctx context.Context, userID int64, branch string, requesterTenant models.Tenant) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Tenant != requesterTenant {
		return nil, apperrors.ErrUserNotFound
	}

	if !user.IsTeacher() {
		return nil, apperrors.ErrNotATeacher
	}

	remaining := make([]string, 0, len(user.AdditionalBranches))
	for _, existing := range user.AdditionalBranches {
		if existing != branch {
			remaining = append(remaining, existing)
		}
	}

	if err := s.userRepo.UpdateAdditionalBranches(ctx, userID, remaining); err != nil {
		return nil, err
	}

	user.AdditionalBranches = remaining
	return dto.NewUserResponse(user), nil
}
