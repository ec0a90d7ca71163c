package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/acadex/acadex/internal/app/models"
	"github.com/acadex/acadex/internal/app/models/dto"
	"github.com/acadex/acadex/internal/app/repositories"
	"github.com/acadex/acadex/internal/pkg/apperrors"
	"github.com/acadex/acadex/internal/pkg/filestorage"
)

// ReviewAuthorizer gates teacher review decisions
type ReviewAuthorizer interface {
	CanVerify(ctx context.Context, teacherUserID, achievementID int64) (bool, error)
}

// AchievementService handles the submit, review, resubmit workflow
type AchievementService struct {
	achievementRepo repositories.AchievementStore
	profileRepo     repositories.ProfileStore
	userRepo        repositories.AccountStore
	authorizer      ReviewAuthorizer
	storage         filestorage.FileStorage
	maxUploadSize   int64
	logger          zerolog.Logger
}

// NewAchievementService creates a new AchievementService
func NewAchievementService(
	achievementRepo repositories.AchievementStore,
	profileRepo repositories.ProfileStore,
	userRepo repositories.AccountStore,
	authorizer ReviewAuthorizer,
	storage filestorage.FileStorage,
	maxUploadSize int64,
	logger zerolog.Logger,
) *AchievementService {
	return &AchievementService{
		achievementRepo: achievementRepo,
		profileRepo:     profileRepo,
		userRepo:        userRepo,
		authorizer:      authorizer,
		storage:         storage,
		maxUploadSize:   maxUploadSize,
		logger:          logger,
	}
}

// Create stores a new achievement for the student. New submissions are
// immediately queued for review, so the persisted record starts at PENDING.
func (s *AchievementService) Create(ctx context.Context, studentUserID int64, req *dto.CreateAchievementRequest, proof *multipart.FileHeader) (*dto.AchievementResponse, error) {
	achievementType := models.AchievementType(strings.ToUpper(req.Type))
	if !achievementType.Valid() {
		return nil, apperrors.NewBadRequestError("unknown achievement type")
	}

	// Students must have a profile before submitting
	if _, err := s.profileRepo.GetByUserID(ctx, studentUserID); err != nil {
		return nil, err
	}

	var proofURL *string
	if proof != nil {
		if err := filestorage.ValidateProof(proof, s.maxUploadSize); err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		url, err := s.storage.SaveFileWithPath(proof, "proofs")
		if err != nil {
			return nil, fmt.Errorf("error saving proof file: %w", err)
		}
		proofURL = &url
	}

	achievement := &models.Achievement{
		StudentID:   studentUserID,
		Title:       req.Title,
		Description: req.Description,
		Type:        achievementType,
		Status:      models.StatusPending,
		ProofURL:    proofURL,
	}

	if err := s.achievementRepo.Create(ctx, achievement); err != nil {
		if proofURL != nil {
			if delErr := s.storage.DeleteFile(*proofURL); delErr != nil {
				s.logger.Warn().Err(delErr).Str("url", *proofURL).
					Msg("Failed to clean up proof after create failure")
			}
		}
		return nil, err
	}

	s.logger.Info().Int64("achievementID", achievement.ID).Int64("studentID", studentUserID).
		Msg("Achievement submitted")

	return dto.NewAchievementResponse(achievement), nil
}

// GetByID returns an achievement the requester is allowed to see
func (s *AchievementService) GetByID(ctx context.Context, requesterID int64, requesterRole models.RoleType, id int64) (*dto.AchievementResponse, error) {
	achievement, err := s.achievementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReadAccess(ctx, requesterID, requesterRole, achievement); err != nil {
		return nil, err
	}

	return dto.NewAchievementResponse(achievement), nil
}

// List returns a page of achievements scoped to the requester's role: students
// see their own, teachers see their assignees', admins see the whole tenant.
func (s *AchievementService) List(ctx context.Context, requesterID int64, requesterRole models.RoleType, filter repositories.AchievementFilter) ([]*dto.AchievementResponse, int64, error) {
	switch requesterRole {
	case models.RoleStudent:
		filter.StudentID = &requesterID
		filter.TeacherID = nil
	case models.RoleTeacher:
		filter.TeacherID = &requesterID
	}

	achievements, total, err := s.achievementRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return dto.NewAchievementListResponse(achievements), total, nil
}

// Update lets the owning student resubmit a rejected achievement: the record
// returns to PENDING and the previous review decision is cleared. Editing in
// any other status is refused, so submissions under review stay frozen.
func (s *AchievementService) Update(ctx context.Context, studentUserID, id int64, req *dto.UpdateAchievementRequest, proof *multipart.FileHeader) (*dto.AchievementResponse, error) {
	achievement, err := s.achievementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if achievement.StudentID != studentUserID {
		return nil, apperrors.NewForbiddenError("only the owner can edit an achievement")
	}

	if achievement.Status != models.StatusRejected {
		return nil, apperrors.NewStateTransitionError(
			fmt.Sprintf("achievement in status %s cannot be edited", achievement.Status))
	}

	achievementType := models.AchievementType(strings.ToUpper(req.Type))
	if !achievementType.Valid() {
		return nil, apperrors.NewBadRequestError("unknown achievement type")
	}

	var oldProofURL *string
	if proof != nil {
		if err := filestorage.ValidateProof(proof, s.maxUploadSize); err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		url, err := s.storage.SaveFileWithPath(proof, "proofs")
		if err != nil {
			return nil, fmt.Errorf("error saving proof file: %w", err)
		}
		oldProofURL = achievement.ProofURL
		achievement.ProofURL = &url
	}

	achievement.Title = req.Title
	achievement.Description = req.Description
	achievement.Type = achievementType

	achievement.Status = models.StatusPending
	achievement.Feedback = nil
	achievement.VerifiedBy = nil
	achievement.VerifiedAt = nil

	if err := s.achievementRepo.Update(ctx, achievement); err != nil {
		return nil, err
	}

	if oldProofURL != nil {
		if delErr := s.storage.DeleteFile(*oldProofURL); delErr != nil {
			s.logger.Warn().Err(delErr).Str("url", *oldProofURL).
				Msg("Failed to delete replaced proof file")
		}
	}

	return dto.NewAchievementResponse(achievement), nil
}

// Delete removes an achievement. Students may delete their own; admins may
// delete any tenant record. The proof file is removed best-effort afterwards.
func (s *AchievementService) Delete(ctx context.Context, requesterID int64, requesterRole models.RoleType, id int64) error {
	achievement, err := s.achievementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if requesterRole != models.RoleAdmin && achievement.StudentID != requesterID {
		return apperrors.NewForbiddenError("only the owner or an admin can delete an achievement")
	}

	if requesterRole == models.RoleAdmin {
		if err := s.checkReadAccess(ctx, requesterID, requesterRole, achievement); err != nil {
			return err
		}
	}

	if err := s.achievementRepo.Delete(ctx, id); err != nil {
		return err
	}

	if achievement.ProofURL != nil {
		if delErr := s.storage.DeleteFile(*achievement.ProofURL); delErr != nil {
			s.logger.Warn().Err(delErr).Str("url", *achievement.ProofURL).
				Msg("Failed to delete proof of removed achievement")
		}
	}

	return nil
}

// Review applies a teacher decision to a pending achievement. The authorizer
// gates every decision; a rejection requires feedback before any state
// changes.
func (s *AchievementService) Review(ctx context.Context, teacherUserID, id int64, req *dto.ReviewAchievementRequest) (*dto.AchievementResponse, error) {
	decision := models.AchievementStatus(strings.ToUpper(req.Decision))
	if decision != models.StatusVerified && decision != models.StatusRejected {
		return nil, apperrors.NewBadRequestError("decision must be VERIFIED or REJECTED")
	}

	if decision == models.StatusRejected && strings.TrimSpace(req.Feedback) == "" {
		return nil, apperrors.ErrFeedbackRequired
	}

	allowed, err := s.authorizer.CanVerify(ctx, teacherUserID, id)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.NewForbiddenError("teacher is not authorized to review this achievement")
	}

	achievement, err := s.achievementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !achievement.Status.CanTransitionTo(decision) {
		return nil, apperrors.NewStateTransitionError(
			fmt.Sprintf("cannot move achievement from %s to %s", achievement.Status, decision))
	}

	now := time.Now()
	achievement.Status = decision
	achievement.VerifiedBy = &teacherUserID
	achievement.VerifiedAt = &now
	if decision == models.StatusRejected {
		feedback := req.Feedback
		achievement.Feedback = &feedback
	} else {
		achievement.Feedback = nil
	}

	if err := s.achievementRepo.Update(ctx, achievement); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("achievementID", id).Int64("teacherID", teacherUserID).
		Str("decision", string(decision)).Msg("Achievement reviewed")

	return dto.NewAchievementResponse(achievement), nil
}

// checkReadAccess enforces who may see a single achievement: the owning
// student, a teacher covering the owner's branch or assigned to the owner,
// and admins of the owner's tenant.
func (s *AchievementService) checkReadAccess(ctx context.Context, requesterID int64, requesterRole models.RoleType, achievement *models.Achievement) error {
	switch requesterRole {
	case models.RoleStudent:
		if achievement.StudentID != requesterID {
			return apperrors.ErrAchievementNotFound
		}
		return nil

	case models.RoleTeacher:
		allowed, err := s.authorizer.CanVerify(ctx, requesterID, achievement.ID)
		if err != nil {
			return err
		}
		if allowed {
			return nil
		}
		profile, err := s.profileRepo.GetByUserID(ctx, achievement.StudentID)
		if err == nil && profile.AssignedTeacherID != nil && *profile.AssignedTeacherID == requesterID {
			return nil
		}
		return apperrors.ErrAchievementNotFound

	case models.RoleAdmin:
		requester, err := s.userRepo.GetByID(ctx, requesterID)
		if err != nil {
			return err
		}
		owner, err := s.userRepo.GetByID(ctx, achievement.StudentID)
		if err != nil {
			return apperrors.ErrAchievementNotFound
		}
		if owner.Tenant != requester.Tenant {
			return apperrors.ErrAchievementNotFound
		}
		return nil
	}

	return apperrors.NewForbiddenError("unknown role")
}
