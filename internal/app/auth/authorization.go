package auth

import (
	"context"

	"github.com/acadex/acadex/internal/app/repositories"
	"github.com/acadex/acadex/internal/pkg/apperrors"
)

// VerificationAuthorizer decides whether a teacher may verify or reject a
// given achievement. The decision is evaluated fresh on every call, against
// the current state of the accounts and profiles involved.
type VerificationAuthorizer struct {
	userRepo    repositories.AccountStore
	profileRepo repositories.ProfileStore
	achRepo     repositories.AchievementStore
}

// NewVerificationAuthorizer creates a new verification authorizer
func NewVerificationAuthorizer(
	userRepo repositories.AccountStore,
	profileRepo repositories.ProfileStore,
	achRepo repositories.AchievementStore,
) *VerificationAuthorizer {
	return &VerificationAuthorizer{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		achRepo:     achRepo,
	}
}

// CanVerify reports whether the teacher may review the achievement. A teacher
// qualifies when the owning student's branch matches the teacher's
// specialization, or appears in the teacher's admin-granted branches. Any
// entity that cannot be resolved denies the request rather than failing open.
func (a *VerificationAuthorizer) CanVerify(ctx context.Context, teacherUserID, achievementID int64) (bool, error) {
	teacher, err := a.userRepo.GetByID(ctx, teacherUserID)
	if err != nil {
		if isMissingEntity(err) {
			return false, nil
		}
		return false, err
	}

	if !teacher.IsTeacher() || !teacher.IsActive {
		return false, nil
	}

	achievement, err := a.achRepo.GetByID(ctx, achievementID)
	if err != nil {
		if isMissingEntity(err) {
			return false, nil
		}
		return false, err
	}

	profile, err := a.profileRepo.GetByUserID(ctx, achievement.StudentID)
	if err != nil {
		if isMissingEntity(err) {
			return false, nil
		}
		return false, err
	}

	return teacher.HasBranch(profile.Branch), nil
}

func isMissingEntity(err error) bool {
	switch err {
	case apperrors.ErrUserNotFound,
		apperrors.ErrProfileNotFound,
		apperrors.ErrAchievementNotFound,
		apperrors.ErrResourceNotFound:
		return true
	}
	return false
}
