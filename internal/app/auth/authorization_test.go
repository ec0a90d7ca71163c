package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadex/acadex/internal/app/models"
	"github.com/acadex/acadex/internal/app/repositories"
	"github.com/acadex/acadex/internal/pkg/apperrors"
)

type fakeAccounts struct {
	repositories.AccountStore
	users map[int64]*models.User
	err   error
}

func (f *fakeAccounts) GetByID(_ context.Context, id int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

type fakeProfiles struct {
	repositories.ProfileStore
	profiles map[int64]*models.StudentProfile // keyed by user ID
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID int64) (*models.StudentProfile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	return profile, nil
}

type fakeAchievements struct {
	repositories.AchievementStore
	achievements map[int64]*models.Achievement
}

func (f *fakeAchievements) GetByID(_ context.Context, id int64) (*models.Achievement, error) {
	achievement, ok := f.achievements[id]
	if !ok {
		return nil, apperrors.ErrAchievementNotFound
	}
	return achievement, nil
}

func strPtr(s string) *string { return &s }

func TestCanVerify(t *testing.T) {
	cs := strPtr("Computer Science")

	teachers := map[int64]*models.User{
		10: {ID: 10, RoleType: models.RoleTeacher, IsActive: true, Specialization: cs},
		11: {ID: 11, RoleType: models.RoleTeacher, IsActive: true, Specialization: strPtr("Mechanical Engineering"),
			AdditionalBranches: []string{"Computer Science"}},
		12: {ID: 12, RoleType: models.RoleTeacher, IsActive: true, Specialization: strPtr("Civil Engineering")},
		13: {ID: 13, RoleType: models.RoleTeacher, IsActive: false, Specialization: cs},
		14: {ID: 14, RoleType: models.RoleStudent, IsActive: true},
	}
	profiles := map[int64]*models.StudentProfile{
		1: {ID: 100, UserID: 1, Branch: "Computer Science"},
	}
	achievements := map[int64]*models.Achievement{
		50: {ID: 50, StudentID: 1, Status: models.StatusPending},
	}

	authorizer := NewVerificationAuthorizer(
		&fakeAccounts{users: teachers},
		&fakeProfiles{profiles: profiles},
		&fakeAchievements{achievements: achievements},
	)

	tests := []struct {
		name          string
		teacherID     int64
		achievementID int64
		want          bool
	}{
		{"specialization matches branch", 10, 50, true},
		{"additional branch matches", 11, 50, true},
		{"no branch overlap", 12, 50, false},
		{"inactive teacher", 13, 50, false},
		{"requester is not a teacher", 14, 50, false},
		{"unknown teacher", 99, 50, false},
		{"unknown achievement", 10, 999, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := authorizer.CanVerify(context.Background(), tt.teacherID, tt.achievementID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanVerifyMissingProfileDenies(t *testing.T) {
	authorizer := NewVerificationAuthorizer(
		&fakeAccounts{users: map[int64]*models.User{
			10: {ID: 10, RoleType: models.RoleTeacher, IsActive: true, Specialization: strPtr("Computer Science")},
		}},
		&fakeProfiles{profiles: map[int64]*models.StudentProfile{}},
		&fakeAchievements{achievements: map[int64]*models.Achievement{
			50: {ID: 50, StudentID: 1, Status: models.StatusPending},
		}},
	)

	ok, err := authorizer.CanVerify(context.Background(), 10, 50)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanVerifyStoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection reset")
	authorizer := NewVerificationAuthorizer(
		&fakeAccounts{err: storeErr},
		&fakeProfiles{},
		&fakeAchievements{},
	)

	_, err := authorizer.CanVerify(context.Background(), 10, 50)
	assert.ErrorIs(t, err, storeErr)
}
