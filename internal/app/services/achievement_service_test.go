package services

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadex/acadex/internal/app/models"
	"github.com/acadex/acadex/internal/app/models/dto"
	"github.com/acadex/acadex/internal/app/repositories"
	"github.com/acadex/acadex/internal/pkg/apperrors"
)

type memAchievements struct {
	repositories.AchievementStore
	achievements map[int64]*models.Achievement
	nextID       int64
}

func (m *memAchievements) Create(_ context.Context, a *models.Achievement) error {
	m.nextID++
	a.ID = m.nextID
	m.achievements[a.ID] = a
	return nil
}

func (m *memAchievements) GetByID(_ context.Context, id int64) (*models.Achievement, error) {
	a, ok := m.achievements[id]
	if !ok {
		return nil, apperrors.ErrAchievementNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *memAchievements) Update(_ context.Context, a *models.Achievement) error {
	if _, ok := m.achievements[a.ID]; !ok {
		return apperrors.ErrAchievementNotFound
	}
	copied := *a
	m.achievements[a.ID] = &copied
	return nil
}

func (m *memAchievements) Delete(_ context.Context, id int64) error {
	if _, ok := m.achievements[id]; !ok {
		return apperrors.ErrAchievementNotFound
	}
	delete(m.achievements, id)
	return nil
}

type stubAuthorizer struct {
	allowed map[int64]bool // keyed by teacher user ID
}

func (s *stubAuthorizer) CanVerify(_ context.Context, teacherUserID, _ int64) (bool, error) {
	return s.allowed[teacherUserID], nil
}

type stubStorage struct {
	saved   []string
	deleted []string
}

func (s *stubStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return s.SaveFileWithPath(fileHeader, "")
}

func (s *stubStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, _ string) (string, error) {
	url := "/uploads/proofs/" + fileHeader.Filename
	s.saved = append(s.saved, url)
	return url, nil
}

func (s *stubStorage) DeleteFile(fileURL string) error {
	s.deleted = append(s.deleted, fileURL)
	return nil
}

type achievementFixture struct {
	svc          *AchievementService
	achievements *memAchievements
	storage      *stubStorage
}

func newAchievementFixture(authorizer *stubAuthorizer) *achievementFixture {
	users := map[int64]*models.User{
		1: student(1),
		2: teacher(2, "Computer Science"),
	}
	profiles := map[int64]*models.StudentProfile{
		10: {ID: 10, UserID: 1, Branch: "Computer Science"},
	}
	achievements := &memAchievements{achievements: map[int64]*models.Achievement{}}
	storage := &stubStorage{}

	svc := NewAchievementService(
		achievements,
		&memProfiles{profiles: profiles},
		&memAccounts{users: users},
		authorizer,
		storage,
		5<<20,
		zerolog.Nop(),
	)

	return &achievementFixture{svc: svc, achievements: achievements, storage: storage}
}

func TestCreateStoresPending(t *testing.T) {
	f := newAchievementFixture(&stubAuthorizer{})

	resp, err := f.svc.Create(context.Background(), 1, &dto.CreateAchievementRequest{
		Title: "State Chess Champion",
		Type:  "SPORTS",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, string(models.StatusPending), resp.Status)
	assert.Equal(t, int64(1), resp.StudentID)
}

func TestCreateRejectsUnknownType(t *testing.T) {
	f := newAchievementFixture(&stubAuthorizer{})

	_, err := f.svc.Create(context.Background(), 1, &dto.CreateAchievementRequest{
		Title: "x",
		Type:  "COOKING",
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestReviewVerifiesPending(t *testing.T) {
	f := newAchievementFixture(&stubAuthorizer{allowed: map[int64]bool{2: true}})
	f.achievements.achievements[1] = &models.Achievement{
		ID: 1, StudentID: 1, Type: models.AchievementSports, Status: models.StatusPending,
	}
	f.achievements.nextID = 1

	resp, err := f.svc.Review(context.Background(), 2, 1, &dto.ReviewAchievementRequest{
		Decision: "VERIFIED",
	})
	require.NoError(t, err)

	assert.Equal(t, string(models.StatusVerified), resp.Status)
	require.NotNil(t, resp.VerifiedBy)
	assert.Equal(t, int64(2), *resp.VerifiedBy)
	assert.NotNil(t, resp.VerifiedAt)
}

func TestReviewRejectionRequiresFeedback(t *testing.T) {
	f := newAchievementFixture(&stubAuthorizer{allowed: map[int64]bool{2: true}})
	f.achievements.achievements[1] = &models.Achievement{
		ID: 1, StudentID: 1, Type: models.AchievementSports, Status: models.StatusPending,
	}

	_, err := f.svc.Review(context.Background(), 2, 1, &dto.ReviewAchievementRequest{
		Decision: "REJECTED",
		Feedback: "   ",
	})
	assert.ErrorIs(t, err, apperrors.ErrFeedbackRequired)

	// Nothing changed
	stored := f.achievements.achievements[1]
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.Nil(t, stored.VerifiedBy)
}

func TestReviewDeniedWithoutAuthorization(t *testing.T) {
	f := newAchievementFixture(&stubAuthorizer{allowed: map[int64]bool{}})
	f.achievements.achievements[1] = &models.Achievement{
		ID: 1, StudentID: 1, Type: models.AchievementSports, Status: models.StatusPending,
	}

	_, err := f.svc.Review(context.Background(), 2, 1, &dto.ReviewAchievementRequest{
		Decision: "VERIFIED",
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestReviewRefusesNonPendingStatus(t *testing.T) {
	f := newAchievementFixture(&stubAuthorizer{allowed: map[int64]bool{2: true}})
	f.achievements.achievements[1] = &models.Achievement{
		ID: 1, StudentID: 1, Type: models.AchievementSports, Status: models.StatusVerified,
	}

	_, err := f.svc.Review(context.Background(), 2, 1, &dto.ReviewAchievementRequest{
		Decision: "REJECTED",
		Feedback: "not valid",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
}

func TestResubmissionResetsRejection(t *testing.T) {
	f := newAchievementFixture(&stubAuthorizer{})
	feedback := "needs a certificate"
	verifier := int64(2)
	f.achievements.achievements[1] = &models.Achievement{
		ID: 1, StudentID: 1, Type: models.AchievementSports,
		Status: models.StatusRejected, Feedback: &feedback, VerifiedBy: &verifier,
	}

	resp, err := f.svc.Update(context.Background(), 1, 1, &dto.UpdateAchievementRequest{
		Title: "State Chess Champion",
		Type:  "SPORTS",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, string(models.StatusPending), resp.Status)
	assert.Nil(t, resp.Feedback)
	assert.Nil(t, resp.VerifiedBy)
}

func TestUpdateRefusedForNonOwner(t *testing.T) {
	f := newAchievementFixture(&stubAuthorizer{})
	f.achievements.achievements[1] = &models.Achievement{
		ID: 1, StudentID: 1, Type: models.AchievementSports, Status: models.StatusRejected,
	}

	_, err := f.svc.Update(context.Background(), 99, 1, &dto.UpdateAchievementRequest{
		Title: "x",
		Type:  "SPORTS",
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUpdateRefusedWhenVerified(t *testing.T) {
	f := newAchievementFixture(&stubAuthorizer{})
	f.achievements.achievements[1] = &models.Achievement{
		ID: 1, StudentID: 1, Type: models.AchievementSports, Status: models.StatusVerified,
	}

	_, err := f.svc.Update(context.Background(), 1, 1, &dto.UpdateAchievementRequest{
		Title: "x",
		Type:  "SPORTS",
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
}

func TestUpdateRefusedWhilePending(t *testing.T) {
	f := newAchievementFixture(&stubAuthorizer{})
	f.achievements.achievements[1] = &models.Achievement{
		ID: 1, StudentID: 1, Title: "Original",
		Type: models.AchievementSports, Status: models.StatusPending,
	}

	_, err := f.svc.Update(context.Background(), 1, 1, &dto.UpdateAchievementRequest{
		Title: "Edited mid-review",
		Type:  "SPORTS",
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)

	stored := f.achievements.achievements[1]
	assert.Equal(t, "Original", stored.Title)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestDeleteRemovesProofFile(t *testing.T) {
	f := newAchievementFixture(&stubAuthorizer{})
	proofURL := "/uploads/proofs/cert.pdf"
	f.achievements.achievements[1] = &models.Achievement{
		ID: 1, StudentID: 1, Type: models.AchievementSports,
		Status: models.StatusPending, ProofURL: &proofURL,
	}

	require.NoError(t, f.svc.Delete(context.Background(), 1, models.RoleStudent, 1))
	assert.Contains(t, f.storage.deleted, proofURL)
	assert.Empty(t, f.achievements.achievements)
}
