package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadex/acadex/internal/app/models"
	"github.com/acadex/acadex/internal/app/repositories"
	"github.com/acadex/acadex/internal/pkg/apperrors"
)

type memAccounts struct {
	repositories.AccountStore
	users map[int64]*models.User
}

func (m *memAccounts) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (m *memAccounts) ListByRole(_ context.Context, role models.RoleType, tenant models.Tenant) ([]*models.User, error) {
	return m.selectUsers(func(u *models.User) bool {
		return u.RoleType == role && u.Tenant == tenant && u.IsActive
	}), nil
}

func (m *memAccounts) ListTeachersByBranch(_ context.Context, branch string, tenant models.Tenant) ([]*models.User, error) {
	return m.selectUsers(func(u *models.User) bool {
		return u.RoleType == models.RoleTeacher && u.Tenant == tenant && u.IsActive &&
			u.Specialization != nil && *u.Specialization == branch
	}), nil
}

// selectUsers returns matches ordered by ID, like the SQL implementation.
func (m *memAccounts) selectUsers(match func(*models.User) bool) []*models.User {
	var maxID int64
	for id := range m.users {
		if id > maxID {
			maxID = id
		}
	}
	var out []*models.User
	for id := int64(1); id <= maxID; id++ {
		if user, ok := m.users[id]; ok && match(user) {
			out = append(out, user)
		}
	}
	return out
}

type memProfiles struct {
	repositories.ProfileStore
	profiles map[int64]*models.StudentProfile
}

func (m *memProfiles) GetByID(_ context.Context, id int64) (*models.StudentProfile, error) {
	profile, ok := m.profiles[id]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	return profile, nil
}

func (m *memProfiles) GetByUserID(_ context.Context, userID int64) (*models.StudentProfile, error) {
	for _, profile := range m.profiles {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return nil, apperrors.ErrProfileNotFound
}

func (m *memProfiles) ListUnassigned(_ context.Context, _ models.Tenant) ([]*models.StudentProfile, error) {
	var maxID int64
	for id := range m.profiles {
		if id > maxID {
			maxID = id
		}
	}
	var out []*models.StudentProfile
	for id := int64(1); id <= maxID; id++ {
		if profile, ok := m.profiles[id]; ok && profile.AssignedTeacherID == nil {
			out = append(out, profile)
		}
	}
	return out, nil
}

func (m *memProfiles) CountByAssignedTeacher(_ context.Context, teacherID int64) (int64, error) {
	var count int64
	for _, profile := range m.profiles {
		if profile.AssignedTeacherID != nil && *profile.AssignedTeacherID == teacherID {
			count++
		}
	}
	return count, nil
}

func (m *memProfiles) UpdateAssignedTeacher(_ context.Context, profileID int64, teacherID *int64) error {
	profile, ok := m.profiles[profileID]
	if !ok {
		return apperrors.ErrProfileNotFound
	}
	profile.AssignedTeacherID = teacherID
	return nil
}

func teacher(id int64, specialization string, extra ...string) *models.User {
	return &models.User{
		ID:                 id,
		RoleType:           models.RoleTeacher,
		Tenant:             models.TenantProduction,
		IsActive:           true,
		Specialization:     &specialization,
		AdditionalBranches: extra,
	}
}

func student(id int64) *models.User {
	return &models.User{
		ID:       id,
		RoleType: models.RoleStudent,
		Tenant:   models.TenantProduction,
		IsActive: true,
	}
}

func newAssignmentFixture(users map[int64]*models.User, profiles map[int64]*models.StudentProfile) (*AssignmentService, *memProfiles) {
	profileStore := &memProfiles{profiles: profiles}
	svc := NewAssignmentService(&memAccounts{users: users}, profileStore, zerolog.Nop())
	return svc, profileStore
}

func int64Ptr(v int64) *int64 { return &v }

func TestAutoAssignPrefersBranchMatch(t *testing.T) {
	users := map[int64]*models.User{
		1: student(1),
		2: teacher(2, "Computer Science"),
		3: teacher(3, "Mechanical Engineering"),
	}
	profiles := map[int64]*models.StudentProfile{
		10: {ID: 10, UserID: 1, Branch: "Computer Science"},
		// The mechanical teacher is idle, but branch match wins
		11: {ID: 11, UserID: 1, Branch: "x", AssignedTeacherID: int64Ptr(2)},
	}

	svc, store := newAssignmentFixture(users, profiles)

	assigned, err := svc.AutoAssignTeacher(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), assigned.ID)
	assert.Equal(t, int64(2), *store.profiles[10].AssignedTeacherID)
}

func TestAutoAssignFallsBackToAllTeachers(t *testing.T) {
	users := map[int64]*models.User{
		1: student(1),
		2: teacher(2, "Mechanical Engineering"),
	}
	profiles := map[int64]*models.StudentProfile{
		10: {ID: 10, UserID: 1, Branch: "Computer Science"},
	}

	svc, _ := newAssignmentFixture(users, profiles)

	assigned, err := svc.AutoAssignTeacher(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), assigned.ID)
}

func TestAutoAssignNoTeachers(t *testing.T) {
	users := map[int64]*models.User{1: student(1)}
	profiles := map[int64]*models.StudentProfile{
		10: {ID: 10, UserID: 1, Branch: "Computer Science"},
	}

	svc, store := newAssignmentFixture(users, profiles)

	_, err := svc.AutoAssignTeacher(context.Background(), 10)
	assert.ErrorIs(t, err, apperrors.ErrNoTeacherAvailable)
	assert.Nil(t, store.profiles[10].AssignedTeacherID)
}

func TestAutoAssignPicksLeastLoaded(t *testing.T) {
	users := map[int64]*models.User{
		1: student(1),
		2: teacher(2, "Computer Science"),
		3: teacher(3, "Computer Science"),
	}
	profiles := map[int64]*models.StudentProfile{
		10: {ID: 10, UserID: 1, Branch: "Computer Science"},
		11: {ID: 11, UserID: 1, Branch: "Computer Science", AssignedTeacherID: int64Ptr(2)},
		12: {ID: 12, UserID: 1, Branch: "Computer Science", AssignedTeacherID: int64Ptr(2)},
		13: {ID: 13, UserID: 1, Branch: "Computer Science", AssignedTeacherID: int64Ptr(3)},
	}

	svc, _ := newAssignmentFixture(users, profiles)

	assigned, err := svc.AutoAssignTeacher(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), assigned.ID)
}

func TestAutoAssignTieBreaksOnLowestID(t *testing.T) {
	users := map[int64]*models.User{
		1: student(1),
		5: teacher(5, "Computer Science"),
		3: teacher(3, "Computer Science"),
		7: teacher(7, "Computer Science"),
	}
	profiles := map[int64]*models.StudentProfile{
		10: {ID: 10, UserID: 1, Branch: "Computer Science"},
	}

	svc, _ := newAssignmentFixture(users, profiles)

	assigned, err := svc.AutoAssignTeacher(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), assigned.ID)
}

func TestAutoAssignAllReportsPerProfileFailures(t *testing.T) {
	users := map[int64]*models.User{
		1: student(1),
		2: student(2),
		3: teacher(3, "Computer Science"),
	}
	profiles := map[int64]*models.StudentProfile{
		// Profile 11 belongs to a deleted account, its assignment fails
		10: {ID: 10, UserID: 1, Branch: "Computer Science"},
		11: {ID: 11, UserID: 99, Branch: "Computer Science"},
		12: {ID: 12, UserID: 2, Branch: "Computer Science"},
	}

	svc, _ := newAssignmentFixture(users, profiles)

	result, err := svc.AutoAssignAll(context.Background(), models.TenantProduction)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Assigned)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Results, 3)
	assert.NotEmpty(t, result.Results[1].Error)
}

func TestManualAssignRejectsNonTeacher(t *testing.T) {
	users := map[int64]*models.User{
		1: student(1),
		2: student(2),
	}
	profiles := map[int64]*models.StudentProfile{
		10: {ID: 10, UserID: 1, Branch: "Computer Science"},
	}

	svc, _ := newAssignmentFixture(users, profiles)

	_, err := svc.AssignTeacher(context.Background(), 10, 2)
	assert.ErrorIs(t, err, apperrors.ErrNotATeacher)
}

func TestManualAssignRejectsCrossTenantTeacher(t *testing.T) {
	demoTeacher := teacher(2, "Computer Science")
	demoTeacher.Tenant = models.TenantDemo

	users := map[int64]*models.User{
		1: student(1),
		2: demoTeacher,
	}
	profiles := map[int64]*models.StudentProfile{
		10: {ID: 10, UserID: 1, Branch: "Computer Science"},
	}

	svc, _ := newAssignmentFixture(users, profiles)

	_, err := svc.AssignTeacher(context.Background(), 10, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestRemoveTeacherClearsAssignment(t *testing.T) {
	users := map[int64]*models.User{
		1: student(1),
		2: teacher(2, "Computer Science"),
	}
	profiles := map[int64]*models.StudentProfile{
		10: {ID: 10, UserID: 1, Branch: "Computer Science", AssignedTeacherID: int64Ptr(2)},
	}

	svc, store := newAssignmentFixture(users, profiles)

	require.NoError(t, svc.RemoveTeacher(context.Background(), 10))
	assert.Nil(t, store.profiles[10].AssignedTeacherID)
}
