package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadex/acadex/internal/app/models"
)

// AccountStore defines the database operations services need for user
// accounts. Implemented by UserRepository.
type AccountStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	EmailExists(ctx context.Context, email string) (bool, error)
	ListByRole(ctx context.Context, role models.RoleType, tenant models.Tenant) ([]*models.User, error)
	ListTeachersByBranch(ctx context.Context, branch string, tenant models.Tenant) ([]*models.User, error)
	Search(ctx context.Context, params UserSearchParams) ([]*models.User, int64, error)
	UpdateAdditionalBranches(ctx context.Context, userID int64, branches []string) error
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// ProfileStore defines the database operations services need for student
// profiles. Implemented by ProfileRepository.
type ProfileStore interface {
	Create(ctx context.Context, profile *models.StudentProfile) error
	GetByID(ctx context.Context, id int64) (*models.StudentProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
	Update(ctx context.Context, profile *models.StudentProfile) error
	ListAll(ctx context.Context, tenant models.Tenant) ([]*models.StudentProfile, error)
	ListUnassigned(ctx context.Context, tenant models.Tenant) ([]*models.StudentProfile, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]*models.StudentProfile, error)
	CountByAssignedTeacher(ctx context.Context, teacherID int64) (int64, error)
	UpdateAssignedTeacher(ctx context.Context, profileID int64, teacherID *int64) error
}

// AchievementStore defines the database operations services need for
// achievements. Implemented by AchievementRepository.
type AchievementStore interface {
	Create(ctx context.Context, achievement *models.Achievement) error
	GetByID(ctx context.Context, id int64) (*models.Achievement, error)
	Update(ctx context.Context, achievement *models.Achievement) error
	Delete(ctx context.Context, id int64) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Achievement, error)
	List(ctx context.Context, filter AchievementFilter) ([]*models.Achievement, int64, error)
	CountByStatus(ctx context.Context, tenant models.Tenant) (map[models.AchievementStatus]int64, error)
	CountByType(ctx context.Context, tenant models.Tenant) (map[models.AchievementType]int64, error)
}

// DepartmentStore defines the database operations services need for
// departments. Implemented by DepartmentRepository.
type DepartmentStore interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	GetByName(ctx context.Context, name string) (*models.Department, error)
	GetAll(ctx context.Context) ([]*models.Department, error)
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, id int64) error
	CountMembers(ctx context.Context, name string, tenant models.Tenant) (int64, error)
}

// TokenStore defines refresh token persistence. Implemented by
// TokenRepository.
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// UserSearchParams captures the filters of an admin user listing. Tenant is
// always required so list responses never cross the data partition.
type UserSearchParams struct {
	Tenant models.Tenant
	Role   *models.RoleType
	Query  string // matched against name and email
	Offset uint64
	Limit  int
}

// AchievementFilter captures the filters of an achievement listing. Tenant is
// always required; the owner join is inner, so records whose owning account
// is missing are excluded.
type AchievementFilter struct {
	Tenant    models.Tenant
	StudentID *int64
	TeacherID *int64 // restricts to students assigned to this teacher
	Status    *models.AchievementStatus
	Type      *models.AchievementType
	Offset    uint64
	Limit     int
}

// Repositories bundles all repository instances
type Repositories struct {
	UserRepository        *UserRepository
	ProfileRepository     *ProfileRepository
	AchievementRepository *AchievementRepository
	DepartmentRepository  *DepartmentRepository
	TokenRepository       *TokenRepository
}

// NewRepositories creates all repositories backed by the given pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		ProfileRepository:     NewProfileRepository(db),
		AchievementRepository: NewAchievementRepository(db),
		DepartmentRepository:  NewDepartmentRepository(db),
		TokenRepository:       NewTokenRepository(db),
	}
}
