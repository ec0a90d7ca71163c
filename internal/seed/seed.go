package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/acadex/acadex/internal/app/models"
	"github.com/acadex/acadex/internal/app/repositories"
	"github.com/acadex/acadex/internal/config"
	"github.com/acadex/acadex/internal/pkg/apperrors"
	"github.com/acadex/acadex/internal/pkg/auth"
	"github.com/acadex/acadex/internal/pkg/tenant"
)

var defaultDepartments = []models.Department{
	{Name: "Computer Science", Code: "CS", Description: "Computer Science and Engineering"},
	{Name: "Mechanical Engineering", Code: "ME", Description: "Mechanical Engineering"},
	{Name: "Civil Engineering", Code: "CE", Description: "Civil Engineering"},
	{Name: "Electrical Engineering", Code: "EE", Description: "Electrical and Electronics Engineering"},
	{Name: "Mathematics", Code: "MATH", Description: "Mathematics and Statistics"},
}

// CreateDefaultData seeds departments, the production admin account and,
// when enabled, a set of demo tenant accounts. Every step is idempotent:
// records that already exist are left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	repos := repositories.NewRepositories(dbPool)

	var finalErr error

	for _, department := range defaultDepartments {
		d := department
		err := repos.DepartmentRepository.Create(ctx, &d)
		if err != nil && !errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
			lgr.Error().Err(err).Str("name", d.Name).Msg("Error creating default department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if err := createUser(ctx, repos, seedUser{
		email:     cfg.Seed.AdminEmail,
		password:  cfg.Seed.AdminPassword,
		firstName: "System",
		lastName:  "Admin",
		role:      models.RoleAdmin,
	}, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if cfg.Seed.DemoTenant {
		if err := createDemoTenant(ctx, repos, lgr); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}

type seedUser struct {
	email          string
	password       string
	firstName      string
	lastName       string
	role           models.RoleType
	specialization string
}

// createUser creates a protected seed account unless it already exists
func createUser(ctx context.Context, repos *repositories.Repositories, u seedUser, lgr zerolog.Logger) (err error) {
	exists, err := repos.UserRepository.EmailExists(ctx, u.email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(u.password)
	if err != nil {
		return err
	}

	user := &models.User{
		Email:       u.email,
		Password:    hashed,
		FirstName:   u.firstName,
		LastName:    u.lastName,
		RoleType:    u.role,
		Tenant:      tenant.Classify(u.email),
		IsActive:    true,
		IsProtected: true,
	}
	if u.specialization != "" {
		user.Specialization = &u.specialization
	}

	if err := repos.UserRepository.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Str("email", u.email).Msg("Error creating seed account")
		return err
	}

	lgr.Info().Str("email", u.email).Str("role", string(u.role)).
		Str("tenant", string(user.Tenant)).Msg("Seed account created")
	return nil
}

// createDemoTenant seeds a small demo partition: an admin, a teacher and a
// student with a profile.
func createDemoTenant(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	var finalErr error

	demoUsers := []seedUser{
		{
			email:     "demo.admin@example.com",
			password:  "DemoAdmin1",
			firstName: "Demo",
			lastName:  "Admin",
			role:      models.RoleAdmin,
		},
		{
			email:          "demo.teacher@example.com",
			password:       "DemoTeacher1",
			firstName:      "Demo",
			lastName:       "Teacher",
			role:           models.RoleTeacher,
			specialization: "Computer Science",
		},
		{
			email:     "demo.student@example.com",
			password:  "DemoStudent1",
			firstName: "Demo",
			lastName:  "Student",
			role:      models.RoleStudent,
		},
	}

	for _, u := range demoUsers {
		if err := createUser(ctx, repos, u, lgr); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	student, err := repos.UserRepository.GetByEmail(ctx, "demo.student@example.com")
	if err != nil {
		return errors.Join(finalErr, err)
	}

	if _, err := repos.ProfileRepository.GetByUserID(ctx, student.ID); err != nil {
		if !errors.Is(err, apperrors.ErrProfileNotFound) {
			return errors.Join(finalErr, err)
		}
		profile := &models.StudentProfile{
			UserID:     student.ID,
			RollNumber: "DEMO-0001",
			Branch:     "Computer Science",
			Year:       2,
			Course:     "B.Tech",
		}
		if err := repos.ProfileRepository.Create(ctx, profile); err != nil &&
			!errors.Is(err, apperrors.ErrProfileAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating demo student profile")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
