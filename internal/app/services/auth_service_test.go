package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadex/acadex/internal/app/models"
	"github.com/acadex/acadex/internal/app/models/dto"
	"github.com/acadex/acadex/internal/app/repositories"
	"github.com/acadex/acadex/internal/pkg/apperrors"
	"github.com/acadex/acadex/internal/pkg/auth"
)

type loginAccounts struct {
	repositories.AccountStore
	users map[string]*models.User
}

func (m *loginAccounts) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (m *loginAccounts) UpdateLastLogin(_ context.Context, _ int64) error {
	return nil
}

type memTokens struct {
	repositories.TokenStore
	created []string
}

func (m *memTokens) CreateToken(_ context.Context, token string, _ int64, _ time.Time) error {
	m.created = append(m.created, token)
	return nil
}

func newLoginFixture(t *testing.T) (*AuthService, *loginAccounts, *memTokens) {
	t.Helper()
	hashed, err := auth.HashPassword("Secret123")
	require.NoError(t, err)

	accounts := &loginAccounts{users: map[string]*models.User{
		"jane.doe@college.edu": {
			ID: 1, Email: "jane.doe@college.edu", Password: hashed,
			RoleType: models.RoleStudent, Tenant: models.TenantProduction, IsActive: true,
		},
	}}
	tokens := &memTokens{}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "acadex.test",
	})
	svc := NewAuthService(accounts, &memProfiles{}, tokens, jwtService, zerolog.Nop())
	return svc, accounts, tokens
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, _, tokens := newLoginFixture(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "Jane.Doe@college.edu",
		Password: "Secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)
	assert.Equal(t, "jane.doe@college.edu", resp.User.Email)
	require.Len(t, tokens.created, 1)
	assert.Equal(t, resp.Token.RefreshToken, tokens.created[0])
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _, tokens := newLoginFixture(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "jane.doe@college.edu",
		Password: "NotTheSecret1",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Empty(t, tokens.created)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc, _, _ := newLoginFixture(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@college.edu",
		Password: "Secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	svc, accounts, _ := newLoginFixture(t)
	accounts.users["jane.doe@college.edu"].IsActive = false

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "jane.doe@college.edu",
		Password: "Secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}
