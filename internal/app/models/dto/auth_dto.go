package dto

import (
	"time"

	"github.com/acadex/acadex/internal/app/models"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents a refresh token exchange request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterStudentRequest represents a student registration request
type RegisterStudentRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	RollNumber string `json:"rollNumber" binding:"required"`
	Branch     string `json:"branch" binding:"required"`
	Year       int    `json:"year" binding:"required,min=1,max=6"`
	Course     string `json:"course" binding:"required"`
}

// RegisterTeacherRequest represents a teacher registration request
type RegisterTeacherRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	FirstName      string `json:"firstName" binding:"required"`
	LastName       string `json:"lastName" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	FirstName          string     `json:"firstName"`
	LastName           string     `json:"lastName"`
	RoleType           string     `json:"roleType"`
	Tenant             string     `json:"tenant"`
	IsActive           bool       `json:"isActive"`
	Specialization     *string    `json:"specialization,omitempty"`
	AdditionalBranches []string   `json:"additionalBranches,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	LastLoginAt        *time.Time `json:"lastLoginAt,omitempty"`
}

// NewUserResponse maps a user model to its response shape
func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:                 user.ID,
		Email:              user.Email,
		FirstName:          user.FirstName,
		LastName:           user.LastName,
		RoleType:           string(user.RoleType),
		Tenant:             string(user.Tenant),
		IsActive:           user.IsActive,
		Specialization:     user.Specialization,
		AdditionalBranches: user.AdditionalBranches,
		CreatedAt:          user.CreatedAt,
		LastLoginAt:        user.LastLoginAt,
	}
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  *UserResponse `json:"user"`
}
