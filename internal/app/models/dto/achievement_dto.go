package dto

import (
	"time"

	"github.com/acadex/acadex/internal/app/models"
)

// CreateAchievementRequest represents a student achievement submission
type CreateAchievementRequest struct {
	Title       string `form:"title" binding:"required,max=255"`
	Description string `form:"description"`
	Type        string `form:"type" binding:"required"`
}

// UpdateAchievementRequest represents a student edit of an achievement
type UpdateAchievementRequest struct {
	Title       string `form:"title" binding:"required,max=255"`
	Description string `form:"description"`
	Type        string `form:"type" binding:"required"`
}

// ReviewAchievementRequest represents a teacher review decision
type ReviewAchievementRequest struct {
	Decision string `json:"decision" binding:"required,oneof=VERIFIED REJECTED"`
	Feedback string `json:"feedback"`
}

// AchievementResponse represents an achievement in API responses
type AchievementResponse struct {
	ID          int64      `json:"id"`
	StudentID   int64      `json:"studentId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	Feedback    *string    `json:"feedback,omitempty"`
	ProofURL    *string    `json:"proofUrl,omitempty"`
	VerifiedBy  *int64     `json:"verifiedBy,omitempty"`
	VerifiedAt  *time.Time `json:"verifiedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewAchievementResponse maps an achievement model to its response shape
func NewAchievementResponse(a *models.Achievement) *AchievementResponse {
	return &AchievementResponse{
		ID:          a.ID,
		StudentID:   a.StudentID,
		Title:       a.Title,
		Description: a.Description,
		Type:        string(a.Type),
		Status:      string(a.Status),
		Feedback:    a.Feedback,
		ProofURL:    a.ProofURL,
		VerifiedBy:  a.VerifiedBy,
		VerifiedAt:  a.VerifiedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// NewAchievementListResponse maps a slice of achievements
func NewAchievementListResponse(achievements []*models.Achievement) []*AchievementResponse {
	responses := make([]*AchievementResponse, 0, len(achievements))
	for _, a := range achievements {
		responses = append(responses, NewAchievementResponse(a))
	}
	return responses
}
