package models

import "time"

// AchievementType defines the category of an achievement
type AchievementType string

const (
	AchievementAcademic        AchievementType = "ACADEMIC"
	AchievementSports          AchievementType = "SPORTS"
	AchievementCoCurricular    AchievementType = "CO_CURRICULAR"
	AchievementExtraCurricular AchievementType = "EXTRA_CURRICULAR"
)

// Valid reports whether the type is one of the known categories.
func (t AchievementType) Valid() bool {
	switch t {
	case AchievementAcademic, AchievementSports, AchievementCoCurricular, AchievementExtraCurricular:
		return true
	}
	return false
}

// AchievementStatus defines the review state of an achievement
type AchievementStatus string

const (
	// StatusSubmitted is transient: a new submission is immediately queued
	// for review, so persisted records start at StatusPending.
	StatusSubmitted AchievementStatus = "SUBMITTED"
	StatusPending   AchievementStatus = "PENDING"
	StatusVerified  AchievementStatus = "VERIFIED"
	StatusRejected  AchievementStatus = "REJECTED"
)

// Valid reports whether the status is one of the known states.
func (s AchievementStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusPending, StatusVerified, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine permits moving from s to
// next, regardless of who requests it. Actor rules (teacher decisions vs
// student resubmission) are enforced in the achievement service.
func (s AchievementStatus) CanTransitionTo(next AchievementStatus) bool {
	switch s {
	case StatusSubmitted:
		return next == StatusPending
	case StatusPending:
		return next == StatusVerified || next == StatusRejected
	case StatusRejected:
		return next == StatusPending
	}
	return false
}

// Achievement defines the achievement model based on the 'achievements'
// table. Each achievement is owned by exactly one student account.
type Achievement struct {
	ID          int64             `json:"id" db:"id" example:"1"`
	StudentID   int64             `json:"studentId" db:"student_id" example:"5"`             // Owning student account ID
	Title       string            `json:"title" db:"title" example:"State Chess Champion"`   // Short title of the achievement
	Description string            `json:"description" db:"description"`                      // Free-form description
	Type        AchievementType   `json:"type" db:"type" example:"SPORTS"`                   // Achievement category
	Status      AchievementStatus `json:"status" db:"status" example:"PENDING"`              // Review state
	Feedback    *string           `json:"feedback,omitempty" db:"feedback"`                  // Reviewer feedback, required when rejected
	ProofURL    *string           `json:"proofUrl,omitempty" db:"proof_url"`                 // URL of the uploaded proof document
	VerifiedBy  *int64            `json:"verifiedBy,omitempty" db:"verified_by"`             // Teacher account that decided the review
	VerifiedAt  *time.Time        `json:"verifiedAt,omitempty" db:"verified_at"`             // Time of the review decision
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time         `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student  *User `json:"student,omitempty"`  // Owning student account
	Verifier *User `json:"verifier,omitempty"` // Reviewing teacher account
}
