package dto

import (
	"time"

	"github.com/acadex/acadex/internal/app/models"
)

// AssignTeacherRequest represents a manual teacher assignment
type AssignTeacherRequest struct {
	TeacherID int64 `json:"teacherId" binding:"required,min=1"`
}

// ProfileResponse represents a student profile in API responses
type ProfileResponse struct {
	ID                int64         `json:"id"`
	UserID            int64         `json:"userId"`
	RollNumber        string        `json:"rollNumber"`
	Branch            string        `json:"branch"`
	Year              int           `json:"year"`
	Course            string        `json:"course"`
	AssignedTeacherID *int64        `json:"assignedTeacherId,omitempty"`
	AssignedTeacher   *UserResponse `json:"assignedTeacher,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// NewProfileResponse maps a student profile model to its response shape
func NewProfileResponse(p *models.StudentProfile) *ProfileResponse {
	resp := &ProfileResponse{
		ID:                p.ID,
		UserID:            p.UserID,
		RollNumber:        p.RollNumber,
		Branch:            p.Branch,
		Year:              p.Year,
		Course:            p.Course,
		AssignedTeacherID: p.AssignedTeacherID,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if p.AssignedTeacher != nil {
		resp.AssignedTeacher = NewUserResponse(p.AssignedTeacher)
	}
	return resp
}

// NewProfileListResponse maps a slice of student profiles
func NewProfileListResponse(profiles []*models.StudentProfile) []*ProfileResponse {
	responses := make([]*ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, NewProfileResponse(p))
	}
	return responses
}

// AssignmentResultResponse reports the outcome of one auto assignment
type AssignmentResultResponse struct {
	ProfileID int64         `json:"profileId"`
	Teacher   *UserResponse `json:"teacher,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// BatchAssignResponse reports the outcome of assigning all unassigned students
type BatchAssignResponse struct {
	Assigned int                         `json:"assigned"`
	Failed   int                         `json:"failed"`
	Results  []*AssignmentResultResponse `json:"results"`
}
