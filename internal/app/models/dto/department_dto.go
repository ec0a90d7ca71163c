package dto

import "github.com/acadex/acadex/internal/app/models"

// CreateDepartmentRequest represents a department creation request
type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Code        string `json:"code" binding:"required,max=20"`
	Description string `json:"description"`
}

// UpdateDepartmentRequest represents a department update request
type UpdateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Code        string `json:"code" binding:"required,max=20"`
	Description string `json:"description"`
}

// DepartmentResponse represents a department in API responses
type DepartmentResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// NewDepartmentResponse maps a department model to its response shape
func NewDepartmentResponse(d *models.Department) *DepartmentResponse {
	return &DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Code:        d.Code,
		Description: d.Description,
	}
}

// NewDepartmentListResponse maps a slice of departments
func NewDepartmentListResponse(departments []*models.Department) []*DepartmentResponse {
	responses := make([]*DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, NewDepartmentResponse(d))
	}
	return responses
}
