package dto

// UpdateUserRequest represents an admin update of an account
type UpdateUserRequest struct {
	FirstName      string  `json:"firstName" binding:"required"`
	LastName       string  `json:"lastName" binding:"required"`
	IsActive       *bool   `json:"isActive" binding:"required"`
	Specialization *string `json:"specialization,omitempty"`
}

// GrantBranchesRequest replaces the additional branches of a teacher
type GrantBranchesRequest struct {
	Branches []string `json:"branches" binding:"required"`
}

// UpdateProfileRequest represents a student profile update
type UpdateProfileRequest struct {
	RollNumber string `json:"rollNumber" binding:"required"`
	Branch     string `json:"branch" binding:"required"`
	Year       int    `json:"year" binding:"required,min=1,max=6"`
	Course     string `json:"course" binding:"required"`
}
