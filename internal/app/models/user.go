package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Email       string     `json:"email" db:"email" example:"jane.doe@college.edu"`                         // User's email address (unique)
	Password    string     `json:"-" db:"password"`                                                         // User's hashed password (excluded from JSON)
	FirstName   string     `json:"firstName" db:"first_name" example:"Jane"`                                // User's first name
	LastName    string     `json:"lastName" db:"last_name" example:"Doe"`                                   // User's last name
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"TEACHER"`                               // User's role (STUDENT, TEACHER or ADMIN)
	Tenant      Tenant     `json:"tenant" db:"tenant" example:"PRODUCTION"`                                 // Data partition the account belongs to
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`                                  // Whether the user account is active
	IsProtected bool       `json:"isProtected" db:"is_protected" example:"false"`                           // Seeded system accounts that refuse deletion
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`                // Timestamp when the user was created
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`                // Timestamp when the user was last updated
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2024-04-20T18:00:00Z"` // Timestamp of the last login (nullable)

	// Teacher-only fields
	Specialization     *string  `json:"specialization,omitempty" db:"specialization" example:"Civil Engineering"` // Branch the teacher specializes in
	AdditionalBranches []string `json:"additionalBranches,omitempty" db:"additional_branches"`                    // Extra branches granted by an admin
}

// IsTeacher reports whether the account can act as a verifier.
func (u *User) IsTeacher() bool {
	return u.RoleType == RoleTeacher
}

// HasBranch reports whether the teacher covers the given branch, either by
// specialization or through an admin-granted additional branch.
func (u *User) HasBranch(branch string) bool {
	if u.Specialization != nil && *u.Specialization == branch {
		return true
	}
	for _, b := range u.AdditionalBranches {
		if b == branch {
			return true
		}
	}
	return false
}
