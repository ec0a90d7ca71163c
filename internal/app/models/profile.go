package models

import "time"

// StudentProfile defines the student profile model based on the
// 'student_profiles' table. Each student account owns exactly one profile.
type StudentProfile struct {
	ID                int64     `json:"id" db:"id" example:"1"`                            // Unique identifier for the profile record
	UserID            int64     `json:"userId" db:"user_id" example:"5"`                   // ID of the owning student account
	RollNumber        string    `json:"rollNumber" db:"roll_number" example:"CE2021045"`   // Student's unique roll number
	Branch            string    `json:"branch" db:"branch" example:"Civil Engineering"`    // Academic branch, matched against teacher specializations
	Year              int       `json:"year" db:"year" example:"3"`                        // Current year of study
	Course            string    `json:"course" db:"course" example:"B.Tech"`               // Course the student is enrolled in
	AssignedTeacherID *int64    `json:"assignedTeacherId,omitempty" db:"assigned_teacher"` // Teacher account assigned to this student (nullable)
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	User            *User `json:"user,omitempty"`            // Owning student account
	AssignedTeacher *User `json:"assignedTeacher,omitempty"` // Assigned teacher account
}
