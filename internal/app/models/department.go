package models

// Department represents reference data for an academic department. Department
// names double as branch labels on student profiles and teacher
// specializations.
type Department struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" example:"Civil Engineering"`
	Code        string `json:"code" example:"CE"`
	Description string `json:"description,omitempty"`
}
