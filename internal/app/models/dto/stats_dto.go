package dto

// StatsResponse aggregates tenant-wide counters for the admin dashboard
type StatsResponse struct {
	Students         int64             `json:"students"`
	Teachers         int64             `json:"teachers"`
	Achievements     AchievementStats  `json:"achievements"`
	TeacherWorkloads []TeacherWorkload `json:"teacherWorkloads"`
	Departments      []DepartmentStats `json:"departments"`
}

// AchievementStats breaks achievement counts down by status and category
type AchievementStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
	ByType   map[string]int64 `json:"byType"`
}

// TeacherWorkload reports how many students a teacher currently mentors
type TeacherWorkload struct {
	TeacherID int64  `json:"teacherId"`
	Name      string `json:"name"`
	Students  int64  `json:"students"`
}

// DepartmentStats reports tenant membership of a department
type DepartmentStats struct {
	DepartmentID int64  `json:"departmentId"`
	Name         string `json:"name"`
	Members      int64  `json:"members"`
}
