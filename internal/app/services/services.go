// Package services holds the business logic layer between controllers and
// repositories.
//
// Services defined in this package:
//   - AuthService: registration, login and token refresh
//   - UserService: admin account management and branch grants
//   - AssignmentService: student profiles and teacher assignment
//   - AchievementService: the submit, review, resubmit workflow
//   - DepartmentService: department reference data
//   - StatsService: tenant-scoped reporting counters
package services
