package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadex/acadex/internal/app/controllers"
	"github.com/acadex/acadex/internal/app/models"
	"github.com/acadex/acadex/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	profileController *controllers.ProfileController,
	achievementController *controllers.AchievementController,
	departmentController *controllers.DepartmentController,
	statsController *controllers.StatsController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		// Departments: reads for everyone, mutations admin-only
		departments := authenticated.Group("/departments")
		{
			departments.GET("", departmentController.ListDepartments)
			departments.GET("/:id", departmentController.GetDepartment)
			departments.GET("/:id/members", departmentController.CountMembers)

			departmentsAdmin := departments.Group("")
			departmentsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				departmentsAdmin.POST("", departmentController.CreateDepartment)
				departmentsAdmin.PUT("/:id", departmentController.UpdateDepartment)
				departmentsAdmin.DELETE("/:id", departmentController.DeleteDepartment)
			}
		}

		// Account management: admin-only
		users := authenticated.Group("/users")
		users.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			users.GET("", userController.ListUsers)
			users.GET("/:id", userController.GetUser)
			users.PUT("/:id", userController.UpdateUser)
			users.DELETE("/:id", userController.DeleteUser)
			users.POST("/:id/branches", userController.GrantBranches)
			users.DELETE("/:id/branches/:branch", userController.RevokeBranch)
		}

		// Student profiles and teacher assignment
		profiles := authenticated.Group("/profiles")
		{
			profiles.GET("/me", profileController.GetOwnProfile)
			profiles.PUT("/me", profileController.UpdateOwnProfile)

			profilesStaff := profiles.Group("")
			profilesStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleTeacher))
			{
				profilesStaff.GET("", profileController.ListProfiles)
			}

			profilesAdmin := profiles.Group("")
			profilesAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				profilesAdmin.GET("/unassigned", profileController.ListUnassigned)
				profilesAdmin.POST("/:id/assign-teacher", profileController.AssignTeacher)
				profilesAdmin.DELETE("/:id/teacher", profileController.RemoveTeacher)
				profilesAdmin.POST("/:id/auto-assign", profileController.AutoAssign)
				profilesAdmin.POST("/auto-assign-all", profileController.AutoAssignAll)
			}
		}

		// Achievements
		achievements := authenticated.Group("/achievements")
		{
			achievements.GET("", achievementController.List)
			achievements.GET("/:id", achievementController.Get)

			achievementsStudent := achievements.Group("")
			achievementsStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				achievementsStudent.POST("", achievementController.Create)
				achievementsStudent.PUT("/:id", achievementController.Update)
			}

			achievements.DELETE("/:id", achievementController.Delete)

			achievementsTeacher := achievements.Group("")
			achievementsTeacher.Use(authMiddleware.RoleRequired(models.RoleTeacher))
			{
				achievementsTeacher.POST("/:id/review", achievementController.Review)
			}
		}

		// Reporting
		stats := authenticated.Group("/stats")
		stats.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleTeacher))
		{
			stats.GET("/overview", statsController.Overview)
		}
	}
}
