package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadex/acadex/internal/app/models"
	"github.com/acadex/acadex/internal/app/models/dto"
	"github.com/acadex/acadex/internal/app/services"
	"github.com/acadex/acadex/internal/middleware"
)

// ProfileController handles student profiles and teacher assignment
type ProfileController struct {
	assignmentService *services.AssignmentService
}

// NewProfileController creates a new ProfileController
func NewProfileController(assignmentService *services.AssignmentService) *ProfileController {
	return &ProfileController{
		assignmentService: assignmentService,
	}
}

// ListProfiles returns the tenant's student profiles. Teachers get only their
// own assignees.
// @Summary List student profiles
// @Description Lists student profiles; admins see the tenant, teachers see their assignees
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ProfileResponse} "Profiles"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles [get]
func (c *ProfileController) ListProfiles(ctx *gin.Context) {
	role, _ := middleware.CallerRole(ctx)

	if role == models.RoleTeacher {
		teacherID, ok := requireCaller(ctx)
		if !ok {
			return
		}
		profiles, err := c.assignmentService.ListByTeacher(ctx.Request.Context(), teacherID)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(profiles))
		return
	}

	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	profiles, err := c.assignmentService.ListProfiles(ctx.Request.Context(), tenant)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profiles))
}

// GetOwnProfile returns the authenticated student's profile
// @Summary Get own profile
// @Description Returns the profile of the authenticated student
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/me [get]
func (c *ProfileController) GetOwnProfile(ctx *gin.Context) {
	userID, ok := requireCaller(ctx)
	if !ok {
		return
	}

	profile, err := c.assignmentService.GetOwnProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}

// UpdateOwnProfile updates the authenticated student's profile
// @Summary Update own profile
// @Description Updates roll number, branch, year and course of the caller's profile
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile update"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 409 {object} dto.ErrorResponse "Roll number already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/me [put]
func (c *ProfileController) UpdateOwnProfile(ctx *gin.Context) {
	userID, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	profile, err := c.assignmentService.UpdateOwnProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}

// ListUnassigned returns tenant profiles without an assigned teacher
// @Summary List unassigned profiles
// @Description Lists tenant profiles that have no assigned teacher
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ProfileResponse} "Profiles"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/unassigned [get]
func (c *ProfileController) ListUnassigned(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	profiles, err := c.assignmentService.ListUnassigned(ctx.Request.Context(), tenant)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profiles))
}

// AssignTeacher sets a specific teacher on a profile
// @Summary Assign teacher manually
// @Description Assigns a specific teacher to a student profile, bypassing workload balancing
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Profile ID"
// @Param request body dto.AssignTeacherRequest true "Teacher to assign"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Target is not an eligible teacher"
// @Failure 404 {object} dto.ErrorResponse "Profile or teacher not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/{id}/assign-teacher [post]
func (c *ProfileController) AssignTeacher(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	profile, err := c.assignmentService.AssignTeacher(ctx.Request.Context(), id, req.TeacherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}

// RemoveTeacher clears the assigned teacher of a profile
// @Summary Remove assigned teacher
// @Description Clears the assigned teacher reference of a student profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Profile ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Removed"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/{id}/teacher [delete]
func (c *ProfileController) RemoveTeacher(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.assignmentService.RemoveTeacher(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Teacher removed"}))
}

// AutoAssign assigns the least loaded eligible teacher to a profile
// @Summary Auto-assign teacher
// @Description Assigns the least loaded eligible teacher to a student profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Profile ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Assigned teacher"
// @Failure 404 {object} dto.ErrorResponse "Profile not found or no teacher available"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/{id}/auto-assign [post]
func (c *ProfileController) AutoAssign(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	teacher, err := c.assignmentService.AutoAssignTeacher(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(teacher))
}

// AutoAssignAll assigns teachers to all unassigned tenant profiles
// @Summary Auto-assign all
// @Description Assigns a teacher to every unassigned profile in the tenant; failures are reported per profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.BatchAssignResponse} "Batch result"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/auto-assign-all [post]
func (c *ProfileController) AutoAssignAll(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	result, err := c.assignmentService.AutoAssignAll(ctx.Request.Context(), tenant)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}
