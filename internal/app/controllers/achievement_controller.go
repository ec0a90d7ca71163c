package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/acadex/acadex/internal/app/models"
	"github.com/acadex/acadex/internal/app/models/dto"
	"github.com/acadex/acadex/internal/app/repositories"
	"github.com/acadex/acadex/internal/app/services"
	"github.com/acadex/acadex/internal/middleware"
	"github.com/acadex/acadex/internal/pkg/helpers"
)

// AchievementController handles the submit, review, resubmit workflow
type AchievementController struct {
	achievementService *services.AchievementService
}

// NewAchievementController creates a new AchievementController
func NewAchievementController(achievementService *services.AchievementService) *AchievementController {
	return &AchievementController{
		achievementService: achievementService,
	}
}

// Create submits a new achievement
// @Summary Submit achievement
// @Description Submits a new achievement with an optional proof file (multipart)
// @Tags achievements
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param type formData string true "Type (ACADEMIC, SPORTS, CO_CURRICULAR, EXTRA_CURRICULAR)"
// @Param proof formData file false "Proof document (image or PDF)"
// @Success 201 {object} dto.APIResponse{data=dto.AchievementResponse} "Submitted achievement"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /achievements [post]
func (c *AchievementController) Create(ctx *gin.Context) {
	userID, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var req dto.CreateAchievementRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	proof, err := ctx.FormFile("proof")
	if err != nil && err != http.ErrMissingFile {
		middleware.HandleValidationError(ctx, err)
		return
	}

	achievement, err := c.achievementService.Create(ctx.Request.Context(), userID, &req, proof)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(achievement))
}

// List returns achievements visible to the caller
// @Summary List achievements
// @Description Lists achievements; students see their own, teachers their assignees', admins the tenant
// @Tags achievements
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by type"
// @Param studentId query int false "Filter by student (admin/teacher)"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Achievements"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /achievements [get]
func (c *AchievementController) List(ctx *gin.Context) {
	userID, ok := requireCaller(ctx)
	if !ok {
		return
	}
	role, ok := middleware.CallerRole(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	filter := repositories.AchievementFilter{
		Tenant: tenant,
		Offset: offset,
		Limit:  limit,
	}

	if statusStr := ctx.Query("status"); statusStr != "" {
		status := models.AchievementStatus(strings.ToUpper(statusStr))
		if !status.Valid() {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unknown status filter")))
			return
		}
		filter.Status = &status
	}

	if typeStr := ctx.Query("type"); typeStr != "" {
		achievementType := models.AchievementType(strings.ToUpper(typeStr))
		if !achievementType.Valid() {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unknown type filter")))
			return
		}
		filter.Type = &achievementType
	}

	if studentIDStr := ctx.Query("studentId"); studentIDStr != "" && role != models.RoleStudent {
		studentID, parseOK := parseQueryID(ctx, studentIDStr, "studentId")
		if !parseOK {
			return
		}
		filter.StudentID = &studentID
	}

	achievements, total, err := c.achievementService.List(ctx.Request.Context(), userID, role, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PagedResponse{
		Items:      achievements,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// Get returns one achievement
// @Summary Get achievement
// @Description Returns one achievement visible to the caller
// @Tags achievements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Achievement ID"
// @Success 200 {object} dto.APIResponse{data=dto.AchievementResponse} "Achievement"
// @Failure 404 {object} dto.ErrorResponse "Achievement not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /achievements/{id} [get]
func (c *AchievementController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := requireCaller(ctx)
	if !ok {
		return
	}
	role, _ := middleware.CallerRole(ctx)

	achievement, err := c.achievementService.GetByID(ctx.Request.Context(), userID, role, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(achievement))
}

// Update edits an achievement; editing a rejected one resubmits it
// @Summary Update achievement
// @Description Edits an achievement owned by the caller; a rejected achievement returns to review
// @Tags achievements
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Achievement ID"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param type formData string true "Type"
// @Param proof formData file false "Replacement proof document"
// @Success 200 {object} dto.APIResponse{data=dto.AchievementResponse} "Updated achievement"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Achievement not found"
// @Failure 409 {object} dto.ErrorResponse "Achievement is verified"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /achievements/{id} [put]
func (c *AchievementController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var req dto.UpdateAchievementRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	proof, err := ctx.FormFile("proof")
	if err != nil && err != http.ErrMissingFile {
		middleware.HandleValidationError(ctx, err)
		return
	}

	achievement, err := c.achievementService.Update(ctx.Request.Context(), userID, id, &req, proof)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(achievement))
}

// Delete removes an achievement
// @Summary Delete achievement
// @Description Deletes an achievement owned by the caller (or any tenant record for admins)
// @Tags achievements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Achievement ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Achievement not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /achievements/{id} [delete]
func (c *AchievementController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := requireCaller(ctx)
	if !ok {
		return
	}
	role, _ := middleware.CallerRole(ctx)

	if err := c.achievementService.Delete(ctx.Request.Context(), userID, role, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Achievement deleted"}))
}

// Review applies a teacher decision to a pending achievement
// @Summary Review achievement
// @Description Verifies or rejects a pending achievement; rejection requires feedback
// @Tags achievements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Achievement ID"
// @Param request body dto.ReviewAchievementRequest true "Review decision"
// @Success 200 {object} dto.APIResponse{data=dto.AchievementResponse} "Reviewed achievement"
// @Failure 400 {object} dto.ErrorResponse "Missing feedback on rejection"
// @Failure 403 {object} dto.ErrorResponse "Teacher not authorized for this achievement"
// @Failure 409 {object} dto.ErrorResponse "Achievement is not pending"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /achievements/{id}/review [post]
func (c *AchievementController) Review(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var req dto.ReviewAchievementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	achievement, err := c.achievementService.Review(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(achievement))
}
