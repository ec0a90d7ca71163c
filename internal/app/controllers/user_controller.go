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

// UserController handles admin account management
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// ListUsers returns a page of tenant accounts
// @Summary List users
// @Description Lists accounts in the requester's tenant with optional role and text filters
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role (STUDENT, TEACHER, ADMIN)"
// @Param q query string false "Match against name and email"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Users"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	params := repositories.UserSearchParams{
		Tenant: tenant,
		Query:  ctx.Query("q"),
		Offset: offset,
		Limit:  limit,
	}

	if roleStr := ctx.Query("role"); roleStr != "" {
		role := models.RoleType(strings.ToUpper(roleStr))
		if !role.Valid() {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unknown role filter")))
			return
		}
		params.Role = &role
	}

	users, total, err := c.userService.ListUsers(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PagedResponse{
		Items:      users,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// GetUser returns one tenant account
// @Summary Get user
// @Description Returns one account in the requester's tenant
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	user, err := c.userService.GetUser(ctx.Request.Context(), id, tenant)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user))
}

// UpdateUser applies an admin update to an account
// @Summary Update user
// @Description Updates name, active flag and teacher specialization of an account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "Account update"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated user"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.userService.UpdateUser(ctx.Request.Context(), id, &req, tenant)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user))
}

// DeleteUser removes an account
// @Summary Delete user
// @Description Deletes an account; protected accounts are refused
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Protected account"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	if err := c.userService.DeleteUser(ctx.Request.Context(), id, tenant); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "User deleted"}))
}

// GrantBranches adds admin-granted branches to a teacher
// @Summary Grant branches
// @Description Adds branches to a teacher's admin-granted branch set
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.GrantBranchesRequest true "Branches to grant"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated teacher"
// @Failure 400 {object} dto.ErrorResponse "Account is not a teacher"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id}/branches [post]
func (c *UserController) GrantBranches(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	var req dto.GrantBranchesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.userService.GrantBranches(ctx.Request.Context(), id, req.Branches, tenant)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user))
}

// RevokeBranch removes an admin-granted branch from a teacher
// @Summary Revoke branch
// @Description Removes one branch from a teacher's admin-granted branch set
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param branch path string true "Branch name"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated teacher"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id}/branches/{branch} [delete]
func (c *UserController) RevokeBranch(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	tenant, ok := requireTenant(ctx)
	if !ok {
		return
	}

	branch := ctx.Param("branch")
	user, err := c.userService.RevokeBranch(ctx.Request.Context(), id, branch, tenant)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user))
}
