// Package controllers holds the gin HTTP handlers. Controllers bind and
// validate requests, delegate to services and translate errors through the
// central middleware mapping.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/acadex/acadex/internal/app/models"
	"github.com/acadex/acadex/internal/app/models/dto"
	"github.com/acadex/acadex/internal/middleware"
)

// bindJSONBytes binds and validates a JSON body that has already been read
func bindJSONBytes(body []byte, obj interface{}) error {
	return binding.JSON.BindBody(body, obj)
}

// requireCaller returns the authenticated user ID, writing a 401 when the
// auth middleware did not run.
func requireCaller(ctx *gin.Context) (int64, bool) {
	id, ok := middleware.CallerID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
	}
	return id, ok
}

// requireTenant returns the caller's data partition, writing a 401 when the
// auth middleware did not run.
func requireTenant(ctx *gin.Context) (models.Tenant, bool) {
	tenant, ok := middleware.CallerTenant(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
	}
	return tenant, ok
}

// parseIDParam parses a numeric path parameter, writing a 400 on failure
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter").
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// parseQueryID parses a numeric query parameter, writing a 400 on failure
func parseQueryID(ctx *gin.Context, value, name string) (int64, bool) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter").
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
