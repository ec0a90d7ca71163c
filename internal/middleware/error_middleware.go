package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/acadex/acadex/internal/app/models/dto"
	"github.com/acadex/acadex/internal/pkg/apperrors"
	"github.com/acadex/acadex/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses with stable error
// codes. Unrecognized errors become a logged, generic 500.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	message := ""
	if errors.As(err, &custom) {
		message = custom.Message
	}

	respond := func(status int, code dto.ErrorCode, fallback string) {
		if message == "" {
			message = fallback
		}
		c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
	}

	switch {
	// 404
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrProfileNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student profile not found")
	case errors.Is(err, apperrors.ErrAchievementNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Achievement not found")
	case errors.Is(err, apperrors.ErrDepartmentNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Department not found")
	case errors.Is(err, apperrors.ErrNoTeacherAvailable):
		respond(http.StatusNotFound, dto.ErrorCodeNoTeacherAvailable, "No teacher available for assignment")

	// 403
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrUserProtected):
		respond(http.StatusForbidden, dto.ErrorCodeResourceProtected, "Protected account cannot be deleted")

	// 401
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(http.StatusUnauthorized, dto.ErrorCodeAccountDisabled, "Account is disabled")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenRevoked),
		errors.Is(err, apperrors.ErrTokenInvalid):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")

	// 409
	case errors.Is(err, apperrors.ErrInvalidStateTransition):
		respond(http.StatusConflict, dto.ErrorCodeInvalidTransition, "Invalid achievement state transition")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrRollNumberAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Roll number already exists")
	case errors.Is(err, apperrors.ErrProfileAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Student already has a profile")
	case errors.Is(err, apperrors.ErrDepartmentAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Department already exists")
	case errors.Is(err, apperrors.ErrDepartmentHasRelations):
		respond(http.StatusConflict, dto.ErrorCodeResourceProtected, "Department has associated data")

	// 400
	case errors.Is(err, apperrors.ErrFeedbackRequired):
		respond(http.StatusBadRequest, dto.ErrorCodeFeedbackRequired, "Feedback is required when rejecting an achievement")
	case errors.Is(err, apperrors.ErrNotATeacher):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Account is not a teacher")
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed")

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}

// HandleValidationError maps a request binding failure to a 400 response.
// Validator errors are flattened into per-field messages.
func HandleValidationError(c *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fields = append(fields, fmt.Sprintf("%s failed on the '%s' rule", fieldErr.Field(), fieldErr.Tag()))
		}
		errorDetail = errorDetail.
			WithField(validationErrs[0].Field()).
			WithDetails(strings.Join(fields, "; "))
	} else {
		errorDetail = errorDetail.WithDetails(err.Error())
	}

	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
