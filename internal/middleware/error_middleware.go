package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/altan/schoolhub/internal/app/models/dto"
	"github.com/altan/schoolhub/internal/pkg/apperrors"
	"github.com/altan/schoolhub/internal/pkg/logger"
)

// HandleAPIError maps service errors onto the standard error envelope. Every
// controller funnels its error path through here so status codes and error
// codes stay consistent across the API.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Account is disabled")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenExpired, "Token has expired")
	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenNotFound),
		errors.Is(err, apperrors.ErrTokenRevoked):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenInvalid, "Invalid token")

	// Authorization
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeInsufficientPermissions, "Insufficient permissions for this operation")
	case errors.Is(err, apperrors.ErrAccessDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeAccessDenied, "Access to this resource is denied")

	// Not found
	case errors.Is(err, apperrors.ErrStudentNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeNotFound, "Student not found")
	case errors.Is(err, apperrors.ErrClassNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeNotFound, "Class not found")
	case errors.Is(err, apperrors.ErrSubjectNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeNotFound, "Subject not found")
	case errors.Is(err, apperrors.ErrScheduleNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeNotFound, "Schedule not found")
	case errors.Is(err, apperrors.ErrGradeNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeNotFound, "Grade not found")
	case errors.Is(err, apperrors.ErrSchoolNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeNotFound, "School not found")
	case errors.Is(err, apperrors.ErrAttendanceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeNotFound, "Attendance record not found")
	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeNotFound, "User not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeNotFound, "Resource not found")

	// Duplicates
	case errors.Is(err, apperrors.ErrStudentCodeExists):
		respond(c, http.StatusConflict, dto.ErrorCodeDuplicateCode, "Student code already exists in this school")
	case errors.Is(err, apperrors.ErrClassCodeExists):
		respond(c, http.StatusConflict, dto.ErrorCodeDuplicateCode, "Class code already exists in this school")
	case errors.Is(err, apperrors.ErrSubjectCodeExists):
		respond(c, http.StatusConflict, dto.ErrorCodeDuplicateCode, "Subject code already exists in this school")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeConflict, "Email already exists")

	// Scheduling
	case errors.Is(err, apperrors.ErrClassSlotTaken):
		respond(c, http.StatusConflict, dto.ErrorCodeScheduleConflict, "Class already has a subject scheduled in this period")
	case errors.Is(err, apperrors.ErrTeacherSlotTaken):
		respond(c, http.StatusConflict, dto.ErrorCodeScheduleConflict, "Teacher is already scheduled in this period")
	case errors.Is(err, apperrors.ErrScheduleTeacherWrong):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Schedule teacher must have the TEACHER role")

	// Capacity and referential guards
	case errors.Is(err, apperrors.ErrClassFull):
		respond(c, http.StatusBadRequest, dto.ErrorCodeClassFull, "Class is at maximum capacity")
	case errors.Is(err, apperrors.ErrClassHasStudents):
		respond(c, http.StatusBadRequest, dto.ErrorCodeConflict, "Class has enrolled students and cannot be deleted")
	case errors.Is(err, apperrors.ErrSubjectInUse):
		respond(c, http.StatusBadRequest, dto.ErrorCodeConflict, "Subject has associated schedules or grades and cannot be deleted")

	// Grades
	case errors.Is(err, apperrors.ErrInvalidGradeType):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Unknown grade component type")
	case errors.Is(err, apperrors.ErrGradeOutOfRange):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Grade value must be between 0 and 10")
	case errors.Is(err, apperrors.ErrGradeWrongSubject):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Subject does not belong to the student's school")

	// Attendance
	case errors.Is(err, apperrors.ErrStudentNotEnrolled):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Student is not enrolled in this class")

	// AI bridge
	case errors.Is(err, apperrors.ErrAIBridgeUnavailable):
		respond(c, http.StatusBadGateway, dto.ErrorCodeAIUnavailable, "AI service is unavailable")

	// Generic
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, errorMessage(err, "Validation failed"))
	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeConflict, errorMessage(err, "Conflict"))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "An unexpected error occurred")
	}
}

// HandleValidationError maps gin binding failures to the validation envelope.
func HandleValidationError(c *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Request validation failed")
	errorDetail = errorDetail.WithDetails(err.Error())
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// errorMessage prefers the wrapped message when a CustomError carries one.
func errorMessage(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
