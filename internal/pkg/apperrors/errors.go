package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")
	ErrAccessDenied     = errors.New("access to this resource is denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Student errors
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrStudentCodeExists  = errors.New("student code already exists in this school")
	ErrStudentNotEnrolled = errors.New("student is not enrolled in this class")
)

// Class errors
var (
	ErrClassNotFound    = errors.New("class not found")
	ErrClassCodeExists  = errors.New("class with this code already exists in this school")
	ErrClassFull        = errors.New("class is at maximum capacity")
	ErrClassHasStudents = errors.New("class has enrolled students and cannot be deleted")
)

// Subject errors
var (
	ErrSubjectNotFound   = errors.New("subject not found")
	ErrSubjectCodeExists = errors.New("subject with this code already exists in this school")
	ErrSubjectInUse      = errors.New("subject has associated schedules or grades and cannot be deleted")
)

// Schedule errors
var (
	ErrScheduleNotFound     = errors.New("schedule not found")
	ErrClassSlotTaken       = errors.New("class already has a subject scheduled in this period")
	ErrTeacherSlotTaken     = errors.New("teacher is already scheduled in this period")
	ErrScheduleTeacherWrong = errors.New("schedule teacher must have the TEACHER role")
)

// Grade errors
var (
	ErrGradeNotFound     = errors.New("grade not found")
	ErrInvalidGradeType  = errors.New("unknown grade component type")
	ErrGradeOutOfRange   = errors.New("grade value must be between 0 and 10")
	ErrGradeWrongSubject = errors.New("grade subject does not belong to the student's school")
)

// School errors
var (
	ErrSchoolNotFound = errors.New("school not found")
)

// Attendance errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// AI bridge errors
var (
	ErrAIBridgeUnavailable = errors.New("ai service unavailable")
)

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
