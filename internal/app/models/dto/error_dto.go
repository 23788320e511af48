package dto

import (
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Authentication errors
	ErrorCodeTokenRequired      ErrorCode = "TOKEN_REQUIRED"
	ErrorCodeTokenInvalid       ErrorCode = "TOKEN_INVALID"
	ErrorCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrorCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrorCodeInsufficientPermissions ErrorCode = "INSUFFICIENT_PERMISSIONS"
	ErrorCodeAccessDenied            ErrorCode = "ACCESS_DENIED"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Resource errors
	ErrorCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrorCodeConflict         ErrorCode = "CONFLICT"
	ErrorCodeDuplicateCode    ErrorCode = "DUPLICATE_CODE"
	ErrorCodeScheduleConflict ErrorCode = "SCHEDULE_CONFLICT"
	ErrorCodeClassFull        ErrorCode = "CLASS_FULL"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "INTERNAL_ERROR"
	ErrorCodeAIUnavailable  ErrorCode = "AI_UNAVAILABLE"
)

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code    ErrorCode   `json:"code" example:"VALIDATION_FAILED"`
	Message string      `json:"message" example:"Grade value must be between 0 and 10"`
	Details interface{} `json:"details,omitempty"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:    code,
		Message: message,
	}
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse creates a standard error envelope
func NewErrorResponse(errorDetail *ErrorDetail) APIResponse {
	return APIResponse{
		Success:   false,
		Error:     errorDetail,
		Timestamp: time.Now(),
	}
}
