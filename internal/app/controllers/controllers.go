// Package controllers contains the gin HTTP handlers. Controllers bind and
// validate requests, delegate to the service layer and translate errors
// through middleware.HandleAPIError.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appauth "github.com/altan/schoolhub/internal/app/auth"
	"github.com/altan/schoolhub/internal/app/models/dto"
	"github.com/altan/schoolhub/internal/app/services"
	"github.com/altan/schoolhub/internal/middleware"
)

// Controllers bundles all controller instances for route registration
type Controllers struct {
	AuthController       *AuthController
	StudentController    *StudentController
	ClassController      *ClassController
	SubjectController    *SubjectController
	ScheduleController   *ScheduleController
	GradeController      *GradeController
	AttendanceController *AttendanceController
	AIController         *AIController
}

// NewControllers creates all controllers over the shared services.
func NewControllers(svc *services.Services) *Controllers {
	return &Controllers{
		AuthController:       NewAuthController(svc.AuthService),
		StudentController:    NewStudentController(svc.StudentService),
		ClassController:      NewClassController(svc.ClassService),
		SubjectController:    NewSubjectController(svc.SubjectService),
		ScheduleController:   NewScheduleController(svc.ScheduleService),
		GradeController:      NewGradeController(svc.GradeService),
		AttendanceController: NewAttendanceController(svc.AttendanceService),
		AIController:         NewAIController(svc.AIService),
	}
}

// mustActor returns the authenticated actor or aborts with 401. Routes behind
// JWTAuth always have one; this guards against wiring mistakes.
func mustActor(ctx *gin.Context) (appauth.Actor, bool) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeTokenRequired, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
	}
	return actor, ok
}

// parseIDParam reads a numeric path parameter or responds with 400.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// parseOptionalInt64Query reads an optional numeric query parameter.
func parseOptionalInt64Query(ctx *gin.Context, name string) *int64 {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &value
}
