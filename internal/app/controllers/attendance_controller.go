package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/altan/schoolhub/internal/app/models/dto"
	"github.com/altan/schoolhub/internal/app/services"
	"github.com/altan/schoolhub/internal/middleware"
)

// AttendanceController handles daily attendance operations
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// Record writes one student's attendance for one day
// @Summary Record attendance
// @Description Records a student's attendance for one day; a repeat record for the same day replaces the first
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RecordAttendanceRequest true "Attendance record"
// @Success 200 {object} dto.APIResponse{data=models.Attendance} "Attendance recorded"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Router /attendance [post]
func (c *AttendanceController) Record(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	var req dto.RecordAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	attendance, err := c.attendanceService.Record(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(attendance, "Attendance recorded successfully"))
}

// ListByClass returns a class's attendance sheet for one day
// @Summary List class attendance
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param classId path int true "Class ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance} "Attendance records"
// @Failure 400 {object} dto.APIResponse "Invalid date"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /attendance/class/{classId} [get]
func (c *AttendanceController) ListByClass(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	classID, ok := parseIDParam(ctx, "classId")
	if !ok {
		return
	}

	records, err := c.attendanceService.ListByClassDate(ctx, actor, classID, ctx.Query("date"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(records, ""))
}

// ListByStudent returns one student's attendance in a date range
// @Summary List student attendance
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance} "Attendance records"
// @Failure 400 {object} dto.APIResponse "Invalid date range"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Access denied"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Router /attendance/student/{studentId} [get]
func (c *AttendanceController) ListByStudent(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	records, err := c.attendanceService.ListByStudent(ctx, actor, studentID, ctx.Query("from"), ctx.Query("to"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(records, ""))
}

// Summary returns one student's per-status attendance counts
// @Summary Attendance summary
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.AttendanceSummary} "Summary"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Access denied"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Router /attendance/student/{studentId}/summary [get]
func (c *AttendanceController) Summary(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	summary, err := c.attendanceService.Summary(ctx, actor, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary, ""))
}
