package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/altan/schoolhub/internal/app/models/dto"
	"github.com/altan/schoolhub/internal/app/repositories"
	"github.com/altan/schoolhub/internal/app/services"
	"github.com/altan/schoolhub/internal/middleware"
)

// GradeController handles grade submission and queries
type GradeController struct {
	gradeService *services.GradeService
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService *services.GradeService) *GradeController {
	return &GradeController{gradeService: gradeService}
}

// Submit writes one component score
// @Summary Submit a grade component
// @Description Writes one component score on a 0-10 scale and recomputes the average, percentage and letter grade
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitGradeRequest true "Component score"
// @Success 200 {object} dto.APIResponse{data=models.Grade} "Updated grade row"
// @Failure 400 {object} dto.APIResponse "Invalid component type or value out of range"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Router /grades [post]
func (c *GradeController) Submit(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	var req dto.SubmitGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	grade, err := c.gradeService.Submit(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grade, "Grade submitted successfully"))
}

// GetByID retrieves one grade row
// @Summary Get grade by ID
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade ID"
// @Success 200 {object} dto.APIResponse{data=models.Grade} "Grade"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Access denied"
// @Failure 404 {object} dto.APIResponse "Grade not found"
// @Router /grades/{id} [get]
func (c *GradeController) GetByID(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	grade, err := c.gradeService.GetByID(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grade, ""))
}

// List retrieves grade rows visible to the caller
// @Summary List grades
// @Description Lists grades; students and parents only see their own linked students
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Filter by student"
// @Param subjectId query int false "Filter by subject"
// @Param classId query int false "Filter by class"
// @Param semester query string false "Filter by semester"
// @Param academicYear query string false "Filter by academic year"
// @Success 200 {object} dto.APIResponse{data=[]models.Grade} "Grades"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /grades [get]
func (c *GradeController) List(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	filter := repositories.GradeFilter{
		StudentID:    parseOptionalInt64Query(ctx, "studentId"),
		SubjectID:    parseOptionalInt64Query(ctx, "subjectId"),
		ClassID:      parseOptionalInt64Query(ctx, "classId"),
		Semester:     ctx.Query("semester"),
		AcademicYear: ctx.Query("academicYear"),
	}

	grades, err := c.gradeService.List(ctx, actor, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grades, ""))
}

// Delete removes a grade row
// @Summary Delete grade
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade ID"
// @Success 200 {object} dto.APIResponse "Grade deleted"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 404 {object} dto.APIResponse "Grade not found"
// @Router /grades/{id} [delete]
func (c *GradeController) Delete(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.gradeService.Delete(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Grade deleted successfully"))
}
