package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/altan/schoolhub/internal/app/models/dto"
	"github.com/altan/schoolhub/internal/app/services"
	"github.com/altan/schoolhub/internal/middleware"
)

// AIController proxies analysis requests to the external AI service
type AIController struct {
	aiService *services.AIService
}

// NewAIController creates a new AIController
func NewAIController(aiService *services.AIService) *AIController {
	return &AIController{aiService: aiService}
}

// Analyze forwards a task to the AI service
// @Summary Run an AI analysis task
// @Description Forwards a structured task to the AI service and returns its answer
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AnalyzeRequest true "Analysis task"
// @Success 200 {object} dto.APIResponse{data=dto.AnalyzeResult} "Analysis result"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 502 {object} dto.APIResponse "AI service unavailable"
// @Router /ai/analyze [post]
func (c *AIController) Analyze(ctx *gin.Context) {
	if _, ok := mustActor(ctx); !ok {
		return
	}

	var req dto.AnalyzeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	result, err := c.aiService.Analyze(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result, ""))
}
