package handlers

import (
	"net/http"
	"strconv"

	"prepwise-backend/internal/middleware"
	"prepwise-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	aiService *services.AIService
}

func NewAIHandler(aiService *services.AIService) *AIHandler {
	return &AIHandler{aiService: aiService}
}

type AnalyzeRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
}

// Status godoc
// @Summary      Check if AI features are available
// @Tags         ai
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/ai/status [get]
func (h *AIHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"available": h.aiService.IsAvailable()})
}

// Analyze godoc
// @Summary      Analyze a question with AI
// @Description  Premium only; the analysis is cached on the caller's progress row
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AnalyzeRequest true "Question to analyze"
// @Success      200 {object} map[string]string
// @Failure      403 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /api/v1/ai/analyze [post]
func (h *AIHandler) Analyze(c *gin.Context) {
	if !h.aiService.IsAvailable() {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "AI features are not configured"})
		return
	}

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	analysis, err := h.aiService.AnalyzeQuestion(c.Request.Context(), middleware.CurrentUser(c), req.QuestionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

// Generate godoc
// @Summary      Generate practice questions with AI
// @Description  Premium only; returns questions matching the import schema
// @Tags         ai
// @Produce      json
// @Security     BearerAuth
// @Param        exam_name query string false "Exam name" default(CISM)
// @Param        difficulty query string false "Difficulty" default(Medium)
// @Param        count query int false "Question count" default(5)
// @Success      200 {array} services.QuestionInput
// @Failure      403 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /api/v1/ai/generate [post]
func (h *AIHandler) Generate(c *gin.Context) {
	if !h.aiService.IsAvailable() {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "AI features are not configured"})
		return
	}

	examName := c.DefaultQuery("exam_name", "CISM")
	difficulty := c.DefaultQuery("difficulty", "Medium")
	count, _ := strconv.Atoi(c.DefaultQuery("count", "5"))

	questions, err := h.aiService.GenerateQuestions(c.Request.Context(), middleware.CurrentUser(c), examName, difficulty, count)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}
