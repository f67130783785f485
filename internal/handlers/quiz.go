package handlers

import (
	"net/http"

	"prepwise-backend/internal/middleware"
	"prepwise-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

type AppendQuestionsRequest struct {
	Questions []services.QuestionInput `json:"questions" binding:"required"`
}

// Create godoc
// @Summary      Create a quiz with questions
// @Description  Import a question block; fingerprints are computed per question
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.QuizInput true "Quiz data"
// @Success      201 {object} Quiz
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/quizzes [post]
func (h *QuizHandler) Create(c *gin.Context) {
	var req services.QuizInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.Create(middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

// List godoc
// @Summary      List own quizzes
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Quiz
// @Router       /api/v1/quizzes [get]
func (h *QuizHandler) List(c *gin.Context) {
	quizzes, err := h.quizService.List(middleware.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

// AppendQuestions godoc
// @Summary      Append questions to a quiz
// @Description  Quota is checked against the resulting question total
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Quiz ID"
// @Param        request body AppendQuestionsRequest true "Questions"
// @Success      200 {object} Quiz
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id}/questions [patch]
func (h *QuizHandler) AppendQuestions(c *gin.Context) {
	var req AppendQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.AppendQuestions(middleware.CurrentUser(c), c.Param("id"), req.Questions)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// Delete godoc
// @Summary      Delete a quiz
// @Description  Cascades to questions, own progress rows and notes on those question ids
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Quiz ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quizzes/{id} [delete]
func (h *QuizHandler) Delete(c *gin.Context) {
	if err := h.quizService.Delete(middleware.CurrentUser(c).ID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "quiz deleted"})
}
