package handlers

import (
	"net/http"

	"prepwise-backend/internal/middleware"
	"prepwise-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	progressService *services.ProgressService
}

func NewProgressHandler(progressService *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// Upsert godoc
// @Summary      Record answer progress
// @Description  Creates or updates the single progress row for (user, question)
// @Tags         progress
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.ProgressUpdate true "Progress update"
// @Success      200 {object} UserProgress
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/progress [post]
func (h *ProgressHandler) Upsert(c *gin.Context) {
	var req services.ProgressUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	progress, err := h.progressService.Upsert(middleware.CurrentUser(c).ID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// List godoc
// @Summary      List own progress
// @Tags         progress
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} UserProgress
// @Router       /api/v1/progress [get]
func (h *ProgressHandler) List(c *gin.Context) {
	rows, err := h.progressService.List(middleware.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ResetQuiz godoc
// @Summary      Reset progress for one quiz
// @Tags         progress
// @Produce      json
// @Security     BearerAuth
// @Param        quiz_id path string true "Quiz ID"
// @Success      200 {object} MessageResponse
// @Router       /api/v1/progress/reset-block/{quiz_id} [delete]
func (h *ProgressHandler) ResetQuiz(c *gin.Context) {
	if err := h.progressService.ResetQuiz(middleware.CurrentUser(c).ID, c.Param("quiz_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "progress reset"})
}

// ResetAll godoc
// @Summary      Reset all own progress
// @Tags         progress
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} MessageResponse
// @Router       /api/v1/progress/reset-all [delete]
func (h *ProgressHandler) ResetAll(c *gin.Context) {
	if err := h.progressService.ResetAll(middleware.CurrentUser(c).ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "progress reset"})
}
