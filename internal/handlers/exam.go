package handlers

import (
	"net/http"

	"prepwise-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ExamHandler struct {
	examService *services.ExamService
}

func NewExamHandler(examService *services.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// ListAvailable godoc
// @Summary      List exams available on the server
// @Tags         exams
// @Produce      json
// @Success      200 {object} map[string][]string
// @Router       /api/v1/exams/available [get]
func (h *ExamHandler) ListAvailable(c *gin.Context) {
	c.JSON(http.StatusOK, h.examService.ListAvailable())
}

// Autoload godoc
// @Summary      Load an exam file by name
// @Tags         exams
// @Produce      json
// @Security     BearerAuth
// @Param        exam_name path string true "Exam name"
// @Success      200 {object} map[string]string
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/exams/autoload/{exam_name} [get]
func (h *ExamHandler) Autoload(c *gin.Context) {
	content, filename, err := h.examService.Autoload(c.Param("exam_name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"content":  content,
		"filename": filename,
	})
}
