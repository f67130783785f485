package handlers

import (
	"net/http"

	"prepwise-backend/internal/middleware"
	"prepwise-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	noteService *services.NoteService
}

func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// ListForQuestion godoc
// @Summary      Notes visible on a question
// @Description  Notes pool across all copies of the same question content; filtered per viewer
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        question_id path string true "Question ID"
// @Success      200 {array} CommunityNote
// @Router       /api/v1/community-notes/{question_id} [get]
func (h *NoteHandler) ListForQuestion(c *gin.Context) {
	notes, err := h.noteService.VisibleNotes(middleware.CurrentUser(c), c.Param("question_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// Create godoc
// @Summary      Create a community note
// @Description  Group visibility requires premium; unknown recipients are dropped silently
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.NoteInput true "Note data"
// @Success      201 {object} CommunityNote
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/community-notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	var req services.NoteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	note, err := h.noteService.Create(middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, note)
}
