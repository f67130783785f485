package handlers

import (
	"net/http"

	"prepwise-backend/internal/middleware"
	"prepwise-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type WorkplaceHandler struct {
	workplaceService *services.WorkplaceService
}

func NewWorkplaceHandler(workplaceService *services.WorkplaceService) *WorkplaceHandler {
	return &WorkplaceHandler{workplaceService: workplaceService}
}

type CreateWorkplaceRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255" example:"My Certifications"`
}

// Create godoc
// @Summary      Create a workplace
// @Tags         workplaces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateWorkplaceRequest true "Workplace data"
// @Success      201 {object} Workplace
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/workplaces [post]
func (h *WorkplaceHandler) Create(c *gin.Context) {
	var req CreateWorkplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	workplace, err := h.workplaceService.Create(middleware.CurrentUser(c), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, workplace)
}

// List godoc
// @Summary      List own workplaces
// @Tags         workplaces
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Workplace
// @Router       /api/v1/workplaces [get]
func (h *WorkplaceHandler) List(c *gin.Context) {
	workplaces, err := h.workplaceService.List(middleware.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workplaces)
}

// Delete godoc
// @Summary      Delete a workplace and its quizzes
// @Tags         workplaces
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Workplace ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/workplaces/{id} [delete]
func (h *WorkplaceHandler) Delete(c *gin.Context) {
	if err := h.workplaceService.Delete(middleware.CurrentUser(c).ID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "workplace deleted"})
}
