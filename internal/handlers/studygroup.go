package handlers

import (
	"net/http"

	"prepwise-backend/internal/middleware"
	"prepwise-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type StudyGroupHandler struct {
	groupService *services.StudyGroupService
}

func NewStudyGroupHandler(groupService *services.StudyGroupService) *StudyGroupHandler {
	return &StudyGroupHandler{groupService: groupService}
}

type CreateStudyGroupRequest struct {
	Name    string   `json:"name" binding:"required,min=1,max=255" example:"CISM crew"`
	Members []string `json:"members" binding:"required"`
}

// Create godoc
// @Summary      Create a named study group
// @Tags         study-groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateStudyGroupRequest true "Group data"
// @Success      201 {object} StudyGroup
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/study-groups [post]
func (h *StudyGroupHandler) Create(c *gin.Context) {
	var req CreateStudyGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	group, err := h.groupService.Create(middleware.CurrentUser(c), req.Name, req.Members)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, group)
}

// List godoc
// @Summary      List own study groups
// @Description  Non-premium users receive an empty list
// @Tags         study-groups
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} StudyGroup
// @Router       /api/v1/study-groups [get]
func (h *StudyGroupHandler) List(c *gin.Context) {
	groups, err := h.groupService.List(middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// Dashboard godoc
// @Summary      Study group dashboard
// @Description  Named and ad-hoc groups with per-member progress stats
// @Tags         study-groups
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} services.GroupView
// @Router       /api/v1/study-groups/dashboard [get]
func (h *StudyGroupHandler) Dashboard(c *gin.Context) {
	views, err := h.groupService.Dashboard(middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
