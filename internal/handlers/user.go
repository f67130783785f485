package handlers

import (
	"net/http"

	"prepwise-backend/internal/middleware"
	"prepwise-backend/internal/models"
	"prepwise-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	authService    *services.AuthService
	paymentService *services.PaymentService
	db             *gorm.DB
}

func NewUserHandler(authService *services.AuthService, paymentService *services.PaymentService, db *gorm.DB) *UserHandler {
	return &UserHandler{authService: authService, paymentService: paymentService, db: db}
}

// Me godoc
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} User
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// ValidateUsername godoc
// @Summary      Check whether a username exists
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "Username"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/users/validate/{username} [get]
func (h *UserHandler) ValidateUsername(c *gin.Context) {
	username := c.Param("username")
	c.JSON(http.StatusOK, gin.H{
		"exists":   h.authService.UsernameExists(username),
		"username": username,
	})
}

// Upgrade godoc
// @Summary      Simulate a premium upgrade
// @Description  Grants premium for 6 months to the calling user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} User
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/users/upgrade [post]
func (h *UserHandler) Upgrade(c *gin.Context) {
	user, err := h.paymentService.Upgrade(middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers godoc
// @Summary      List all users (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} User
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("created_at").Find(&users).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
