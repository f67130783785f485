package middleware

import (
	"net/http"
	"strings"

	"prepwise-backend/internal/models"
	"prepwise-backend/internal/services"

	"github.com/gin-gonic/gin"
)

const userKey = "current_user"

// JWTAuth resolves the bearer token to a user and stores it on the
// request context.
func JWTAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		user, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// AdminOnly allows only users carrying the admin capability. It must
// run after JWTAuth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "the user does not have enough privileges"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by JWTAuth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	val, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := val.(*models.User)
	return user
}
