package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"prepwise-backend/internal/models"
	"prepwise-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *services.AuthService, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	authService := services.NewAuthService(db, "test-secret", nil)

	router := gin.New()
	router.GET("/me", JWTAuth(authService), func(c *gin.Context) {
		c.JSON(http.StatusOK, CurrentUser(c))
	})
	router.GET("/admin", JWTAuth(authService), AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, authService, db
}

func request(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	router, authService, db := newAuthRouter(t)
	require.NoError(t, db.Create(&models.User{Username: "alice"}).Error)

	token, err := authService.GenerateToken("alice")
	require.NoError(t, err)

	w := request(router, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestJWTAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	router, _, _ := newAuthRouter(t)

	w := request(router, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(router, "/me", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnly(t *testing.T) {
	router, authService, db := newAuthRouter(t)
	require.NoError(t, db.Create(&models.User{Username: "alice"}).Error)
	require.NoError(t, db.Create(&models.User{Username: "root", IsAdmin: true}).Error)

	userToken, err := authService.GenerateToken("alice")
	require.NoError(t, err)
	adminToken, err := authService.GenerateToken("root")
	require.NoError(t, err)

	w := request(router, "/admin", userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(router, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
