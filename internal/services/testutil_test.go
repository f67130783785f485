package services

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"prepwise-backend/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Workplace{},
		&models.Quiz{},
		&models.Question{},
		&models.UserProgress{},
		&models.CommunityNote{},
		&models.StudyGroup{},
	))
	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func createUser(t *testing.T, db *gorm.DB, username string, premium bool) *models.User {
	t.Helper()
	user := models.User{Username: username, IsPremium: premium}
	require.NoError(t, db.Create(&user).Error)
	return &user
}
