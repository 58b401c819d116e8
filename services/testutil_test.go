package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ascent-app/ascent-backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Streak{}, &models.CheckIn{}))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, committedAt *time.Time) *models.User {
	t.Helper()

	user := models.User{
		Username:           "tester",
		PasswordHash:       "x",
		Timezone:           "UTC",
		CommitmentSignedAt: committedAt,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func timePtr(t time.Time) *time.Time {
	return &t
}
