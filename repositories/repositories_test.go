package repositories

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a throwaway sqlite database with foreign keys enforced, so
// cascade rules behave like production.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", filepath.Join(t.TempDir(), "test.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Resource{},
		&models.Review{},
		&models.DownloadEvent{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, college string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Student " + email,
		Email:        email,
		PasswordHash: "x",
		Phone:        "0000000000",
		College:      college,
		Branch:       "CSE",
		Semester:     "5",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedResource(t *testing.T, db *gorm.DB, owner *models.User, privacy models.Privacy) *models.Resource {
	t.Helper()

	resource := &models.Resource{
		UserID:           owner.ID,
		Title:            "OS Notes",
		Subject:          "Operating Systems",
		Semester:         "5",
		ResourceType:     "Notes",
		YearBatch:        "2024",
		Filename:         fmt.Sprintf("20240309_143005_%d_notes.pdf", owner.ID),
		OriginalFilename: "notes.pdf",
		FileSize:         5000,
		Privacy:          privacy,
	}
	require.NoError(t, db.Create(resource).Error)
	return resource
}
