package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/piyush5566/job-portal-go/internal/config"
	"github.com/piyush5566/job-portal-go/internal/models"
	"github.com/piyush5566/job-portal-go/internal/storage"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// An in-memory sqlite DB exists per connection; pin the pool to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Application{},
		&models.RefreshToken{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username:       username,
		Email:          username + "@example.com",
		Password:       string(hash),
		Role:           role,
		ProfilePicture: models.DefaultProfilePicture,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedJob(t *testing.T, db *gorm.DB, poster *models.User, title string) *models.Job {
	t.Helper()

	job := models.Job{
		Title:       title,
		Description: "Build and run backend services.",
		Salary:      "$90000",
		Location:    "Berlin",
		Category:    "Engineering",
		Company:     poster.Username + " GmbH",
		CompanyLogo: models.DefaultCompanyLogo,
		PostedDate:  time.Now().UTC(),
		PosterID:    poster.ID,
	}
	require.NoError(t, db.Create(&job).Error)
	return &job
}

func seedApplication(t *testing.T, db *gorm.DB, job *models.Job, applicant *models.User, resumePath string) *models.Application {
	t.Helper()

	application := models.Application{
		JobID:           job.ID,
		ApplicantID:     applicant.ID,
		ApplicationDate: time.Now().UTC(),
		Status:          models.StatusApplied,
		ResumePath:      resumePath,
	}
	require.NoError(t, db.Create(&application).Error)
	return &application
}

func newTestMedia(t *testing.T) (*storage.MediaStore, *storage.MemoryStore) {
	t.Helper()
	remote := storage.NewMemoryStore()
	return storage.NewMediaStore(t.TempDir(), remote), remote
}
