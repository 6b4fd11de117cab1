package handlers

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/logging"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/middleware"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/models"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/repositories"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAdminEmail = "admin@example.com"

type testEnv struct {
	app     *fiber.App
	db      *gorm.DB
	blobs   *storage.Store
	blobDir string
}

// newTestEnv wires the full handler stack over a throwaway sqlite database
// and blob directory, with the same route table as main.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", filepath.Join(t.TempDir(), "test.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Resource{}, &models.Review{}, &models.DownloadEvent{},
	))

	blobDir := t.TempDir()
	blobs, err := storage.New(blobDir)
	require.NoError(t, err)

	log := logging.Default()
	userRepo := repositories.NewUserRepository(db)
	resourceRepo := repositories.NewResourceRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	downloadRepo := repositories.NewDownloadRepository(db)

	auth := NewAuthHandlers(userRepo, log, testAdminEmail, time.Hour)
	resources := NewResourceHandlers(userRepo, resourceRepo, reviewRepo, downloadRepo, blobs, log)
	reviews := NewReviewHandlers(reviewRepo, resourceRepo, log)
	accounts := NewAccountHandlers(userRepo, resourceRepo, reviewRepo, downloadRepo)

	app := fiber.New(fiber.Config{BodyLimit: 16 * 1024 * 1024})

	app.Post("/signup", auth.SignupHandler)
	app.Post("/login", auth.LoginHandler)
	app.Post("/logout", auth.LogoutHandler)

	authed := app.Group("", middleware.RequireAuth())
	authed.Get("/dashboard", accounts.DashboardHandler)
	authed.Get("/my_profile", accounts.ProfileHandler)
	authed.Get("/get_student_info",
		middleware.RequireRole(middleware.RoleAdmin, middleware.RoleStudent),
		accounts.StudentInfoHandler)
	authed.Get("/my_resources", resources.ListOwnHandler)
	authed.Post("/upload_resource", resources.UploadHandler)
	authed.Post("/edit_resource/:id", resources.EditHandler)
	authed.Post("/delete_resource/:id", resources.DeleteHandler)
	authed.Get("/download/:id", resources.DownloadHandler)
	authed.Get("/access_resources", resources.ListAccessibleHandler)
	authed.Get("/resource/:id", resources.DetailHandler)
	authed.Get("/download_history", resources.DownloadHistoryHandler)
	authed.Post("/submit_review/:id", reviews.SubmitHandler)
	authed.Post("/delete_review/:id", reviews.DeleteHandler)

	return &testEnv{app: app, db: db, blobs: blobs, blobDir: blobDir}
}

func (e *testEnv) createUser(t *testing.T, email, college string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         "Student " + email,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        "0000000000",
		College:      college,
		Branch:       "CSE",
		Semester:     "5",
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

// createResource stores a blob and its metadata row, as the upload
// pipeline would.
func (e *testEnv) createResource(t *testing.T, owner *models.User, privacy models.Privacy, content string) *models.Resource {
	t.Helper()

	storedName := storage.StoredName("notes.pdf", time.Now())
	size, err := e.blobs.Save(storedName, bytes.NewReader([]byte(content)))
	require.NoError(t, err)

	resource := &models.Resource{
		UserID:           owner.ID,
		Title:            "OS Notes",
		Subject:          "Operating Systems",
		Semester:         "5",
		ResourceType:     "Notes",
		YearBatch:        "2024",
		Filename:         storedName,
		OriginalFilename: "notes.pdf",
		FileSize:         size,
		Privacy:          privacy,
	}
	require.NoError(t, e.db.Create(resource).Error)
	return resource
}

func (e *testEnv) sessionFor(user *models.User) *http.Cookie {
	role := middleware.RoleStudent
	if user.Email == testAdminEmail {
		role = middleware.RoleAdmin
	}
	token := middleware.CreateSession(user.ID, user.Email, role, time.Hour)
	return &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}

func (e *testEnv) request(t *testing.T, method, target string, body io.Reader, contentType string, session *http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if session != nil {
		req.AddCookie(session)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// formBody builds a urlencoded form body.
func formBody(values map[string]string) (io.Reader, string) {
	var buf bytes.Buffer
	first := true
	for k, v := range values {
		if !first {
			buf.WriteByte('&')
		}
		first = false
		buf.WriteString(k + "=" + v)
	}
	return &buf, fiber.MIMEApplicationForm
}

// multipartBody builds a multipart body with form fields and one file part.
func multipartBody(t *testing.T, fields map[string]string, fileField, filename string, content []byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if filename != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}
