// Package testutil bootstraps an application instance backed by a throwaway
// sqlite database for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"scholaria/config"
	"scholaria/database"
	"scholaria/models"
	announcementRoutes "scholaria/routers/announcementRoutes"
	authRoutes "scholaria/routers/authRoutes"
	commentRoutes "scholaria/routers/commentRoutes"
	courseRoutes "scholaria/routers/courseRoutes"
	materialRoutes "scholaria/routers/materialRoutes"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupApp wires config, a fresh sqlite database and all routers. The upload
// directory is a temp dir so file tests never touch the real one.
func SetupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:        "0",
		JWTKey:      "test-secret",
		JWTExpiry:   1,
		SaltRound:   bcrypt.MinCost,
		UploadDir:   t.TempDir(),
		MaxFileSize: 10 * 1024 * 1024,
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New(fiber.Config{
		BodyLimit: int(config.AppConfig.MaxFileSize) + 1024*1024,
	})

	api := app.Group("/api/v1")
	authRoutes.SetupAuthRoutes(api)
	courseRoutes.SetupCourseRoutes(api)
	announcementRoutes.SetupAnnouncementRoutes(api)
	materialRoutes.SetupMaterialRoutes(api)
	commentRoutes.SetupCommentRoutes(api)

	return app
}

// RegisterUser registers a user through the API and returns their token.
func RegisterUser(t *testing.T, app *fiber.App, name, email, role string) string {
	t.Helper()

	status, body := DoJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": "password123",
		"role":     role,
	})
	if status != http.StatusCreated {
		t.Fatalf("failed to register %s: status %d, body %v", email, status, body)
	}

	data := body["data"].(map[string]interface{})
	return data["token"].(string)
}

// UserID looks up a registered user's ID by email.
func UserID(t *testing.T, email string) uint {
	t.Helper()

	var user models.User
	if err := database.Database.Db.Where("email = ?", email).First(&user).Error; err != nil {
		t.Fatalf("user %s not found: %v", email, err)
	}
	return user.ID
}

// DoJSON performs a JSON request against the app and decodes the envelope.
func DoJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	body := make(map[string]interface{})
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("failed to decode response %q: %v", raw, err)
		}
	}

	return resp.StatusCode, body
}

// DoRaw performs a request and returns the raw response for streaming
// endpoints like download and preview.
func DoRaw(t *testing.T, app *fiber.App, method, path, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

// UploadFile performs a multipart upload with the given file content and
// declared content type.
func UploadFile(t *testing.T, app *fiber.App, token string, fields map[string]string, filename, contentType string, content []byte) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write form field %s: %v", k, err)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create file part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write file content: %v", err)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/api/v1/materials/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("upload request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	body := make(map[string]interface{})
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("failed to decode response %q: %v", raw, err)
		}
	}

	return resp.StatusCode, body
}
