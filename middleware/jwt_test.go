package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"scholaria/config"
	"scholaria/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", middleware.JWTMiddleware, func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{
			"userId": c.Locals("userId"),
			"role":   c.Locals("role"),
		})
	})
	return app
}

func request(t *testing.T, app *fiber.App, authHeader string) int {
	t.Helper()

	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestJWTRoundTrip(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret", JWTExpiry: 1}
	app := protectedApp()

	token, err := middleware.GenerateJWT(42, "Ada", "lecturer", "ada@example.com")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, request(t, app, "Bearer "+token))
}

func TestJWTMissingOrMalformedHeader(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret", JWTExpiry: 1}
	app := protectedApp()

	assert.Equal(t, http.StatusUnauthorized, request(t, app, ""))
	assert.Equal(t, http.StatusUnauthorized, request(t, app, "Token abc"))
	assert.Equal(t, http.StatusUnauthorized, request(t, app, "Bearer not-a-token"))
}

func TestJWTWrongKey(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret", JWTExpiry: 1}
	app := protectedApp()

	config.AppConfig.JWTKey = "other-secret"
	token, err := middleware.GenerateJWT(42, "Ada", "lecturer", "ada@example.com")
	require.NoError(t, err)
	config.AppConfig.JWTKey = "test-secret"

	assert.Equal(t, http.StatusUnauthorized, request(t, app, "Bearer "+token))
}

func TestJWTExpiredToken(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret", JWTExpiry: 1}
	app := protectedApp()

	claims := jwt.MapClaims{
		"userId": 42,
		"role":   "student",
		"iat":    time.Now().Add(-2 * time.Hour).Unix(),
		"exp":    time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, request(t, app, "Bearer "+token))
}

func TestJWTRejectsUnexpectedAlgorithm(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret", JWTExpiry: 1}
	app := protectedApp()

	// alg=none with an empty signature must never pass
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId": 42,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, request(t, app, "Bearer "+token))
}
