package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"wanderers_backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()

	handler := NewAuthHandler(db, testJWTSecret, time.Hour)
	app := fiber.New()
	app.Post("/api/auth/register", handler.Register)
	app.Post("/api/auth/login", handler.Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	app := setupAuthApp(t, db)

	resp := postJSON(t, app, "/api/auth/register",
		`{"username":"user1","email":"user1@example.com","password":"password123"}`)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/auth/login",
		`{"email":"user1@example.com","password":"password123"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
		User  struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "user1", body.User.Username)

	// The issued token verifies against the configured secret.
	app.Get("/api/me", utils.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("user_id")})
	})
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+body.Token)
	authed, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, authed.StatusCode)
}

func TestRegisterShortPassword(t *testing.T) {
	db := setupTestDB(t)
	app := setupAuthApp(t, db)

	resp := postJSON(t, app, "/api/auth/register",
		`{"username":"user1","email":"user1@example.com","password":"short"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	app := setupAuthApp(t, db)

	resp := postJSON(t, app, "/api/auth/register",
		`{"username":"user1","email":"user1@example.com","password":"password123"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/auth/register",
		`{"username":"other","email":"user1@example.com","password":"password123"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	app := setupAuthApp(t, db)
	createTestUser(t, db, "user1", "user1@example.com")

	resp := postJSON(t, app, "/api/auth/login",
		`{"email":"user1@example.com","password":"wrong-password"}`)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	app := setupAuthApp(t, db)

	resp := postJSON(t, app, "/api/auth/login",
		`{"email":"nobody@example.com","password":"password123"}`)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
