package authController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	authRoutes "elearn/routers/authRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: bcrypt.MinCost,
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	return resp, decoded
}

func TestSignupLoginRoundTrip(t *testing.T) {
	app := setupAuthApp(t)

	resp, _ := postJSON(t, app, "/auth/signup", map[string]string{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "password123",
		"role":     "INSTRUCTOR",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := postJSON(t, app, "/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
}

func TestSignupSeedsInstructorPermissions(t *testing.T) {
	app := setupAuthApp(t)

	resp, _ := postJSON(t, app, "/auth/signup", map[string]string{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "password123",
		"role":     "INSTRUCTOR",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	db := database.Database.Db

	var user models.User
	require.NoError(t, db.Where("email = ?", "ada@example.com").First(&user).Error)

	for _, perm := range []string{middleware.PermAddCourse, middleware.PermChangeCourse, middleware.PermDeleteCourse} {
		allowed, err := middleware.HasPermission(db, user.ID, perm)
		require.NoError(t, err)
		assert.True(t, allowed, perm)
	}
}

func TestSignupStudentGetsNoCoursePermissions(t *testing.T) {
	app := setupAuthApp(t)

	resp, _ := postJSON(t, app, "/auth/signup", map[string]string{
		"name":     "Sue Student",
		"email":    "sue@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	db := database.Database.Db

	var user models.User
	require.NoError(t, db.Where("email = ?", "sue@example.com").First(&user).Error)

	allowed, err := middleware.HasPermission(db, user.ID, middleware.PermAddCourse)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestSignupDuplicateEmail(t *testing.T) {
	app := setupAuthApp(t)

	payload := map[string]string{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "password123",
	}

	resp, _ := postJSON(t, app, "/auth/signup", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = postJSON(t, app, "/auth/signup", payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupAuthApp(t)

	resp, _ := postJSON(t, app, "/auth/signup", map[string]string{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = postJSON(t, app, "/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSignupValidation(t *testing.T) {
	app := setupAuthApp(t)

	resp, body := postJSON(t, app, "/auth/signup", map[string]string{
		"name":     "A",
		"email":    "not-an-email",
		"password": "short",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	fieldErrors := body["data"].(map[string]interface{})
	assert.Contains(t, fieldErrors, "name")
	assert.Contains(t, fieldErrors, "email")
	assert.Contains(t, fieldErrors, "password")
}
