package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	courseModels "elearn/models/course"
	authRoutes "elearn/routers/authRoutes"
	courseRoutes "elearn/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// envelope is the standard JSON response body
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:           "0",
		JWTKey:         "test-secret",
		SaltRound:      bcrypt.MinCost,
		UploadDir:      t.TempDir(),
		PurgeAfterDays: 30,
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	return app
}

// createUser inserts a user; instructors get the course permission grants
func createUser(t *testing.T, email, role string) models.User {
	t.Helper()
	db := database.Database.Db

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Name: "Test User", Email: email, Role: role, Password: string(hashed)}
	require.NoError(t, db.Create(&user).Error)

	if role == "INSTRUCTOR" {
		for _, perm := range []string{middleware.PermAddCourse, middleware.PermChangeCourse, middleware.PermDeleteCourse} {
			require.NoError(t, db.Create(&models.Permission{UserID: user.ID, Permission: perm}).Error)
		}
	}
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return token
}

func createSubject(t *testing.T, title, slug string) courseModels.Subject {
	t.Helper()
	subject := courseModels.Subject{Title: title, Slug: slug}
	require.NoError(t, database.Database.Db.Create(&subject).Error)
	return subject
}

func createCourse(t *testing.T, owner models.User, subject courseModels.Subject, title, slug string) courseModels.Course {
	t.Helper()
	course := courseModels.Course{
		OwnerID:   owner.ID,
		SubjectID: subject.ID,
		Title:     title,
		Slug:      slug,
		Overview:  "overview of " + title,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func createModule(t *testing.T, course courseModels.Course, title string, order int) courseModels.Module {
	t.Helper()
	module := courseModels.Module{CourseID: course.ID, Title: title, Description: "about " + title, OrderIndex: order}
	require.NoError(t, database.Database.Db.Create(&module).Error)
	return module
}

func createTextContent(t *testing.T, owner models.User, module courseModels.Module, title string, order int) (courseModels.Content, courseModels.Text) {
	t.Helper()
	db := database.Database.Db

	text := courseModels.Text{OwnerID: owner.ID, Title: title, Body: "body of " + title}
	require.NoError(t, db.Create(&text).Error)

	content := courseModels.Content{
		ModuleID:   module.ID,
		ItemType:   courseModels.ItemTypeText,
		ItemID:     text.ID,
		OrderIndex: order,
	}
	require.NoError(t, db.Create(&content).Error)
	return content, text
}

// doJSON performs a JSON request against the test app and returns the raw body
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// decodeEnvelope unmarshals the standard response envelope
func decodeEnvelope(t *testing.T, raw []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}
