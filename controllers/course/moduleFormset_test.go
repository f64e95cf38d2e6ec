package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"elearn/database"
	courseModels "elearn/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleFormsetGet(t *testing.T) {
	app := setupTestApp(t)
	owner := createUser(t, "owner@example.com", "INSTRUCTOR")
	subject := createSubject(t, "Programming", "programming")
	course := createCourse(t, owner, subject, "Mine", "mine")
	createModule(t, course, "Intro", 0)
	createModule(t, course, "Advanced", 1)

	resp, raw := doJSON(t, app, http.MethodGet, "/courses/manage/"+itoa(course.ID)+"/modules", tokenFor(t, owner), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, raw)
	var data struct {
		Modules []courseModels.Module `json:"modules"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Modules, 2)
	assert.Equal(t, "Intro", data.Modules[0].Title)
	assert.Equal(t, "Advanced", data.Modules[1].Title)
}

func TestModuleFormsetGetNotOwned(t *testing.T) {
	app := setupTestApp(t)
	owner := createUser(t, "owner@example.com", "INSTRUCTOR")
	other := createUser(t, "other@example.com", "INSTRUCTOR")
	subject := createSubject(t, "Programming", "programming")
	course := createCourse(t, owner, subject, "Mine", "mine")

	resp, _ := doJSON(t, app, http.MethodGet, "/courses/manage/"+itoa(course.ID)+"/modules", tokenFor(t, other), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestModuleFormsetBatch(t *testing.T) {
	app := setupTestApp(t)
	owner := createUser(t, "owner@example.com", "INSTRUCTOR")
	subject := createSubject(t, "Programming", "programming")
	course := createCourse(t, owner, subject, "Mine", "mine")
	existing := createModule(t, course, "Intro", 0)
	doomed := createModule(t, course, "Old Stuff", 1)

	resp, raw := doJSON(t, app, http.MethodPost, "/courses/manage/"+itoa(course.ID)+"/modules", tokenFor(t, owner), map[string]interface{}{
		"modules": []map[string]interface{}{
			{"id": existing.ID, "title": "Intro, Renamed", "description": "updated"},
			{"id": doomed.ID, "delete": true},
			{"title": "Brand New", "description": "fresh"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, raw)
	var data struct {
		Modules []courseModels.Module `json:"modules"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Modules, 2)
	assert.Equal(t, "Intro, Renamed", data.Modules[0].Title)
	assert.Equal(t, "Brand New", data.Modules[1].Title)
	// Appended after the highest existing order
	assert.Equal(t, 2, data.Modules[1].OrderIndex)

	assert.Error(t, database.Database.Db.First(&courseModels.Module{}, doomed.ID).Error)
}

func TestModuleFormsetAllOrNothing(t *testing.T) {
	app := setupTestApp(t)
	owner := createUser(t, "owner@example.com", "INSTRUCTOR")
	subject := createSubject(t, "Programming", "programming")
	course := createCourse(t, owner, subject, "Mine", "mine")
	existing := createModule(t, course, "Intro", 0)

	// The second row is invalid: the whole batch must be rejected
	resp, raw := doJSON(t, app, http.MethodPost, "/courses/manage/"+itoa(course.ID)+"/modules", tokenFor(t, owner), map[string]interface{}{
		"modules": []map[string]interface{}{
			{"id": existing.ID, "title": "Intro, Renamed", "description": "updated"},
			{"title": "", "description": "missing title"},
		},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	env := decodeEnvelope(t, raw)
	var fieldErrors map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &fieldErrors))
	assert.Contains(t, fieldErrors, "rows[1].title")

	// Nothing was persisted, the valid row included
	var unchanged courseModels.Module
	require.NoError(t, database.Database.Db.First(&unchanged, existing.ID).Error)
	assert.Equal(t, "Intro", unchanged.Title)

	var count int64
	database.Database.Db.Model(&courseModels.Module{}).Where("course_id = ?", course.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestModuleFormsetForeignModuleRowRejectsBatch(t *testing.T) {
	app := setupTestApp(t)
	owner := createUser(t, "owner@example.com", "INSTRUCTOR")
	other := createUser(t, "other@example.com", "INSTRUCTOR")
	subject := createSubject(t, "Programming", "programming")
	course := createCourse(t, owner, subject, "Mine", "mine")
	foreign := createCourse(t, other, subject, "Theirs", "theirs")
	foreignModule := createModule(t, foreign, "Not Yours", 0)

	resp, _ := doJSON(t, app, http.MethodPost, "/courses/manage/"+itoa(course.ID)+"/modules", tokenFor(t, owner), map[string]interface{}{
		"modules": []map[string]interface{}{
			{"title": "Legit Row", "description": "ok"},
			{"id": foreignModule.ID, "title": "Hijack", "description": "nope"},
		},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// The legit row was discarded with the rest of the batch
	var count int64
	database.Database.Db.Model(&courseModels.Module{}).Where("course_id = ?", course.ID).Count(&count)
	assert.Zero(t, count)

	var unchanged courseModels.Module
	require.NoError(t, database.Database.Db.First(&unchanged, foreignModule.ID).Error)
	assert.Equal(t, "Not Yours", unchanged.Title)
}
