package controllers

import (
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"

	"github.com/gofiber/fiber/v2"
)

// ManageCourseList lists courses owned by the requesting user
func ManageCourseList(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page, ok := c.Locals("page").(int)
	if !ok {
		page = 1
	}
	limit, ok := c.Locals("limit").(int)
	if !ok {
		limit = 10
	}
	offset := (page - 1) * limit

	var courses []courseModels.Course
	var total int64

	db := database.Database.Db.Model(&courseModels.Course{}).Scopes(courseModels.OwnedBy(userId))
	db.Count(&total)

	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// CreateCourse creates a new course owned by the requesting user
func CreateCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		SubjectID uint   `json:"subject_id"`
		Title     string `json:"title"`
		Slug      string `json:"slug"`
		Overview  string `json:"overview"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var subject courseModels.Subject
	if err := db.First(&subject, reqData.SubjectID).Error; err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"subject_id": "Subject not found!"})
	}

	if err := db.Where("slug = ?", reqData.Slug).First(&courseModels.Course{}).Error; err == nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"slug": "Slug is already in use!"})
	}

	// Owner is stamped before the record is persisted
	course := courseModels.Course{
		OwnerID:   userId,
		SubjectID: reqData.SubjectID,
		Title:     reqData.Title,
		Slug:      reqData.Slug,
		Overview:  reqData.Overview,
	}

	if err := db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates a course owned by the requesting user
func UpdateCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Scopes(courseModels.OwnedBy(userId)).First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		SubjectID uint   `json:"subject_id"`
		Title     string `json:"title"`
		Slug      string `json:"slug"`
		Overview  string `json:"overview"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.SubjectID != 0 {
		var subject courseModels.Subject
		if err := db.First(&subject, reqData.SubjectID).Error; err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"subject_id": "Subject not found!"})
		}
		course.SubjectID = reqData.SubjectID
	}
	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Slug != "" && reqData.Slug != course.Slug {
		if err := db.Where("slug = ?", reqData.Slug).First(&courseModels.Course{}).Error; err == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"slug": "Slug is already in use!"})
		}
		course.Slug = reqData.Slug
	}
	if reqData.Overview != "" {
		course.Overview = reqData.Overview
	}

	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse deletes a course owned by the requesting user together
// with its modules, contents and typed items
func DeleteCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Scopes(courseModels.OwnedBy(userId)).First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	if err := db.Where("course_id = ?", course.ID).Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	tx := db.Begin()
	for _, module := range modules {
		if err := deleteModuleContents(tx, module.ID); err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course contents!", nil)
		}
		if err := tx.Delete(&module).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course modules!", nil)
		}
	}
	if err := tx.Delete(&course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
