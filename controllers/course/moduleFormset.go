package controllers

import (
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ModuleRow is one row of a module formset submission. Rows without an id
// are created, rows with an id are updated, rows flagged delete are removed.
type ModuleRow struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Delete      bool   `json:"delete"`
}

// GetModuleFormset returns a course with its module rows for editing
func GetModuleFormset(c *fiber.Ctx) error {
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
	if err := db.Where("course_id = ?", course.ID).Order("order_index asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", fiber.Map{
		"course":  course,
		"modules": modules,
	})
}

// SaveModuleFormset applies a batch of module additions, edits and deletions
// for one course. The batch is all-or-nothing: a single invalid row rejects
// the whole submission with per-row errors and persists nothing.
func SaveModuleFormset(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	// The course is resolved once per request, not per row
	var course courseModels.Course
	if err := db.Scopes(courseModels.OwnedBy(userId)).First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	rows, ok := c.Locals("validatedModuleRows").([]ModuleRow)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Next append position for created rows, zero-based per course
	var maxOrder int
	db.Model(&courseModels.Module{}).Where("course_id = ?", course.ID).
		Select("COALESCE(MAX(order_index), -1)").Scan(&maxOrder)
	nextOrder := maxOrder + 1

	errors := make(map[string]string)

	tx := db.Begin()
	for i, row := range rows {
		switch {
		case row.Delete:
			var module courseModels.Module
			if err := tx.Where("id = ? AND course_id = ?", row.ID, course.ID).First(&module).Error; err != nil {
				errors[fmt.Sprintf("rows[%d].id", i)] = "Module not found in this course!"
				continue
			}
			if err := deleteModuleContents(tx, module.ID); err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save modules!", nil)
			}
			if err := tx.Delete(&module).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save modules!", nil)
			}

		case row.ID != 0:
			var module courseModels.Module
			if err := tx.Where("id = ? AND course_id = ?", row.ID, course.ID).First(&module).Error; err != nil {
				errors[fmt.Sprintf("rows[%d].id", i)] = "Module not found in this course!"
				continue
			}
			module.Title = row.Title
			module.Description = row.Description
			if err := tx.Save(&module).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save modules!", nil)
			}

		default:
			module := courseModels.Module{
				CourseID:    course.ID,
				Title:       row.Title,
				Description: row.Description,
				OrderIndex:  nextOrder,
			}
			nextOrder++
			if err := tx.Create(&module).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save modules!", nil)
			}
		}
	}

	// Any row error discards the entire batch
	if len(errors) > 0 {
		tx.Rollback()
		return middleware.ValidationErrorResponse(c, errors)
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save modules!", nil)
	}

	var modules []courseModels.Module
	db.Where("course_id = ?", course.ID).Order("order_index asc").Find(&modules)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules saved successfully!", fiber.Map{
		"course":  course,
		"modules": modules,
	})
}

// deleteModuleContents removes a module's content records and their typed
// items inside the caller's transaction
func deleteModuleContents(tx *gorm.DB, moduleID uint) error {
	var contents []courseModels.Content
	if err := tx.Where("module_id = ?", moduleID).Find(&contents).Error; err != nil {
		return err
	}
	for _, content := range contents {
		if err := courseModels.DeleteItem(tx, content.ItemType, content.ItemID); err != nil {
			return err
		}
		if err := tx.Delete(&content).Error; err != nil {
			return err
		}
	}
	return nil
}
