package controllers

import (
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"

	"github.com/gofiber/fiber/v2"
)

// ModuleOrder applies a bulk id -> order mapping to the requester's modules.
// Ids the requester does not own are zero-row no-ops; the whole mapping is
// applied in one transaction. The response body is the fixed acknowledgment
// the sortable front-end widget expects.
func ModuleOrder(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	ordering, ok := c.Locals("validatedOrdering").(map[uint]int)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	ownedCourses := db.Model(&courseModels.Course{}).Select("id").Where("owner_id = ?", userId)

	tx := db.Begin()
	for id, order := range ordering {
		err := tx.Model(&courseModels.Module{}).
			Where("id = ? AND course_id IN (?)", id, ownedCourses).
			Update("order_index", order).Error
		if err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save ordering!", nil)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save ordering!", nil)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"saved": "OK"})
}

// ContentOrder applies a bulk id -> order mapping to the requester's contents
func ContentOrder(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	ordering, ok := c.Locals("validatedOrdering").(map[uint]int)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	ownedModules := db.Model(&courseModels.Module{}).Select("modules.id").
		Joins("JOIN courses ON courses.id = modules.course_id AND courses.deleted_at IS NULL").
		Where("courses.owner_id = ?", userId)

	tx := db.Begin()
	for id, order := range ordering {
		err := tx.Model(&courseModels.Content{}).
			Where("id = ? AND module_id IN (?)", id, ownedModules).
			Update("order_index", order).Error
		if err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save ordering!", nil)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save ordering!", nil)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"saved": "OK"})
}
