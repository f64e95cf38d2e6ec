package middleware

import (
	"elearn/database"
	"elearn/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Course management permission grants. Held as Permission rows per user.
const (
	PermAddCourse    = "add-course"
	PermChangeCourse = "change-course"
	PermDeleteCourse = "delete-course"
)

// HasPermission reports whether the user holds the named permission grant.
// It is the single policy decision point for mutating course routes.
func HasPermission(db *gorm.DB, userID uint, permission string) (bool, error) {
	var perm models.Permission
	err := db.Where("user_id = ? AND permission = ?", userID, permission).First(&perm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CheckPermissionMiddleware returns a middleware that checks if the user has the required permission
func CheckPermissionMiddleware(requiredPermission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Set by the JWT middleware
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		allowed, err := HasPermission(database.Database.Db, userID, requiredPermission)
		if err != nil {
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
		}
		if !allowed {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}

		return c.Next()
	}
}
