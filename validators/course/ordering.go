package courseValidator

import (
	"elearn/middleware"
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Ordering validates a bulk id -> order mapping submission
func Ordering() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var raw map[string]int
		if err := json.Unmarshal(c.Body(), &raw); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		ordering := make(map[uint]int, len(raw))

		for key, order := range raw {
			id, err := strconv.Atoi(key)
			if err != nil || id < 1 {
				errors[key] = "Id must be a positive integer!"
				continue
			}
			ordering[uint(id)] = order
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOrdering", ordering)
		return c.Next()
	}
}
