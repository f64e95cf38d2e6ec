package courseValidator

import (
	controllers "elearn/controllers/course"
	"elearn/middleware"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ModuleFormset validates a batch module submission. Every row is checked
// before any row is persisted; the error map carries per-row field keys.
func ModuleFormset() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := courseIDParam(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		reqData := new(struct {
			Modules []controllers.ModuleRow `json:"modules"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		for i := range reqData.Modules {
			row := &reqData.Modules[i]
			row.Title = strings.TrimSpace(row.Title)
			row.Description = strings.TrimSpace(row.Description)

			if row.Delete {
				if row.ID == 0 {
					errors[fmt.Sprintf("rows[%d].id", i)] = "Row marked for deletion must carry an id!"
				}
				continue
			}

			if row.Title == "" {
				errors[fmt.Sprintf("rows[%d].title", i)] = "Title is required!"
			} else if len(row.Title) < 3 {
				errors[fmt.Sprintf("rows[%d].title", i)] = "Title must be at least 3 characters long!"
			}
		}

		// Any invalid row rejects the whole batch
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", id)
		c.Locals("validatedModuleRows", reqData.Modules)
		return c.Next()
	}
}

// ModuleID validates routes carrying a module_id parameter
func ModuleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(strings.TrimSpace(c.Params("module_id")))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module ID!", nil)
		}

		c.Locals("moduleID", id)
		return c.Next()
	}
}
