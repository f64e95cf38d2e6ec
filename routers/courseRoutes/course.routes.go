package courseRoutes

import (
	controllers "elearn/controllers/course"
	"elearn/middleware"
	validators "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the owner-facing course management routes and the
// public catalog. The manage group is registered first so the static /manage
// and /subject prefixes never collide with the catalog's :id parameter.
func SetupCourseRoutes(app *fiber.App) {
	manageGroup := app.Group("/courses/manage", middleware.JWTMiddleware)

	// Course CRUD
	manageGroup.Get("/list", validators.ManageList(), controllers.ManageCourseList)
	manageGroup.Post("/create",
		middleware.CheckPermissionMiddleware(middleware.PermAddCourse),
		validators.CreateCourse(), controllers.CreateCourse)
	manageGroup.Put("/:id",
		middleware.CheckPermissionMiddleware(middleware.PermChangeCourse),
		validators.UpdateCourse(), controllers.UpdateCourse)
	manageGroup.Delete("/:id",
		middleware.CheckPermissionMiddleware(middleware.PermDeleteCourse),
		validators.CourseID(), controllers.DeleteCourse)

	// Module formset
	manageGroup.Get("/:id/modules", validators.CourseID(), controllers.GetModuleFormset)
	manageGroup.Post("/:id/modules", validators.ModuleFormset(), controllers.SaveModuleFormset)

	// Ordering (registered before the :module_id routes)
	manageGroup.Post("/module/order", validators.Ordering(), controllers.ModuleOrder)
	manageGroup.Post("/content/order", validators.Ordering(), controllers.ContentOrder)

	// Content management
	manageGroup.Get("/module/:module_id/contents", validators.ModuleID(), controllers.ModuleContentList)
	manageGroup.Post("/module/:module_id/content/:model_name", validators.ContentPayload(), controllers.ContentCreateUpdate)
	manageGroup.Put("/module/:module_id/content/:model_name/:id", validators.ContentPayload(), controllers.ContentCreateUpdate)
	manageGroup.Delete("/content/:id", validators.ContentID(), controllers.DeleteContent)

	// Public catalog
	catalogGroup := app.Group("/courses")
	catalogGroup.Get("/", controllers.CatalogList)
	catalogGroup.Get("/subject/:slug", controllers.CatalogList)
	catalogGroup.Get("/:id", validators.CourseID(), controllers.CourseDetail)
	catalogGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)
}
