package controllers

import (
	"elearn/database"
	"elearn/middleware"
	courseModels "elearn/models/course"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SubjectSummary is a catalog subject with its course count
type SubjectSummary struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	TotalCourses int64  `json:"total_courses"`
}

// CourseSummary is a catalog course with its module count
type CourseSummary struct {
	ID           uint   `json:"id"`
	SubjectID    uint   `json:"subject_id"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Overview     string `json:"overview"`
	TotalModules int64  `json:"total_modules"`
}

// CatalogList is the public course catalog: every subject with its course
// count, and courses with module counts, optionally filtered to one subject.
// The subject list is never filtered.
func CatalogList(c *fiber.Ctx) error {
	db := database.Database.Db

	var subjects []SubjectSummary
	err := db.Model(&courseModels.Subject{}).
		Select("subjects.id, subjects.title, subjects.slug, COUNT(courses.id) AS total_courses").
		Joins("LEFT JOIN courses ON courses.subject_id = subjects.id AND courses.deleted_at IS NULL").
		Group("subjects.id").
		Order("subjects.title asc").
		Scan(&subjects).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch catalog!", nil)
	}

	courseQuery := db.Model(&courseModels.Course{}).
		Select("courses.id, courses.subject_id, courses.title, courses.slug, courses.overview, COUNT(modules.id) AS total_modules").
		Joins("LEFT JOIN modules ON modules.course_id = courses.id AND modules.deleted_at IS NULL").
		Group("courses.id").
		Order("courses.created_at desc")

	var subject *courseModels.Subject
	if slug := strings.TrimSpace(c.Params("slug")); slug != "" {
		subject = &courseModels.Subject{}
		if err := db.Where("slug = ?", slug).First(subject).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found!", nil)
		}
		courseQuery = courseQuery.Where("courses.subject_id = ?", subject.ID)
	}

	var courses []CourseSummary
	if err := courseQuery.Scan(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch catalog!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Catalog fetched successfully!", fiber.Map{
		"subjects": subjects,
		"subject":  subject,
		"courses":  courses,
	})
}

// CourseDetail returns a course with its modules and an enrollment form
// contract initialized to the course
func CourseDetail(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	db.Where("course_id = ?", course.ID).Order("order_index asc").Find(&modules)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":  course,
		"modules": modules,
		"enroll_form": fiber.Map{
			"course_id": course.ID,
		},
	})
}
