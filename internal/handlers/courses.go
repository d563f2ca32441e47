package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/rowdycup/scoreboard/internal/models"
)

// ListCourses handles GET /api/v1/courses.
func ListCourses(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var courses []models.Course
		if err := db.Order("name").Find(&courses).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch courses"})
		}
		return c.JSON(courses)
	}
}

// CreateCourseRequest is the JSON body for POST /api/v1/courses.
type CreateCourseRequest struct {
	Name      string `json:"name"`
	City      string `json:"city"`
	State     string `json:"state"`
	HoleCount int    `json:"hole_count"`
}

// CreateCourse handles POST /api/v1/courses (admin).
func CreateCourse(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateCourseRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}
		if req.HoleCount == 0 {
			req.HoleCount = 18
		}

		course := models.Course{
			Name:      req.Name,
			City:      req.City,
			State:     req.State,
			HoleCount: req.HoleCount,
		}
		if err := db.Create(&course).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create course"})
		}
		return c.Status(fiber.StatusCreated).JSON(course)
	}
}
