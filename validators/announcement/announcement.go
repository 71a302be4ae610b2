package announcementValidator

import (
	"strings"

	"scholaria/middleware"

	"github.com/gofiber/fiber/v2"
)

type CreateAnnouncementRequest struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	CourseID    uint   `json:"courseId"`
	IsImportant bool   `json:"isImportant"`
}

type UpdateAnnouncementRequest struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	IsImportant *bool  `json:"isImportant"`
}

func CreateAnnouncement() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateAnnouncementRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) > 200 {
			errors["title"] = "Title cannot be more than 200 characters!"
		}

		if strings.TrimSpace(reqData.Body) == "" {
			errors["body"] = "Announcement content is required!"
		} else if len(reqData.Body) > 2000 {
			errors["body"] = "Content cannot be more than 2000 characters!"
		}

		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAnnouncement", reqData)
		return c.Next()
	}
}

func UpdateAnnouncement() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateAnnouncementRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != "" && len(reqData.Title) > 200 {
			errors["title"] = "Title cannot be more than 200 characters!"
		}
		if reqData.Body != "" && len(reqData.Body) > 2000 {
			errors["body"] = "Content cannot be more than 2000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAnnouncementUpdate", reqData)
		return c.Next()
	}
}

// AnnouncementID validates the :id path parameter
func AnnouncementID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid announcement ID!", nil)
		}

		c.Locals("announcementID", uint(id))
		return c.Next()
	}
}

// CourseID validates the :courseId path parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("courseId")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		c.Locals("courseID", uint(id))
		return c.Next()
	}
}
