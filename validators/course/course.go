package courseValidator

import (
	"strings"

	"scholaria/middleware"

	"github.com/gofiber/fiber/v2"
)

type CourseRequest struct {
	Title       string `json:"title"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

func validateCourseFields(reqData *CourseRequest) map[string]string {
	errors := make(map[string]string)

	title := strings.TrimSpace(reqData.Title)
	if title == "" {
		errors["title"] = "Title is required!"
	} else if len(title) < 3 || len(title) > 100 {
		errors["title"] = "Title must be between 3 and 100 characters!"
	}

	code := strings.TrimSpace(reqData.Code)
	if code == "" {
		errors["code"] = "Course code is required!"
	} else if len(code) < 2 || len(code) > 20 {
		errors["code"] = "Course code must be between 2 and 20 characters!"
	}

	description := strings.TrimSpace(reqData.Description)
	if description == "" {
		errors["description"] = "Description is required!"
	} else if len(description) < 10 || len(description) > 500 {
		errors["description"] = "Description must be between 10 and 500 characters!"
	}

	return errors
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validateCourseFields(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validateCourseFields(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseID validates the :id path parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		c.Locals("courseID", uint(id))
		return c.Next()
	}
}
