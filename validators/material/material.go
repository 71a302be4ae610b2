package materialValidator

import (
	"strconv"
	"strings"

	"scholaria/middleware"
	"scholaria/models"

	"github.com/gofiber/fiber/v2"
)

type UploadMaterialRequest struct {
	Title       string
	Description string
	CourseID    uint
	Category    string
}

type UpdateMaterialRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// UploadMaterial validates the multipart form fields of an upload request.
// The file itself is validated in the controller before anything is stored.
func UploadMaterial() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &UploadMaterialRequest{
			Title:       strings.TrimSpace(c.FormValue("title")),
			Description: strings.TrimSpace(c.FormValue("description")),
			Category:    strings.TrimSpace(c.FormValue("category")),
		}

		errors := make(map[string]string)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) > 200 {
			errors["title"] = "Title cannot be more than 200 characters!"
		}

		if len(reqData.Description) > 500 {
			errors["description"] = "Description cannot be more than 500 characters!"
		}

		courseID, err := strconv.Atoi(c.FormValue("courseId"))
		if err != nil || courseID < 1 {
			errors["courseId"] = "A valid course ID is required!"
		} else {
			reqData.CourseID = uint(courseID)
		}

		if reqData.Category == "" {
			reqData.Category = models.CategoryOther
		} else if !models.ValidCategory(reqData.Category) {
			errors["category"] = "Category must be one of lecture, assignment, reading, other!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpload", reqData)
		return c.Next()
	}
}

func UpdateMaterial() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateMaterialRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != "" && len(reqData.Title) > 200 {
			errors["title"] = "Title cannot be more than 200 characters!"
		}
		if len(reqData.Description) > 500 {
			errors["description"] = "Description cannot be more than 500 characters!"
		}
		if reqData.Category != "" && !models.ValidCategory(reqData.Category) {
			errors["category"] = "Category must be one of lecture, assignment, reading, other!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMaterialUpdate", reqData)
		return c.Next()
	}
}

// MaterialID validates the :id path parameter
func MaterialID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid material ID!", nil)
		}

		c.Locals("materialID", uint(id))
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
