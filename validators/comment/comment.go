package commentValidator

import (
	"strings"

	"scholaria/middleware"

	"github.com/gofiber/fiber/v2"
)

type CommentRequest struct {
	Content string `json:"content"`
}

func validateContent(content string) map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(content) == "" {
		errors["content"] = "Comment content is required!"
	} else if len(content) > 1000 {
		errors["content"] = "Comment cannot be more than 1000 characters!"
	}

	return errors
}

func CreateComment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CommentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validateContent(reqData.Content); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedComment", reqData)
		return c.Next()
	}
}

func UpdateComment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CommentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validateContent(reqData.Content); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCommentUpdate", reqData)
		return c.Next()
	}
}

// CommentID validates the :id path parameter
func CommentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid comment ID!", nil)
		}

		c.Locals("commentID", uint(id))
		return c.Next()
	}
}

// AnnouncementID validates the :announcementId path parameter
func AnnouncementID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("announcementId")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid announcement ID!", nil)
		}

		c.Locals("announcementID", uint(id))
		return c.Next()
	}
}
