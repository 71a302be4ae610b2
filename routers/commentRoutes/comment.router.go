package commentRoutes

import (
	commentController "scholaria/controllers/comment"
	"scholaria/middleware"
	commentValidator "scholaria/validators/comment"

	"github.com/gofiber/fiber/v2"
)

// SetupCommentRoutes sets up all comment routes
func SetupCommentRoutes(api fiber.Router) {
	commentGroup := api.Group("/comments", middleware.JWTMiddleware)

	commentGroup.Post("/:announcementId", commentValidator.AnnouncementID(), commentValidator.CreateComment(), commentController.AddComment)
	commentGroup.Get("/:announcementId", commentValidator.AnnouncementID(), commentController.GetComments)
	commentGroup.Put("/:id", commentValidator.CommentID(), commentValidator.UpdateComment(), commentController.UpdateComment)
	commentGroup.Delete("/:id", commentValidator.CommentID(), commentController.DeleteComment)
}
