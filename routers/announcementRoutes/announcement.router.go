package announcementRoutes

import (
	announcementController "scholaria/controllers/announcement"
	"scholaria/middleware"
	"scholaria/models"
	announcementValidator "scholaria/validators/announcement"

	"github.com/gofiber/fiber/v2"
)

// SetupAnnouncementRoutes sets up all announcement routes
func SetupAnnouncementRoutes(api fiber.Router) {
	announcementGroup := api.Group("/announcements", middleware.JWTMiddleware)

	announcementGroup.Get("/", announcementController.GetAllAnnouncements)
	announcementGroup.Post("/", middleware.RequireRole(models.RoleLecturer), announcementValidator.CreateAnnouncement(), announcementController.CreateAnnouncement)

	// /detail/:id and /:id/with-comments must register before /:courseId
	announcementGroup.Get("/detail/:id", announcementValidator.AnnouncementID(), announcementController.GetAnnouncement)
	announcementGroup.Get("/:id/with-comments", announcementValidator.AnnouncementID(), announcementController.GetAnnouncementWithComments)
	announcementGroup.Get("/:courseId", announcementValidator.CourseID(), announcementController.GetAnnouncementsByCourse)

	announcementGroup.Put("/:id", announcementValidator.AnnouncementID(), announcementValidator.UpdateAnnouncement(), announcementController.UpdateAnnouncement)
	announcementGroup.Delete("/:id", announcementValidator.AnnouncementID(), announcementController.DeleteAnnouncement)
}
