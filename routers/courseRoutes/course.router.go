package courseRoutes

import (
	courseController "scholaria/controllers/course"
	"scholaria/middleware"
	"scholaria/models"
	courseValidator "scholaria/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all course routes
func SetupCourseRoutes(api fiber.Router) {
	courseGroup := api.Group("/courses", middleware.JWTMiddleware)

	courseGroup.Get("/", courseController.GetAllCourses)
	courseGroup.Post("/", middleware.RequireRole(models.RoleLecturer), courseValidator.CreateCourse(), courseController.CreateCourse)
	courseGroup.Get("/user/my-courses", courseController.GetMyCourses)
	courseGroup.Get("/:id", courseValidator.CourseID(), courseController.GetCourse)
	courseGroup.Get("/:id/details", courseValidator.CourseID(), courseController.GetCourseDetails)
	courseGroup.Put("/:id", middleware.RequireRole(models.RoleLecturer), courseValidator.CourseID(), courseValidator.UpdateCourse(), courseController.UpdateCourse)
	courseGroup.Delete("/:id", middleware.RequireRole(models.RoleLecturer), courseValidator.CourseID(), courseController.DeleteCourse)
	courseGroup.Post("/:id/enroll", middleware.RequireRole(models.RoleStudent), courseValidator.CourseID(), courseController.EnrollInCourse)
}
