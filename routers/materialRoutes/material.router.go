package materialRoutes

import (
	materialController "scholaria/controllers/material"
	"scholaria/middleware"
	"scholaria/models"
	materialValidator "scholaria/validators/material"

	"github.com/gofiber/fiber/v2"
)

// SetupMaterialRoutes sets up all material routes
func SetupMaterialRoutes(api fiber.Router) {
	materialGroup := api.Group("/materials", middleware.JWTMiddleware)

	materialGroup.Get("/", materialController.GetAllMaterials)
	materialGroup.Post("/upload", middleware.RequireRole(models.RoleLecturer), materialValidator.UploadMaterial(), materialController.UploadMaterial)

	// fixed prefixes must register before the /:courseId catch-all
	materialGroup.Get("/detail/:id", materialValidator.MaterialID(), materialController.GetMaterial)
	materialGroup.Get("/download/:id", materialValidator.MaterialID(), materialController.DownloadMaterial)
	materialGroup.Get("/preview/:id", materialValidator.MaterialID(), materialController.PreviewMaterial)
	materialGroup.Get("/:id/details", materialValidator.MaterialID(), materialController.GetMaterialDetails)
	materialGroup.Get("/:courseId", materialValidator.CourseID(), materialController.GetMaterialsByCourse)

	materialGroup.Put("/:id", materialValidator.MaterialID(), materialValidator.UpdateMaterial(), materialController.UpdateMaterial)
	materialGroup.Delete("/:id", materialValidator.MaterialID(), materialController.DeleteMaterial)
}
