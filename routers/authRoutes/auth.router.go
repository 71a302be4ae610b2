package authRoutes

import (
	authController "scholaria/controllers/auth"
	"scholaria/middleware"
	authValidator "scholaria/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up registration, login and profile routes
func SetupAuthRoutes(api fiber.Router) {
	authGroup := api.Group("/auth")

	authGroup.Post("/register", authValidator.Register(), authController.Register)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, authController.GetMe)
	authGroup.Put("/profile", middleware.JWTMiddleware, authValidator.UpdateProfile(), authController.UpdateProfile)
	authGroup.Put("/password", middleware.JWTMiddleware, authValidator.UpdatePassword(), authController.UpdatePassword)
	authGroup.Post("/logout", middleware.JWTMiddleware, authController.Logout)
}
