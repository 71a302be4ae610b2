package main

import (
	"log"
	"time"

	"scholaria/config"
	"scholaria/database"
	announcementRoutes "scholaria/routers/announcementRoutes"
	authRoutes "scholaria/routers/authRoutes"
	commentRoutes "scholaria/routers/commentRoutes"
	courseRoutes "scholaria/routers/courseRoutes"
	materialRoutes "scholaria/routers/materialRoutes"
	"scholaria/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New(fiber.Config{
		// Oversized uploads are rejected here, before any handler runs
		BodyLimit: int(config.AppConfig.MaxFileSize) + 1024*1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded materials and the OpenAPI document
	app.Static("/uploads", config.AppConfig.UploadDir)
	app.Static("/api-docs", "./docs")

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success":   true,
			"message":   "Scholaria API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	authRoutes.SetupAuthRoutes(api)
	courseRoutes.SetupCourseRoutes(api)
	announcementRoutes.SetupAnnouncementRoutes(api)
	materialRoutes.SetupMaterialRoutes(api)
	commentRoutes.SetupCommentRoutes(api)

	utils.InitializeUploadReaper()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
