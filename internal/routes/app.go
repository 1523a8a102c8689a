package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"mini-instagram/config"
	"mini-instagram/internal/controllers"
	"mini-instagram/internal/storage"
)

// NewApp builds the Fiber app with the shared middleware stack; routes are added by Register.
func NewApp(cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "mini-instagram",
		ErrorHandler: controllers.ErrorHandler,
		// leave room for multipart overhead above the media limit
		BodyLimit: int(storage.MaxFileSize) + 1024*1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowCredentials: cfg.CORSOrigin != "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))
	return app
}
