package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"accounts-api/internal/config"
	"accounts-api/internal/handlers"
	"accounts-api/internal/middleware"
	"accounts-api/internal/routes"
	"accounts-api/internal/token"
)

// New initializes the Fiber application with config, middlewares, and routes.
func New(cfg *config.Config, users *handlers.UserHandler, auth *handlers.AuthHandler, tokens *token.Manager, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
		IdleTimeout:  cfg.App.IdleTimeout,
	})

	app.Use(cors.New())
	app.Use(middleware.ZapLogger(logger))

	routes.Setup(app, users, auth, middleware.JWT(tokens, logger))

	return app
}
