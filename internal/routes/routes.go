package routes

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"accounts-api/internal/handlers"
)

// Setup mounts the API surface.
func Setup(app *fiber.App, users *handlers.UserHandler, auth *handlers.AuthHandler, jwtMiddleware fiber.Handler) {
	api := app.Group("/api/v1")

	u := api.Group("/users")
	u.Get("", users.ListUsers)
	u.Post("", users.CreateUser)
	u.Get("/:id", users.GetUser)
	u.Patch("/:id", users.UpdateUser)
	u.Delete("/:id", users.DeleteUser)

	a := api.Group("/auth")
	a.Post("/login", auth.Login)
	a.Post("/refresh", auth.Refresh)
	a.Post("/logout", jwtMiddleware, auth.Logout)
	a.Get("/me", jwtMiddleware, auth.Me)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
