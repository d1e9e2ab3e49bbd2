package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/polijecare/polijecare_web/internal/api/http/handler"
)

func (r *Router) registerOperatorRoutes(
	api fiber.Router,
	uh *handler.UserHandler,
	ch *handler.ComplaintHandler,
	authRequired fiber.Handler,
	requireRoute fiber.Handler,
) {
	op := api.Group("/operator", authRequired, requireRoute)

	users := op.Group("/users")
	users.Get("/", uh.List)
	users.Post("/", uh.Create)
	users.Get("/:id", uh.Get)
	users.Put("/:id", uh.Update)
	users.Patch("/:id/active", uh.SetActive)
	users.Delete("/:id", uh.Delete)

	reports := op.Group("/reports")
	reports.Get("/", ch.List)
	reports.Get("/:id", ch.Get)
	reports.Put("/:id", ch.Update)
	reports.Delete("/:id", ch.Delete)

	op.Get("/counselors", uh.Counselors)
}
