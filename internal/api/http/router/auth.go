package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/polijecare/polijecare_web/internal/api/http/handler"
)

func (r *Router) registerAuthRoutes(
	api fiber.Router,
	h *handler.AuthHandler,
	nav *handler.NavigationHandler,
	authRequired fiber.Handler,
	authOptional fiber.Handler,
) {
	group := api.Group("/auth")
	group.Post("/login", h.Login)
	group.Post("/logout", authRequired, h.Logout)
	group.Get("/me", authRequired, h.Me)

	api.Get("/navigation", authRequired, nav.Menu)
	api.Get("/navigation/guard", authOptional, nav.Guard)
}
