package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/polijecare/polijecare_web/internal/api/http/handler"
)

func (r *Router) registerContentRoutes(
	api fiber.Router,
	h *handler.ContentHandler,
	geo *handler.GeocodeHandler,
	authRequired fiber.Handler,
) {
	// Public
	api.Get("/landing", h.Landing)
	api.Get("/articles", h.Articles)
	api.Get("/articles/:slug", h.Article)
	api.Post("/contact", h.SendContact)

	// Location picker of the complaint form
	g := api.Group("/geocode", authRequired)
	g.Get("/search", geo.Search)
	g.Get("/reverse", geo.Reverse)
}
