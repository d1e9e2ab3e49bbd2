package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/polijecare/polijecare_web/internal/api/http/handler"
)

func (r *Router) registerKonselorRoutes(
	api fiber.Router,
	sh *handler.ScheduleHandler,
	kh *handler.CounselingHandler,
	authRequired fiber.Handler,
	requireRoute fiber.Handler,
) {
	k := api.Group("/konselor", authRequired, requireRoute)

	k.Get("/schedules", sh.Mine)
	k.Post("/schedules", sh.Create)
	k.Put("/schedules/:id", sh.Update)
	k.Delete("/schedules/:id", sh.Delete)

	k.Get("/counselings", kh.Assigned)
	k.Put("/counselings/:id/status", kh.UpdateStatus)
}
