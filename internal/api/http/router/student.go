package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/polijecare/polijecare_web/internal/api/http/handler"
)

func (r *Router) registerStudentRoutes(
	api fiber.Router,
	ch *handler.ComplaintHandler,
	sh *handler.ScheduleHandler,
	kh *handler.CounselingHandler,
	authRequired fiber.Handler,
	requireRoute fiber.Handler,
) {
	u := api.Group("/user", authRequired, requireRoute)

	u.Post("/reports", ch.Submit)
	u.Get("/reports", ch.History)

	u.Get("/counselor-schedules", sh.ForCounselor)

	u.Put("/counseling/selection", kh.Select)
	u.Post("/counseling/confirm", kh.Confirm)
	u.Get("/counseling/status", kh.Status)
	u.Get("/counselings", kh.History)
}
