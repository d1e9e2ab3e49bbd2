package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/polijecare/polijecare_web/internal/service/schedule"
)

type ScheduleHandler struct {
	svc schedule.Service
}

func NewScheduleHandler(svc schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

func mapScheduleError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, schedule.ErrScheduleNotFound):
		return notFound(c, "Jadwal tidak ditemukan.")
	case errors.Is(err, schedule.ErrInvalidCounselor):
		return badRequest(c, "Konselor wajib dipilih.")
	default:
		return respondError(c, err)
	}
}

// ---------------------------------------------------------------------------
// Student view
// ---------------------------------------------------------------------------

// GET /api/v1/user/counselor-schedules?counselor_id=3
func (h *ScheduleHandler) ForCounselor(c fiber.Ctx) error {
	counselorID, _ := strconv.ParseInt(c.Query("counselor_id"), 10, 64)
	views, err := h.svc.Views(c.Context(), counselorID)
	if err != nil {
		return mapScheduleError(c, err)
	}
	return ok(c, views)
}

// ---------------------------------------------------------------------------
// Konselor weekly slots
// ---------------------------------------------------------------------------

// GET /api/v1/konselor/schedules
func (h *ScheduleHandler) Mine(c fiber.Ctx) error {
	views, err := h.svc.Mine(c.Context())
	if err != nil {
		return mapScheduleError(c, err)
	}
	return ok(c, views)
}

// POST /api/v1/konselor/schedules
func (h *ScheduleHandler) Create(c fiber.Ctx) error {
	var body schedule.SlotRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c)
	}
	id, err := h.svc.Create(c.Context(), body)
	if err != nil {
		return mapScheduleError(c, err)
	}
	return created(c, fiber.Map{"id": id}, "Jadwal berhasil ditambahkan.")
}

// PUT /api/v1/konselor/schedules/:id
func (h *ScheduleHandler) Update(c fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return badRequest(c, "ID jadwal tidak valid.")
	}
	var body schedule.SlotRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c)
	}
	if err := h.svc.Update(c.Context(), id, body); err != nil {
		return mapScheduleError(c, err)
	}
	return okMessage(c, nil, "Jadwal berhasil diperbarui.")
}

// DELETE /api/v1/konselor/schedules/:id
func (h *ScheduleHandler) Delete(c fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return badRequest(c, "ID jadwal tidak valid.")
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapScheduleError(c, err)
	}
	return okMessage(c, nil, "Jadwal dihapus.")
}
