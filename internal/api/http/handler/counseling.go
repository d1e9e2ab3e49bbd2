package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/polijecare/polijecare_web/internal/counseling"
	"github.com/polijecare/polijecare_web/internal/service/counselingsvc"
	"github.com/polijecare/polijecare_web/internal/session"
	"github.com/polijecare/polijecare_web/pkg/apiclient"
	"github.com/polijecare/polijecare_web/pkg/validate"
)

type CounselingHandler struct {
	svc counselingsvc.Service
}

func NewCounselingHandler(svc counselingsvc.Service) *CounselingHandler {
	return &CounselingHandler{svc: svc}
}

func mapCounselingError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, counseling.ErrSlotUnavailable):
		return conflict(c, "Jadwal yang dipilih sudah tidak tersedia. Silakan pilih jadwal lain.")
	case errors.Is(err, counseling.ErrSubmitInFlight), errors.Is(err, counseling.ErrAlreadySubmitted):
		return conflict(c, "Pengajuan sedang diproses.")
	case errors.Is(err, counseling.ErrUnknownWeekday):
		return fail(c, fiber.StatusUnprocessableEntity, "Hari pada jadwal ini tidak dikenali. Silakan pilih jadwal lain.")
	case errors.Is(err, counseling.ErrNoSelection):
		return badRequest(c, "Silakan pilih jadwal konseling terlebih dahulu.")
	case errors.Is(err, counseling.ErrNoComplaint):
		return badRequest(c, "Silakan buat pengaduan terlebih dahulu.")
	case errors.Is(err, counselingsvc.ErrScheduleNotFound):
		return notFound(c, "Jadwal tidak ditemukan.")
	case errors.Is(err, counselingsvc.ErrCounselingNotFound):
		return notFound(c, "Data konseling tidak ditemukan.")
	case errors.Is(err, session.ErrNotFound):
		return unauthorized(c)
	default:
		return respondError(c, err)
	}
}

// mapSubmitError shows failed bookings the way the booking page does:
// the API's own message, or a generic retry hint when it has none.
func mapSubmitError(c fiber.Ctx, err error) error {
	var verr *validate.Error
	if errors.As(err, &verr) {
		return respondError(c, err)
	}
	apiErr, isAPI := apiclient.AsError(err)
	if !isAPI {
		if errors.Is(err, apiclient.ErrUnavailable) {
			return fail(c, fiber.StatusBadGateway, counseling.DisplayError(err))
		}
		return mapCounselingError(c, err)
	}
	status := apiErr.Status
	if status >= 500 {
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(Envelope{
		Success: false,
		Message: counseling.DisplayError(err),
		Errors:  apiErr.Fields,
	})
}

// ---------------------------------------------------------------------------
// Booking
// ---------------------------------------------------------------------------

// PUT /api/v1/user/counseling/selection
func (h *CounselingHandler) Select(c fiber.Ctx) error {
	sid, found := sessionID(c)
	if !found {
		return unauthorized(c)
	}
	var body counselingsvc.SelectRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c)
	}
	sel, err := h.svc.Select(c.Context(), sid, body)
	if err != nil {
		return mapCounselingError(c, err)
	}
	return ok(c, sel)
}

// GET /api/v1/user/counseling/status
func (h *CounselingHandler) Status(c fiber.Ctx) error {
	sid, found := sessionID(c)
	if !found {
		return unauthorized(c)
	}
	st, err := h.svc.Status(c.Context(), sid)
	if err != nil {
		return mapCounselingError(c, err)
	}
	return ok(c, st)
}

// POST /api/v1/user/counseling/confirm
func (h *CounselingHandler) Confirm(c fiber.Ctx) error {
	sid, found := sessionID(c)
	if !found {
		return unauthorized(c)
	}
	conf, err := h.svc.Confirm(c.Context(), sid)
	if err != nil {
		return mapSubmitError(c, err)
	}
	return created(c, conf, "Jadwal konseling berhasil diajukan.")
}

// GET /api/v1/user/counselings
func (h *CounselingHandler) History(c fiber.Ctx) error {
	p, err := listParams(c)
	if err != nil {
		return badRequest(c, "Parameter halaman tidak valid.")
	}
	page, err := h.svc.History(c.Context(), p)
	if err != nil {
		return mapCounselingError(c, err)
	}
	return list(c, page)
}

// ---------------------------------------------------------------------------
// Konselor
// ---------------------------------------------------------------------------

// GET /api/v1/konselor/counselings
func (h *CounselingHandler) Assigned(c fiber.Ctx) error {
	p, err := listParams(c)
	if err != nil {
		return badRequest(c, "Parameter halaman tidak valid.")
	}
	page, err := h.svc.Assigned(c.Context(), p)
	if err != nil {
		return mapCounselingError(c, err)
	}
	return list(c, page)
}

// PUT /api/v1/konselor/counselings/:id/status
func (h *CounselingHandler) UpdateStatus(c fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return badRequest(c, "ID konseling tidak valid.")
	}
	var body counselingsvc.StatusUpdate
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c)
	}
	if err := h.svc.UpdateStatus(c.Context(), id, body); err != nil {
		return mapCounselingError(c, err)
	}
	return okMessage(c, nil, "Status konseling diperbarui.")
}
