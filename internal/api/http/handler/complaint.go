package handler

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/polijecare/polijecare_web/internal/service/complaint"
	"github.com/polijecare/polijecare_web/internal/service/counselingsvc"
)

type ComplaintHandler struct {
	svc        complaint.Service
	counseling counselingsvc.Service
}

func NewComplaintHandler(svc complaint.Service, counseling counselingsvc.Service) *ComplaintHandler {
	return &ComplaintHandler{svc: svc, counseling: counseling}
}

// POST /api/v1/user/reports
// Accepts JSON or multipart/form-data with an optional "lampiran" file.
// The new report becomes the one the session's next booking refers to.
func (h *ComplaintHandler) Submit(c fiber.Ctx) error {
	var body complaint.SubmitRequest
	if err := c.Bind().Body(&body); err != nil {
		return invalidBody(c)
	}

	var file *complaint.Attachment
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if fh, err := c.FormFile("lampiran"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return badRequest(c, "Lampiran tidak dapat dibaca.")
			}
			defer f.Close()
			file = &complaint.Attachment{Name: fh.Filename, Size: fh.Size, Content: f}
		}
	}

	id, err := h.svc.Submit(c.Context(), body, file)
	if err != nil {
		return mapComplaintError(c, err)
	}

	canBook := true
	if sid, found := sessionID(c); found {
		if err := h.counseling.AttachComplaint(c.Context(), sid, id, body.JenisPengaduan); err != nil {
			slog.WarnContext(c.Context(), "attach complaint to booking failed", "complaint_id", id, "error", err)
			canBook = false
		}
	}

	return created(c, fiber.Map{"id": id, "can_book": canBook},
		"Pengaduan berhasil dikirim. Silakan pilih jadwal konseling.")
}

// GET /api/v1/user/reports
func (h *ComplaintHandler) History(c fiber.Ctx) error {
	p, err := listParams(c)
	if err != nil {
		return badRequest(c, "Parameter halaman tidak valid.")
	}
	page, err := h.svc.History(c.Context(), p)
	if err != nil {
		return mapComplaintError(c, err)
	}
	return list(c, page)
}

// GET /api/v1/operator/reports
func (h *ComplaintHandler) List(c fiber.Ctx) error {
	p, err := listParams(c)
	if err != nil {
		return badRequest(c, "Parameter halaman tidak valid.")
	}
	page, err := h.svc.List(c.Context(), p)
	if err != nil {
		return mapComplaintError(c, err)
	}
	return list(c, page)
}

// GET /api/v1/operator/reports/:id
func (h *ComplaintHandler) Get(c fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return badRequest(c, "ID pengaduan tidak valid.")
	}
	v, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapComplaintError(c, err)
	}
	return ok(c, v)
}

// PUT /api/v1/operator/reports/:id
func (h *ComplaintHandler) Update(c fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return badRequest(c, "ID pengaduan tidak valid.")
	}
	var body complaint.UpdateRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c)
	}
	if err := h.svc.Update(c.Context(), id, body); err != nil {
		return mapComplaintError(c, err)
	}
	return okMessage(c, nil, "Status pengaduan diperbarui.")
}

// DELETE /api/v1/operator/reports/:id
func (h *ComplaintHandler) Delete(c fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return badRequest(c, "ID pengaduan tidak valid.")
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapComplaintError(c, err)
	}
	return okMessage(c, nil, "Pengaduan dihapus.")
}

func mapComplaintError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, complaint.ErrNotFound):
		return notFound(c, "Pengaduan tidak ditemukan.")
	case errors.Is(err, complaint.ErrInvalidStatus):
		return badRequest(c, "Status pengaduan tidak dikenal.")
	case errors.Is(err, complaint.ErrAttachmentLarge):
		return fail(c, fiber.StatusRequestEntityTooLarge, "Ukuran lampiran maksimal 5 MB.")
	case errors.Is(err, complaint.ErrNoID):
		return fail(c, fiber.StatusBadGateway, "Pengaduan terkirim tetapi server tidak mengembalikan ID.")
	default:
		return respondError(c, err)
	}
}
