package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/polijecare/polijecare_web/internal/service/content"
)

type ContentHandler struct {
	svc content.Service
}

func NewContentHandler(svc content.Service) *ContentHandler {
	return &ContentHandler{svc: svc}
}

// GET /api/v1/landing
func (h *ContentHandler) Landing(c fiber.Ctx) error {
	landing, err := h.svc.Landing(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, landing)
}

// GET /api/v1/articles
func (h *ContentHandler) Articles(c fiber.Ctx) error {
	return ok(c, h.svc.Articles())
}

// GET /api/v1/articles/:slug
func (h *ContentHandler) Article(c fiber.Ctx) error {
	a, err := h.svc.Article(c.Params("slug"))
	if errors.Is(err, content.ErrArticleNotFound) {
		return fail(c, fiber.StatusNotFound, "Artikel tidak ditemukan.")
	}
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, a)
}

// POST /api/v1/contact
func (h *ContentHandler) SendContact(c fiber.Ctx) error {
	var body content.ContactRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c)
	}
	if err := h.svc.SendContact(c.Context(), body); err != nil {
		return respondError(c, err)
	}
	return created(c, nil, "Pesan Anda telah terkirim. Terima kasih telah menghubungi kami.")
}
