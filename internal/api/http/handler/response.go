package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/polijecare/polijecare_web/pkg/apiclient"
)

// Envelope is the body of every /api/v1 response.
type Envelope struct {
	Success    bool                `json:"success"`
	Data       any                 `json:"data,omitempty"`
	Message    string              `json:"message,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	Pagination *Pagination         `json:"pagination,omitempty"`
}

type Pagination struct {
	Page     int `json:"page"`
	PerPage  int `json:"per_page"`
	Total    int `json:"total"`
	LastPage int `json:"last_page"`
}

func ok(c fiber.Ctx, data any) error {
	return c.JSON(Envelope{Success: true, Data: data})
}

func okMessage(c fiber.Ctx, data any, msg string) error {
	return c.JSON(Envelope{Success: true, Data: data, Message: msg})
}

func created(c fiber.Ctx, data any, msg string) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Data: data, Message: msg})
}

// list answers with the page items as data and the paginator beside them.
func list[T any](c fiber.Ctx, p apiclient.Page[T]) error {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return c.JSON(Envelope{
		Success: true,
		Data:    items,
		Pagination: &Pagination{
			Page:     p.Meta.CurrentPage,
			PerPage:  p.Meta.PerPage,
			Total:    p.Meta.Total,
			LastPage: p.Meta.LastPage,
		},
	})
}

func fail(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(Envelope{Success: false, Message: msg})
}

func badRequest(c fiber.Ctx, msg string) error {
	return fail(c, fiber.StatusBadRequest, msg)
}

func unauthorized(c fiber.Ctx) error {
	return fail(c, fiber.StatusUnauthorized, "Sesi Anda telah berakhir. Silakan masuk kembali.")
}

func notFound(c fiber.Ctx, msg string) error {
	return fail(c, fiber.StatusNotFound, msg)
}

func conflict(c fiber.Ctx, msg string) error {
	return fail(c, fiber.StatusConflict, msg)
}

func internalError(c fiber.Ctx) error {
	return fail(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server.")
}

func invalidBody(c fiber.Ctx) error {
	return badRequest(c, "Format data tidak valid.")
}
