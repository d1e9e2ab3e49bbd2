package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/polijecare/polijecare_web/internal/service/user"
	"github.com/polijecare/polijecare_web/pkg/reqctx"
)

type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func mapUserError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		return notFound(c, "Pengguna tidak ditemukan.")
	case errors.Is(err, user.ErrInvalidRole):
		return badRequest(c, "Peran tidak dikenal.")
	case errors.Is(err, user.ErrEmailConflict):
		return conflict(c, "Email sudah digunakan.")
	default:
		return respondError(c, err)
	}
}

// GET /api/v1/operator/users?status=konselor
func (h *UserHandler) List(c fiber.Ctx) error {
	p, err := listParams(c)
	if err != nil {
		return badRequest(c, "Parameter halaman tidak valid.")
	}
	page, err := h.svc.List(c.Context(), p)
	if err != nil {
		return mapUserError(c, err)
	}
	return list(c, page)
}

// GET /api/v1/operator/users/:id
func (h *UserHandler) Get(c fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return badRequest(c, "ID pengguna tidak valid.")
	}
	u, err := h.svc.GetByID(c.Context(), id)
	if err != nil {
		return mapUserError(c, err)
	}
	return ok(c, u)
}

// POST /api/v1/operator/users
func (h *UserHandler) Create(c fiber.Ctx) error {
	var body user.CreateRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c)
	}
	id, err := h.svc.Create(c.Context(), body)
	if err != nil {
		return mapUserError(c, err)
	}
	return created(c, fiber.Map{"id": id}, "Pengguna berhasil ditambahkan.")
}

// PUT /api/v1/operator/users/:id
func (h *UserHandler) Update(c fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return badRequest(c, "ID pengguna tidak valid.")
	}
	var body user.UpdateRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c)
	}
	if err := h.svc.Update(c.Context(), id, body); err != nil {
		return mapUserError(c, err)
	}
	return okMessage(c, nil, "Data pengguna diperbarui.")
}

// PATCH /api/v1/operator/users/:id/active
func (h *UserHandler) SetActive(c fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return badRequest(c, "ID pengguna tidak valid.")
	}
	var body struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.Bind().JSON(&body); err != nil || body.IsActive == nil {
		return badRequest(c, "Field is_active wajib diisi.")
	}
	if err := h.svc.SetActive(c.Context(), id, *body.IsActive); err != nil {
		return mapUserError(c, err)
	}
	msg := "Akun dinonaktifkan."
	if *body.IsActive {
		msg = "Akun diaktifkan."
	}
	return okMessage(c, fiber.Map{"is_active": *body.IsActive}, msg)
}

// DELETE /api/v1/operator/users/:id
// Operators cannot delete their own account.
func (h *UserHandler) Delete(c fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return badRequest(c, "ID pengguna tidak valid.")
	}
	if ident, found := reqctx.IdentityFromContext(c.Context()); found && ident.UserID == c.Params("id") {
		return badRequest(c, "Anda tidak dapat menghapus akun sendiri.")
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapUserError(c, err)
	}
	return okMessage(c, nil, "Pengguna dihapus.")
}

// GET /api/v1/operator/counselors
func (h *UserHandler) Counselors(c fiber.Ctx) error {
	counselors, err := h.svc.Counselors(c.Context())
	if err != nil {
		return mapUserError(c, err)
	}
	return ok(c, counselors)
}
