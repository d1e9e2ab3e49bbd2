package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/polijecare/polijecare_web/pkg/authorize"
	"github.com/polijecare/polijecare_web/pkg/reqctx"
)

type NavigationHandler struct {
	auth authorize.IAuthorization
}

func NewNavigationHandler(auth authorize.IAuthorization) *NavigationHandler {
	return &NavigationHandler{auth: auth}
}

func callerRole(c fiber.Ctx) authorize.Role {
	id, found := reqctx.IdentityFromContext(c.Context())
	if !found {
		return ""
	}
	return authorize.Role(id.Role)
}

// GET /api/v1/navigation
func (h *NavigationHandler) Menu(c fiber.Ctx) error {
	role := callerRole(c)
	if role == "" {
		return unauthorized(c)
	}
	return ok(c, fiber.Map{
		"role":     role,
		"items":    authorize.Menu(c.Context(), h.auth, role),
		"redirect": authorize.DefaultRedirect(role),
	})
}

// GET /api/v1/navigation/guard?path=/user/riwayat
// Anonymous callers are answered too; they get a redirect to /login for
// anything that is not public.
func (h *NavigationHandler) Guard(c fiber.Ctx) error {
	page := c.Query("path")
	if page == "" {
		return badRequest(c, "Parameter path wajib diisi.")
	}
	res, err := authorize.Guard(c.Context(), h.auth, callerRole(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, res)
}
