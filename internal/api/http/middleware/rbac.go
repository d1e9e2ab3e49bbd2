package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/polijecare/polijecare_web/pkg/authorize"
	pasetotoken "github.com/polijecare/polijecare_web/pkg/paseto"
)

// RequireRoute asks casbin whether the caller's role may call the request
// path with the request method. Must run after AuthRequired.
func RequireRoute(auth authorize.IAuthorization) fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, ok := pasetotoken.ClaimsFromFiber(c)
		if !ok {
			return fiber.ErrUnauthorized
		}

		allowed, err := auth.Enforce(c.Context(), authorize.Role(claims.Role), c.Path(), authorize.Action(c.Method()))
		if err != nil {
			slog.WarnContext(c.Context(), "authorization check failed",
				"role", claims.Role, "path", c.Path(), "method", c.Method(), "error", err)
			return fiber.ErrForbidden
		}
		if !allowed {
			return fiber.ErrForbidden
		}
		return c.Next()
	}
}
