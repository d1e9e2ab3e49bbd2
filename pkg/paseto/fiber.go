package pasetotoken

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxKeyClaims = "auth.claims"
	// CookieName carries the access token for browser clients.
	CookieName = "polijecare_session"
)

// TokenFromRequest reads the bearer header first, then the session cookie.
func TokenFromRequest(c fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		scheme, tok, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
		return ""
	}
	return c.Cookies(CookieName)
}

func ClaimsFromFiber(c fiber.Ctx) (*Claims, bool) {
	cl, ok := c.Locals(CtxKeyClaims).(*Claims)
	return cl, ok && cl != nil
}
