package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/polijecare/polijecare_web/internal/session"
	"github.com/polijecare/polijecare_web/pkg/apiclient"
	pasetotoken "github.com/polijecare/polijecare_web/pkg/paseto"
	"github.com/polijecare/polijecare_web/pkg/reqctx"
)

const LocalSession = "auth.session"

// AuthRequired accepts the PASETO access token from the Authorization
// header or the session cookie and loads the session it points at. On
// success the request context carries the caller identity and the upstream
// bearer token, and c.Locals holds the claims and the session.
func AuthRequired(mgr *pasetotoken.Manager, sessions session.Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := authenticate(c, mgr, sessions); err != nil {
			return err
		}
		return c.Next()
	}
}

// AuthOptional is AuthRequired for routes anonymous visitors may call too.
// A missing or stale token leaves the request anonymous.
func AuthOptional(mgr *pasetotoken.Manager, sessions session.Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		if pasetotoken.TokenFromRequest(c) != "" {
			_ = authenticate(c, mgr, sessions)
		}
		return c.Next()
	}
}

func authenticate(c fiber.Ctx, mgr *pasetotoken.Manager, sessions session.Store) error {
	raw := pasetotoken.TokenFromRequest(c)
	if raw == "" {
		return fiber.ErrUnauthorized
	}

	claims, err := mgr.Verify(raw)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	sess, err := sessions.Get(c.Context(), claims.SessionID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			slog.WarnContext(c.Context(), "session lookup failed", "session_id", claims.SessionID, "error", err)
		}
		return fiber.ErrUnauthorized
	}

	ctx := reqctx.WithIdentity(c.Context(), &reqctx.Identity{
		UserID:    claims.UserID,
		Role:      claims.Role,
		SessionID: sess.ID,
	})
	c.SetContext(apiclient.WithToken(ctx, sess.Token))
	c.Locals(pasetotoken.CtxKeyClaims, claims)
	c.Locals(LocalSession, sess)
	return nil
}

func SessionFromFiber(c fiber.Ctx) (*session.Session, bool) {
	s, ok := c.Locals(LocalSession).(*session.Session)
	return s, ok && s != nil
}
