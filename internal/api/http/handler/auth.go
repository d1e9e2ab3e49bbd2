package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/polijecare/polijecare_web/internal/service/auth"
	"github.com/polijecare/polijecare_web/pkg/apiclient"
	"github.com/polijecare/polijecare_web/pkg/authorize"
	pasetotoken "github.com/polijecare/polijecare_web/pkg/paseto"
)

type AuthHandler struct {
	svc          auth.Service
	secureCookie bool
}

func NewAuthHandler(svc auth.Service, secureCookie bool) *AuthHandler {
	return &AuthHandler{svc: svc, secureCookie: secureCookie}
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body auth.LoginRequest
	if err := c.Bind().JSON(&body); err != nil {
		return invalidBody(c)
	}

	res, err := h.svc.Login(c.Context(), body)
	if err != nil {
		return mapAuthError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     pasetotoken.CookieName,
		Value:    res.AccessToken,
		Path:     "/",
		Expires:  res.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return okMessage(c, fiber.Map{
		"access_token": res.AccessToken,
		"expires_at":   res.ExpiresAt,
		"user":         res.Session.User,
		"redirect":     res.Redirect,
	}, "Login berhasil.")
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	sid, found := sessionID(c)
	if !found {
		return unauthorized(c)
	}
	if err := h.svc.Logout(c.Context(), sid); err != nil {
		return mapAuthError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     pasetotoken.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return okMessage(c, nil, "Anda telah keluar.")
}

// GET /api/v1/auth/me
func (h *AuthHandler) Me(c fiber.Ctx) error {
	sid, found := sessionID(c)
	if !found {
		return unauthorized(c)
	}
	sess, err := h.svc.Current(c.Context(), sid)
	if err != nil {
		return mapAuthError(c, err)
	}

	return ok(c, fiber.Map{
		"user":       sess.User,
		"session_id": sess.ID,
		"created_at": sess.CreatedAt,
		"redirect":   authorize.DefaultRedirect(authorize.Role(sess.User.Role)),
	})
}

func mapAuthError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return fail(c, fiber.StatusUnauthorized, "Email atau kata sandi salah.")
	case errors.Is(err, auth.ErrUnknownRole):
		return fail(c, fiber.StatusForbidden, "Peran akun tidak dikenali.")
	case errors.Is(err, auth.ErrNoToken):
		return fail(c, fiber.StatusBadGateway, "Server tidak mengembalikan token.")
	case errors.Is(err, auth.ErrSessionNotFound), errors.Is(err, apiclient.ErrUnauthorized):
		return unauthorized(c)
	default:
		return respondError(c, err)
	}
}
