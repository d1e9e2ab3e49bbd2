package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/polijecare/polijecare_web/pkg/apiclient"
	"github.com/polijecare/polijecare_web/pkg/reqctx"
	"github.com/polijecare/polijecare_web/pkg/validate"
)

const (
	msgUpstreamDown = "Layanan sedang tidak dapat dihubungi. Silakan coba beberapa saat lagi."
	msgTimeout      = "Permintaan melebihi batas waktu."
)

// respondError is the fallback every mapXError ends in. Local validation
// failures become 422 with per-field messages. Upstream 4xx answers keep
// their status and message, 5xx and transport failures become 502.
func respondError(c fiber.Ctx, err error) error {
	var verr *validate.Error
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(Envelope{
			Success: false,
			Message: verr.Display(),
			Errors:  verr.Fields,
		})
	}

	if apiErr, isAPI := apiclient.AsError(err); isAPI {
		msg := apiErr.Display()
		if apiErr.Status >= 500 {
			if msg == "" {
				msg = msgUpstreamDown
			}
			slog.WarnContext(c.Context(), "upstream server error", append(reqctx.LogAttrs(c.Context()), "error", err)...)
			return c.Status(fiber.StatusBadGateway).JSON(Envelope{Success: false, Message: msg})
		}
		if msg == "" {
			msg = http.StatusText(apiErr.Status)
		}
		return c.Status(apiErr.Status).JSON(Envelope{Success: false, Message: msg, Errors: apiErr.Fields})
	}

	switch {
	case errors.Is(err, apiclient.ErrUnavailable):
		slog.WarnContext(c.Context(), "upstream unreachable", append(reqctx.LogAttrs(c.Context()), "error", err)...)
		return fail(c, fiber.StatusBadGateway, msgUpstreamDown)
	case errors.Is(err, apiclient.ErrNoToken):
		return unauthorized(c)
	case errors.Is(err, context.DeadlineExceeded):
		return fail(c, fiber.StatusGatewayTimeout, msgTimeout)
	}

	slog.ErrorContext(c.Context(), "unhandled error", append(reqctx.LogAttrs(c.Context()), "path", c.Path(), "error", err)...)
	return internalError(c)
}
