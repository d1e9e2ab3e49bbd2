package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/polijecare/polijecare_web/pkg/geocode"
)

type GeocodeHandler struct {
	geo geocode.Geocoder
}

func NewGeocodeHandler(geo geocode.Geocoder) *GeocodeHandler {
	return &GeocodeHandler{geo: geo}
}

// GET /api/v1/geocode/search?q=...&limit=5
func (h *GeocodeHandler) Search(c fiber.Ctx) error {
	var q struct {
		Q     string `query:"q"`
		Limit int    `query:"limit"`
	}
	if err := c.Bind().Query(&q); err != nil {
		return badRequest(c, "Parameter pencarian tidak valid.")
	}

	places, err := h.geo.Search(c.Context(), q.Q, q.Limit)
	if err != nil {
		return mapGeocodeError(c, err)
	}
	return ok(c, places)
}

// GET /api/v1/geocode/reverse?lat=...&lon=...
func (h *GeocodeHandler) Reverse(c fiber.Ctx) error {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		return badRequest(c, "Koordinat tidak valid.")
	}

	place, err := h.geo.Reverse(c.Context(), lat, lon)
	if err != nil {
		return mapGeocodeError(c, err)
	}
	return ok(c, place)
}

func mapGeocodeError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, geocode.ErrDisabled):
		return fail(c, fiber.StatusServiceUnavailable, "Pencarian lokasi tidak tersedia.")
	case errors.Is(err, geocode.ErrEmptyQuery):
		return badRequest(c, "Kata kunci lokasi wajib diisi.")
	case errors.Is(err, geocode.ErrInvalidPoint):
		return badRequest(c, "Koordinat tidak valid.")
	case errors.Is(err, geocode.ErrNotFound):
		return notFound(c, "Lokasi tidak ditemukan.")
	case errors.Is(err, geocode.ErrUpstream):
		return fail(c, fiber.StatusBadGateway, "Layanan peta sedang tidak dapat dihubungi.")
	default:
		return respondError(c, err)
	}
}
