package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polijecare/polijecare_web/internal/counseling"
	"github.com/polijecare/polijecare_web/internal/service/counselingsvc"
	"github.com/polijecare/polijecare_web/pkg/apiclient"
)

func TestMapSubmitError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown weekday", fmt.Errorf("build booking: %w", counseling.ErrUnknownWeekday), fiber.StatusUnprocessableEntity},
		{"slot taken", counseling.ErrSlotUnavailable, fiber.StatusConflict},
		{"in flight", counseling.ErrSubmitInFlight, fiber.StatusConflict},
		{"no selection", counseling.ErrNoSelection, fiber.StatusBadRequest},
		{"schedule gone", counselingsvc.ErrScheduleNotFound, fiber.StatusNotFound},
		{"upstream 422", &apiclient.Error{Status: 422, Message: "Validasi gagal"}, fiber.StatusUnprocessableEntity},
		{"upstream 500", &apiclient.Error{Status: 500}, fiber.StatusBadGateway},
		{"api down", apiclient.ErrUnavailable, fiber.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Post("/", func(c fiber.Ctx) error { return mapSubmitError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)

			var env Envelope
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Message)
		})
	}
}
