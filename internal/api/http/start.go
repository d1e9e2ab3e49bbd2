package http

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/polijecare/polijecare_web/config"
	"github.com/polijecare/polijecare_web/internal/api/http/router"
	"github.com/polijecare/polijecare_web/internal/app"
)

// Start runs the web tier until it receives a stop signal.
func Start(cfg *config.Config, timeout time.Duration) {
	fx.New(
		fx.Supply(cfg),
		app.InfraModule,
		app.ServiceModule,
		router.Module,
		Module,

		// NewServer registers the listen hook, so something has to ask for the app.
		fx.Invoke(func(*fiber.App) {}),

		fx.StopTimeout(timeout),
		fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
	).Run()
}
