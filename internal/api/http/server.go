package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polijecare/polijecare_web/config"
	"github.com/polijecare/polijecare_web/internal/api/http/handler"
	"github.com/polijecare/polijecare_web/internal/api/http/middleware"
	"github.com/polijecare/polijecare_web/internal/api/http/router"
	"github.com/polijecare/polijecare_web/pkg/observability"
)

const defaultBodyLimitMB = 8

// Module provides the HTTP Server to the fx graph.
var Module = fx.Module("http", fx.Provide(NewServer))

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Cfg       *config.Config
	Redis     *redis.Client `optional:"true"`
	Router    *router.Router
	OTel      *observability.Provider `optional:"true"`
}

func NewServer(p Params) *fiber.App {
	app := New(p.Cfg, p.Redis, p.OTel != nil)
	p.Router.Register(app)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := fmt.Sprintf(":%d", p.Cfg.Server.Port)
			go func() {
				if err := app.Listen(addr); err != nil {
					slog.Error("HTTP server error", "error", err)
				}
			}()
			slog.Info("HTTP server listening", "addr", addr, "env", p.Cfg.Server.Environment)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})

	return app
}

// New builds the fiber app with the global middleware stack but no routes.
func New(cfg *config.Config, rdb *redis.Client, traced bool) *fiber.App {
	limitMB := cfg.Server.BodyLimitMB
	if limitMB <= 0 {
		limitMB = defaultBodyLimitMB
	}
	fc := fiber.Config{
		AppName:      "polijecare-web",
		BodyLimit:    limitMB << 20,
		ErrorHandler: errorHandler,
	}
	if cfg.Server.TimeoutSeconds > 0 {
		fc.ReadTimeout = time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	}
	app := fiber.New(fc)

	if traced {
		app.Use(observability.FiberMiddleware())
	}
	configureGlobalMiddleware(app, cfg, rdb)
	return app
}

func configureGlobalMiddleware(app *fiber.App, cfg *config.Config, rdb *redis.Client) {
	app.Use(middleware.RequestID())
	app.Use(recoverer.New())

	if cfg.Server.Environment == "production" {
		app.Use(helmet.New())
		app.Use(compress.New())
	}
	if cfg.Server.CORS.Enabled {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.CORS.AllowOrigins,
			AllowCredentials: cfg.Server.CORS.AllowCredentials,
		}))
	}
	app.Use(middleware.NewLimiter(rdb, cfg.Server.RateLimit))

	app.Use(logger.New(logger.Config{
		Format: "${ip} - [${time}] [req_id=${locals:request_id}] ${method} ${url} ${status} ${latency}\n",
	}))
}

var statusMessages = map[int]string{
	fiber.StatusBadRequest:            "Permintaan tidak valid.",
	fiber.StatusUnauthorized:          "Sesi Anda telah berakhir. Silakan masuk kembali.",
	fiber.StatusForbidden:             "Anda tidak memiliki akses ke halaman ini.",
	fiber.StatusNotFound:              "Halaman tidak ditemukan.",
	fiber.StatusMethodNotAllowed:      "Metode tidak diizinkan.",
	fiber.StatusRequestEntityTooLarge: "Ukuran data melebihi batas.",
	fiber.StatusInternalServerError:   "Terjadi kesalahan pada server.",
}

// errorHandler renders errors returned by middleware in the response
// envelope.
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= 500 {
		slog.ErrorContext(c.Context(), "request failed", "path", c.Path(), "error", err)
	}

	msg, found := statusMessages[code]
	if !found {
		msg = err.Error()
	}
	return c.Status(code).JSON(handler.Envelope{Success: false, Message: msg})
}
