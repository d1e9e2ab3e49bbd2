package router

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polijecare/polijecare_web/config"
	"github.com/polijecare/polijecare_web/internal/api/http/handler"
	"github.com/polijecare/polijecare_web/internal/api/http/middleware"
	"github.com/polijecare/polijecare_web/internal/service/auth"
	"github.com/polijecare/polijecare_web/internal/service/complaint"
	"github.com/polijecare/polijecare_web/internal/service/content"
	"github.com/polijecare/polijecare_web/internal/service/counselingsvc"
	"github.com/polijecare/polijecare_web/internal/service/schedule"
	"github.com/polijecare/polijecare_web/internal/service/user"
	"github.com/polijecare/polijecare_web/internal/session"
	"github.com/polijecare/polijecare_web/pkg/authorize"
	"github.com/polijecare/polijecare_web/pkg/geocode"
	pasetotoken "github.com/polijecare/polijecare_web/pkg/paseto"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg   *config.Config
	Redis *redis.Client `optional:"true"`
	Auth  authorize.IAuthorization

	Sessions      session.Store
	PasetoMgr     *pasetotoken.Manager
	Geocoder      geocode.Geocoder
	AuthSvc       auth.Service
	UserSvc       user.Service
	ComplaintSvc  complaint.Service
	ScheduleSvc   schedule.Service
	CounselingSvc counselingsvc.Service
	ContentSvc    content.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Middlewares
	authRequired := middleware.AuthRequired(r.p.PasetoMgr, r.p.Sessions)
	authOptional := middleware.AuthOptional(r.p.PasetoMgr, r.p.Sessions)
	requireRoute := middleware.RequireRoute(r.p.Auth)

	// 3. Handlers
	authH := handler.NewAuthHandler(r.p.AuthSvc, r.p.Cfg.Server.Environment == "production")
	navH := handler.NewNavigationHandler(r.p.Auth)
	contentH := handler.NewContentHandler(r.p.ContentSvc)
	geoH := handler.NewGeocodeHandler(r.p.Geocoder)
	userH := handler.NewUserHandler(r.p.UserSvc)
	complaintH := handler.NewComplaintHandler(r.p.ComplaintSvc, r.p.CounselingSvc)
	scheduleH := handler.NewScheduleHandler(r.p.ScheduleSvc)
	counselingH := handler.NewCounselingHandler(r.p.CounselingSvc)

	api := app.Group("/api/v1")

	// 4. Delegate to sub-files
	r.registerAuthRoutes(api, authH, navH, authRequired, authOptional)
	r.registerContentRoutes(api, contentH, geoH, authRequired)
	r.registerStudentRoutes(api, complaintH, scheduleH, counselingH, authRequired, requireRoute)
	r.registerOperatorRoutes(api, userH, complaintH, authRequired, requireRoute)
	r.registerKonselorRoutes(api, scheduleH, counselingH, authRequired, requireRoute)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool { return r.ready(c.Context()) },
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}

// ready reports whether the session store answers.
func (r *Router) ready(ctx context.Context) bool {
	if r.p.Redis == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return r.p.Redis.Ping(ctx).Err() == nil
}
