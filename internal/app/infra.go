package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polijecare/polijecare_web/config"
	"github.com/polijecare/polijecare_web/internal/counseling"
	"github.com/polijecare/polijecare_web/internal/session"
	"github.com/polijecare/polijecare_web/pkg/apiclient"
	"github.com/polijecare/polijecare_web/pkg/authorize"
	"github.com/polijecare/polijecare_web/pkg/crypto"
	"github.com/polijecare/polijecare_web/pkg/email"
	"github.com/polijecare/polijecare_web/pkg/geocode"
	"github.com/polijecare/polijecare_web/pkg/observability"
	pasetotoken "github.com/polijecare/polijecare_web/pkg/paseto"
	redispkg "github.com/polijecare/polijecare_web/pkg/redis"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideOTel),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideSealer),
	fx.Provide(ProvideSessionStore),
	fx.Provide(ProvidePasetoManager),
	fx.Provide(ProvideAuthorization),
	fx.Provide(ProvideAPIClient),
	fx.Provide(ProvideResolver),
	fx.Provide(ProvideGeocoder),
	fx.Provide(ProvideEmailClient),
)

// ProvideRedis connects to Redis. An empty address runs without it: sessions
// and rate-limit counters then live in process memory.
func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		slog.Warn("redis.addr is empty, sessions are kept in memory")
		return nil, nil
	}
	rdb, err := redispkg.New(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideSealer(cfg *config.Config) (*crypto.Sealer, error) {
	if cfg.Authentication.EncryptionKey == "" {
		slog.Warn("authentication.encryption_key not configured, sessions will not survive a restart")
	}
	return crypto.NewSealerFromHex(cfg.Authentication.EncryptionKey)
}

func ProvideSessionStore(rdb *redis.Client, sealer *crypto.Sealer, cfg *config.Config) session.Store {
	if rdb == nil {
		return session.NewMemoryStoreFor(cfg)
	}
	return session.NewStore(rdb, sealer, cfg)
}

func ProvidePasetoManager(cfg *config.Config) (*pasetotoken.Manager, error) {
	return pasetotoken.NewFromConfig(cfg)
}

func ProvideAuthorization(cfg *config.Config) (authorize.IAuthorization, error) {
	enforcer, err := authorize.NewEnforcerFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	auth, err := authorize.NewAuthorization(enforcer)
	if err != nil {
		return nil, err
	}
	if cfg.Authorization.EnableAudit {
		return authorize.NewAuditedAuthorization(auth, slog.Default()), nil
	}
	return auth, nil
}

func ProvideAPIClient(cfg *config.Config) (*apiclient.Client, error) {
	return NewAPIClient(cfg)
}

// NewAPIClient builds the upstream client with tracing on every request.
// The server passes the session token per request; the CLI adds a token
// source.
func NewAPIClient(cfg *config.Config, extra ...apiclient.Option) (*apiclient.Client, error) {
	timeout := time.Duration(cfg.API.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	opts := []apiclient.Option{
		apiclient.WithHTTPClient(&http.Client{
			Timeout:   timeout,
			Transport: observability.NewTransport(http.DefaultTransport),
		}),
		apiclient.WithLogger(slog.Default()),
	}
	if cfg.API.UserAgent != "" {
		opts = append(opts, apiclient.WithUserAgent(cfg.API.UserAgent))
	}
	return apiclient.New(cfg.API.BaseURL, append(opts, extra...)...)
}

func ProvideResolver(cfg *config.Config) *counseling.Resolver {
	return NewResolver(cfg)
}

func NewResolver(cfg *config.Config) *counseling.Resolver {
	return counseling.NewResolver(cfg.Location(),
		counseling.WithStrictWeekday(cfg.Counseling.StrictWeekday),
		counseling.WithResolverLogger(slog.Default()),
	)
}

func ProvideGeocoder(cfg *config.Config) geocode.Geocoder {
	return geocode.New(cfg.Geocoding, geocode.WithHTTPClient(&http.Client{
		Transport: observability.NewTransport(http.DefaultTransport),
	}))
}

func ProvideEmailClient(cfg *config.Config) email.Sender {
	return email.New(cfg.Email)
}

// ProvideOTel installs the global tracer and meter providers.
func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.Init(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
