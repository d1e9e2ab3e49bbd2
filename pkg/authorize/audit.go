package authorize

import (
	"context"
	"log/slog"
	"time"

	casbin "github.com/casbin/casbin/v2"

	"github.com/polijecare/polijecare_web/pkg/reqctx"
)

// AuditedAuthorization logs every route decision as "authz_decision".
type AuditedAuthorization struct {
	inner  IAuthorization
	logger *slog.Logger
}

func NewAuditedAuthorization(inner IAuthorization, logger *slog.Logger) IAuthorization {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditedAuthorization{inner: inner, logger: logger}
}

func (a *AuditedAuthorization) Enforce(ctx context.Context, role Role, object string, action Action) (bool, error) {
	start := time.Now()
	allowed, err := a.inner.Enforce(ctx, role, object, action)

	attrs := append([]any{
		"role", string(role),
		"object", object,
		"action", string(action),
		"allowed", allowed,
		"duration_us", time.Since(start).Microseconds(),
	}, reqctx.LogAttrs(ctx)...)

	switch {
	case err != nil:
		a.logger.ErrorContext(ctx, "authz_decision", append(attrs, "error", err.Error())...)
	case allowed:
		a.logger.DebugContext(ctx, "authz_decision", attrs...)
	default:
		a.logger.WarnContext(ctx, "authz_decision", attrs...)
	}
	return allowed, err
}

func (a *AuditedAuthorization) MustEnforce(ctx context.Context, role Role, object string, action Action) error {
	ok, err := a.Enforce(ctx, role, object, action)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

func (a *AuditedAuthorization) HasPermission(ctx context.Context, role Role, perm Permission) bool {
	return a.inner.HasPermission(ctx, role, perm)
}

func (a *AuditedAuthorization) PermissionsFor(ctx context.Context, role Role) []Permission {
	return a.inner.PermissionsFor(ctx, role)
}

func (a *AuditedAuthorization) Raw() *casbin.SyncedEnforcer { return a.inner.Raw() }
