package reqctx

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the logged-in user behind a request.
type Identity struct {
	UserID    string
	Role      string
	SessionID uuid.UUID
}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, keyIdentity, id)
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(keyIdentity).(*Identity)
	return id, ok && id != nil
}

func IsAuthenticated(ctx context.Context) bool {
	_, ok := IdentityFromContext(ctx)
	return ok
}

// LogAttrs returns request_id and user attributes for slog calls.
func LogAttrs(ctx context.Context) []any {
	var attrs []any
	if rid := RequestIDFromContext(ctx); rid != "" {
		attrs = append(attrs, "request_id", rid)
	}
	if id, ok := IdentityFromContext(ctx); ok {
		attrs = append(attrs, "user_id", id.UserID, "role", id.Role)
	}
	return attrs
}
