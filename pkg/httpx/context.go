package httpx

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const CtxKeyIdentity ctxKey = "identity"

// WithIdentity stores the authenticated user id in ctx.
func WithIdentity(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, CtxKeyIdentity, id)
}

// IdentityFromContext returns the user id set by RequireAuth or
// OptionalAuth. ok is false for anonymous requests.
func IdentityFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(CtxKeyIdentity).(uuid.UUID)
	return id, ok
}
