package utils

import (
	"context"

	"github.com/google/uuid"

	"drivehub-backend/internal/booking"
)

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity attaches the resolved caller identity to the context.
// Set once by the auth middleware; handlers never re-derive it from
// request state.
func WithIdentity(ctx context.Context, id booking.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentityFromContext returns the caller identity set by the auth
// middleware.
func GetIdentityFromContext(ctx context.Context) (booking.Identity, bool) {
	id, ok := ctx.Value(identityKey).(booking.Identity)
	return id, ok
}

// GetUserIDFromContext returns the authenticated user's id.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := GetIdentityFromContext(ctx)
	if !ok || id.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return id.UserID, true
}
