package auth

import (
	"context"

	"github.com/rudimedia/site-api/internal/storage"
)

// ctxKey is a private type for context keys to prevent collisions.
type ctxKey int

// adminKey stores the authorized *storage.Admin.
const adminKey ctxKey = iota

// WithAdmin adds an authorized admin to the context.
func WithAdmin(ctx context.Context, admin *storage.Admin) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}

// AdminFromContext retrieves the authorized admin from context.
// Returns nil if the request was not authorized.
func AdminFromContext(ctx context.Context) *storage.Admin {
	if v := ctx.Value(adminKey); v != nil {
		if admin, ok := v.(*storage.Admin); ok {
			return admin
		}
	}
	return nil
}
