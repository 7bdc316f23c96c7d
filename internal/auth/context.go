package auth

import (
	"context"

	"github.com/stockroom/stockroom/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// authContextKey is the context key for storing AuthContext.
const authContextKey contextKey = "auth_context"

// ContextWithAuth adds the authenticated identity to the context.
func ContextWithAuth(ctx context.Context, authCtx *model.AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, authCtx)
}

// AuthFromContext retrieves the authenticated identity from the context.
// Returns nil if not present.
func AuthFromContext(ctx context.Context) *model.AuthContext {
	authCtx, ok := ctx.Value(authContextKey).(*model.AuthContext)
	if !ok {
		return nil
	}
	return authCtx
}

// UserIDFromContext is a convenience function to get the user ID from context.
// Returns empty string if not authenticated.
func UserIDFromContext(ctx context.Context) string {
	authCtx := AuthFromContext(ctx)
	if authCtx == nil {
		return ""
	}
	return authCtx.UserID
}
