package middleware

import (
	"context"

	"github.com/Arman2205/Knowledge_Network/pkg/auth"
)

type contextKey string

const userContextKey contextKey = "user"

// WithUser returns a context carrying the authenticated user's claims.
func WithUser(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, userContextKey, claims)
}

// GetUserFromContext returns the claims attached by the auth middleware,
// or nil when the request never passed authentication.
func GetUserFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(userContextKey).(*auth.Claims)
	return claims
}
