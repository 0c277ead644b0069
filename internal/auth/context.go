// Package auth carries the authenticated identity through request contexts.
package auth

import "context"

type contextKey struct{}

// AuthContext identifies the logged-in user behind a request.
type AuthContext struct {
	UserID    int64
	SessionID int64
}

func WithAuth(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

// FromContext returns the identity set by the auth middleware, if any.
func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}
