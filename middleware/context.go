package middleware

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/upb/wte-dashboard/backend/identity"
	"github.com/upb/wte-dashboard/backend/internal/access"
)

// Context key type to avoid collisions
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"

	// IdentityKey is the context key for the authenticated identity
	IdentityKey contextKey = "identity"
)

// GetRequestIDFromContext retrieves the request ID from context, falling
// back to the one set by chi's RequestID middleware
func GetRequestIDFromContext(ctx context.Context) string {
	if val := ctx.Value(RequestIDKey); val != nil {
		if requestID, ok := val.(string); ok {
			return requestID
		}
	}
	return chimw.GetReqID(ctx)
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetIdentityFromContext retrieves the authenticated identity from context
func GetIdentityFromContext(ctx context.Context) *identity.Identity {
	if val := ctx.Value(IdentityKey); val != nil {
		if id, ok := val.(*identity.Identity); ok {
			return id
		}
	}
	return nil
}

// WithIdentity adds an authenticated identity to the context
func WithIdentity(ctx context.Context, id *identity.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

// GetRoleFromContext returns the caller's role, or access.RoleNone when
// the request is unauthenticated
func GetRoleFromContext(ctx context.Context) access.Role {
	if id := GetIdentityFromContext(ctx); id != nil {
		return id.Role
	}
	return access.RoleNone
}
