package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/identity"
	"github.com/upb/wte-dashboard/backend/internal/access"
	"github.com/upb/wte-dashboard/backend/internal/observability"
	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/services/audit"
	"github.com/upb/wte-dashboard/backend/utils"
)

// IdentityResolver turns an access token into an identity
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*identity.Identity, error)
}

// AuthMiddleware provides authentication and module authorization
type AuthMiddleware struct {
	identities IdentityResolver
	access     *access.Resolver
	auditor    audit.Recorder
	logger     *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware. auditor may be nil.
func NewAuthMiddleware(identities IdentityResolver, resolver *access.Resolver, auditor audit.Recorder, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		identities: identities,
		access:     resolver,
		auditor:    auditor,
		logger:     logger,
	}
}

// authTokenCookieName is the cookie name for JWT tokens (Authorization header takes precedence)
// sessionCookieName is set by the frontend after sign-in
const authTokenCookieName = "auth_token"
const sessionCookieName = "session"

// RequireAuth is a middleware that requires a valid access token
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		token := extractToken(r)
		if token == "" {
			m.logger.Warn("missing token",
				zap.String("request_id", requestID))
			_ = utils.WriteUnauthorized(w, "Missing or invalid authorization")
			return
		}

		id, err := m.identities.Resolve(ctx, token)
		switch {
		case err == nil:
		case errors.Is(err, identity.ErrTokenExpired):
			m.logger.Warn("token expired",
				zap.String("request_id", requestID))
			_ = utils.WriteUnauthorized(w, "Token expired")
			return
		case errors.Is(err, identity.ErrInvalidToken):
			m.logger.Warn("token validation failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteUnauthorized(w, "Invalid or expired token")
			return
		default:
			m.logger.Error("identity lookup failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteServiceUnavailable(w, "Identity lookup failed")
			return
		}

		m.logger.Debug("authentication successful",
			zap.String("request_id", requestID),
			zap.String("user_id", id.UserID.String()),
			zap.String("role", string(id.Role)))

		next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, id)))
	})
}

// RequireModule is a middleware that only admits identities whose role may
// use module. It must run after RequireAuth.
func (m *AuthMiddleware) RequireModule(module access.Module) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestIDFromContext(ctx)

			id := GetIdentityFromContext(ctx)
			if id == nil {
				m.logger.Error("identity not found in context",
					zap.String("request_id", requestID))
				_ = utils.WriteUnauthorized(w, "Authentication required")
				return
			}

			allowed := m.access.HasAccess(id.Role, module)
			observability.RecordAccessDecision(string(id.Role), string(module), allowed)

			if !allowed {
				m.logger.Warn("module access denied",
					zap.String("request_id", requestID),
					zap.String("user_id", id.UserID.String()),
					zap.String("role", string(id.Role)),
					zap.String("module", string(module)))
				m.recordDenial(r, id, module)
				_ = utils.WriteForbidden(w, "Your role does not have access to this module")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (m *AuthMiddleware) recordDenial(r *http.Request, id *identity.Identity, module access.Module) {
	if m.auditor == nil {
		return
	}
	entry := models.NewAuditLog(models.AuditActionAccessDenied, "module").
		WithUser(id.UserID).
		WithDetails(map[string]string{
			"module": string(module),
			"role":   string(id.Role),
			"path":   r.URL.Path,
		}).
		WithRequest(GetRequestIDFromContext(r.Context()), r.RemoteAddr, r.UserAgent())
	if err := m.auditor.Record(entry); err != nil {
		m.logger.Warn("failed to record access denial", zap.Error(err))
	}
}

// extractToken extracts JWT from cookie ("auth_token") or Authorization header ("Bearer TOKEN").
// Authorization header takes precedence when both are present.
func extractToken(r *http.Request) string {
	if token := extractBearerToken(r); token != "" {
		return token
	}
	for _, name := range []string{authTokenCookieName, sessionCookieName} {
		if cookie, err := r.Cookie(name); err == nil && cookie.Value != "" {
			return cookie.Value
		}
	}
	return ""
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
