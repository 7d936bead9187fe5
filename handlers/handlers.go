package handlers

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/identity"
	"github.com/upb/wte-dashboard/backend/middleware"
	"github.com/upb/wte-dashboard/backend/services/audit"
	"github.com/upb/wte-dashboard/backend/utils"
)

// dateLayout is accepted by date filters alongside RFC 3339
const dateLayout = "2006-01-02"

// currentIdentity returns the authenticated identity or writes a 401.
// RequireAuth normally guarantees one is present.
func currentIdentity(w http.ResponseWriter, r *http.Request, logger *zap.Logger) *identity.Identity {
	id := middleware.GetIdentityFromContext(r.Context())
	if id == nil {
		if err := utils.WriteUnauthorized(w, "Authentication required"); err != nil {
			logger.Error("failed to write unauthorized response", zap.Error(err))
		}
	}
	return id
}

// actorFrom attributes an audited change to the caller
func actorFrom(r *http.Request) audit.Actor {
	actor := audit.Actor{
		RequestID: middleware.GetRequestIDFromContext(r.Context()),
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	}
	if id := middleware.GetIdentityFromContext(r.Context()); id != nil {
		actor.UserID = id.UserID
	}
	return actor
}

// clientIP strips the port chi's RealIP leaves on RemoteAddr when no proxy
// header was present
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %q is not a UUID", name, raw)
	}
	return id, nil
}

func optionalUUIDQuery(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q is not a UUID", name, raw)
	}
	return &id, nil
}

func intQuery(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: must be a non-negative integer", name)
	}
	return n, nil
}

func boolQuery(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}

// timeQuery accepts RFC 3339 timestamps or plain dates
func timeQuery(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, dateLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid %s: use RFC 3339 or YYYY-MM-DD", name)
}

func writeOK(w http.ResponseWriter, data interface{}, logger *zap.Logger) {
	if err := utils.WriteOK(w, data); err != nil {
		logger.Error("failed to write response", zap.Error(err))
	}
}

func writeCreated(w http.ResponseWriter, data interface{}, logger *zap.Logger) {
	if err := utils.WriteCreated(w, data); err != nil {
		logger.Error("failed to write response", zap.Error(err))
	}
}
