package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fakhrymubarak/city-dashboard/internal/config"
	"github.com/fakhrymubarak/city-dashboard/internal/model"
	"github.com/fakhrymubarak/city-dashboard/internal/repository"
)

type contextKey string

const userIDKey contextKey = "userID"

// SessionResolver maps a session ID to the owning user ID.
type SessionResolver interface {
	ResolveSession(ctx context.Context, sessionID string) (string, error)
}

// RequireSession rejects requests without a live session cookie with 401.
// The user ID is stored in the request context for downstream handlers.
func RequireSession(resolver SessionResolver, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
				return
			}

			userID, err := resolver.ResolveSession(r.Context(), cookie.Value)
			if errors.Is(err, repository.ErrSessionNotFound) {
				writeError(w, http.StatusUnauthorized, "Unauthorized", "Session expired or invalid")
				return
			}
			if err != nil {
				config.GetLogger().Errorw("Session lookup failed", "error", err)
				writeError(w, http.StatusInternalServerError, "Error", "Session lookup failed")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
		})
	}
}

// UserIDFromContext returns the user ID stored by RequireSession.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

func writeError(w http.ResponseWriter, statusCode int, message, errMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp := model.Response{
		Error:   &errMsg,
		Message: message,
	}
	_ = json.NewEncoder(w).Encode(resp)
}
