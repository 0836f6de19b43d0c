package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hireboard/hireboard/internal/auth"
	"github.com/hireboard/hireboard/internal/cache"
	"github.com/hireboard/hireboard/internal/model"
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "hb_session"

// AuthConfig holds configuration for the session middleware.
type AuthConfig struct {
	Logger *slog.Logger
	Cache  *cache.Cache
}

// Auth returns a middleware that authenticates requests against the
// session store. The token comes from the hb_session cookie or an
// "Authorization: Bearer" header; only its hash ever reaches Redis.
// On success the auth context is injected into the request.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractSessionToken(r)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			session, err := cfg.Cache.GetSession(r.Context(), auth.HashToken(token))
			if err != nil {
				if !errors.Is(err, cache.ErrSessionNotFound) {
					cfg.Logger.Error("session store error during auth",
						slog.String("error", err.Error()),
						slog.String("request_id", GetRequestID(r.Context())),
					)
				} else {
					cfg.Logger.Warn("authentication failed",
						slog.String("reason", "invalid_token"),
						slog.String("ip", r.RemoteAddr),
						slog.String("endpoint", r.Method+" "+r.URL.Path),
						slog.String("request_id", GetRequestID(r.Context())),
					)
				}
				writeAuthError(w)
				return
			}

			// TTL expiry in Redis is authoritative; this guards clock skew.
			if session.IsExpired() {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "expired_session"),
					slog.String("user_id", session.UserID),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			authCtx := &model.AuthContext{
				UserID: session.UserID,
				Role:   session.Role,
			}

			ctx := auth.ContextWithAuth(r.Context(), authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractSessionToken extracts the session token from the request.
// Supports both the session cookie and "Authorization: Bearer <token>".
func extractSessionToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHENTICATED","message":"Invalid or missing session"}}`))
}
