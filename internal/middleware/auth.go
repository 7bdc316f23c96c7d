package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/stockroom/stockroom/internal/auth"
	"github.com/stockroom/stockroom/internal/handler/dto"
	"github.com/stockroom/stockroom/internal/metrics"
	"github.com/stockroom/stockroom/internal/model"
	"github.com/stockroom/stockroom/internal/session"
)

// unauthenticatedMessage is the fixed 401 payload for every protected route.
// It never varies by route or by failure reason.
const unauthenticatedMessage = "Unauthenticated. Please login to access this resource."

// SessionResolver resolves a bearer token to the authenticated identity.
// *session.Store satisfies it.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*model.AuthContext, error)
}

// GateConfig holds configuration for the auth gate middleware.
type GateConfig struct {
	Logger   *slog.Logger
	Sessions SessionResolver
	Metrics  metrics.Recorder
}

// Gate returns a middleware that authenticates API requests. It extracts the
// bearer token from the Authorization header, resolves it against the
// session store, and injects the identity into the request context.
func Gate(cfg GateConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" || !auth.ValidTokenFormat(token) {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_or_malformed_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				recorder.IncAuthRejected()
				writeUnauthenticated(w)
				return
			}

			authCtx, err := cfg.Sessions.Resolve(r.Context(), token)
			if err != nil {
				if errors.Is(err, session.ErrTokenNotFound) {
					cfg.Logger.Warn("authentication failed",
						slog.String("reason", "unknown_token"),
						slog.String("ip", r.RemoteAddr),
						slog.String("endpoint", r.Method+" "+r.URL.Path),
						slog.String("request_id", GetRequestID(r.Context())),
					)
					recorder.IncAuthRejected()
					writeUnauthenticated(w)
					return
				}

				// A session store outage is a server fault, not an auth failure.
				cfg.Logger.Error("session store error during auth",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeJSON(w, http.StatusInternalServerError, dto.Failure("An internal error occurred"))
				return
			}

			authCtx.Token = token

			cfg.Logger.Info("authentication successful",
				slog.String("user_id", authCtx.UserID),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			ctx := auth.ContextWithAuth(r.Context(), authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the token from "Authorization: Bearer <token>".
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// writeUnauthenticated writes the fixed 401 envelope.
func writeUnauthenticated(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, dto.Failure(unauthenticatedMessage))
}
