package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	resp "link-validator/internal/lib/api/response"
	"link-validator/internal/lib/jwt"

	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const (
	ContextKeyUID   contextKey = "uid"
	ContextKeyEmail contextKey = "email"
)

var (
	errMissingHeader = errors.New("missing authorization header")
	errHeaderFormat  = errors.New("invalid authorization header format")
)

// TokenValidator verifies a bearer token and returns its claims.
type TokenValidator interface {
	Validate(tokenString string) (*jwt.UserClaims, error)
}

// New rejects requests without a valid bearer token.
func New(log *slog.Logger, validator TokenValidator) func(next http.Handler) http.Handler {
	return middlewareFor(log, validator, true)
}

// Optional authenticates requests that carry a bearer token and lets
// anonymous requests through as guests. A present but invalid token is
// still rejected.
func Optional(log *slog.Logger, validator TokenValidator) func(next http.Handler) http.Handler {
	return middlewareFor(log, validator, false)
}

func middlewareFor(log *slog.Logger, validator TokenValidator, required bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		const op = "middleware.auth.New"

		log := log.With(
			slog.String("component", "middleware/auth"),
			slog.Bool("required", required),
		)

		log.Info("auth middleware enabled")

		fn := func(w http.ResponseWriter, r *http.Request) {
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr, err := bearerToken(r.Header.Get("Authorization"))
			if errors.Is(err, errMissingHeader) && !required {
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				log.Warn("unauthorized request", slog.String("error", err.Error()))
				unauthorized(log, w, err.Error())
				return
			}

			if validator == nil {
				log.Warn("token received but no public key configured")
				unauthorized(log, w, "authentication is not configured")
				return
			}

			claims, err := validator.Validate(tokenStr)
			if err != nil {
				log.Warn("token validation failed", slog.String("error", err.Error()))
				unauthorized(log, w, "invalid token")
				return
			}

			log.Info("user authenticated",
				slog.Int64("uid", claims.UID),
				slog.String("email", claims.Email),
			)

			ctx := context.WithValue(r.Context(), ContextKeyUID, claims.UID)
			ctx = context.WithValue(ctx, ContextKeyEmail, claims.Email)

			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingHeader
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errHeaderFormat
	}

	return parts[1], nil
}

func unauthorized(log *slog.Logger, w http.ResponseWriter, msg string) {
	if err := resp.RenderJSON(w, http.StatusUnauthorized, resp.Error("unauthorized: "+msg)); err != nil {
		log.Error("failed to render JSON response", slog.String("error", err.Error()))
	}
}

// GetEmail retrieves the authenticated user's email from the request context.
// Returns the email and true if found, or empty string and false otherwise.
func GetEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(ContextKeyEmail).(string)
	return email, ok
}

// GetUID retrieves the authenticated user's ID from the request context.
// Returns the UID and true if found, or 0 and false otherwise.
func GetUID(ctx context.Context) (int64, bool) {
	uid, ok := ctx.Value(ContextKeyUID).(int64)
	return uid, ok
}

// IsRegistered reports whether the request was made by an authenticated user.
func IsRegistered(ctx context.Context) bool {
	_, ok := GetUID(ctx)
	return ok
}
