package middleware

import (
	"context"
	"errors"
	"net/http"

	"crossfit-api/internal/data/entity"
	"crossfit-api/internal/usecase"
	"crossfit-api/pkg/utils"

	"go.uber.org/zap"
)

// SessionValidator resolves an Authorization header to a user and its raw token
type SessionValidator interface {
	ValidateSession(ctx context.Context, authHeader string) (*entity.User, string, error)
}

// Authenticate validates the bearer session once and stores user and token in the request context
func Authenticate(validator SessionValidator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, token, err := validator.ValidateSession(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				rejectSession(w, r, logger, err)
				return
			}

			ctx := utils.SetAuthContext(r.Context(), user, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func rejectSession(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, usecase.ErrMissingToken),
		errors.Is(err, usecase.ErrInvalidToken),
		errors.Is(err, usecase.ErrSessionNotFound),
		errors.Is(err, usecase.ErrSessionExpired),
		errors.Is(err, usecase.ErrUserNotFound):
		logger.Debug("Session rejected", zap.Error(err), zap.String("path", r.URL.Path))
		utils.ResponseUnauthorized(w, err.Error())
	case errors.Is(err, usecase.ErrAccountDisabled):
		logger.Warn("Session of a disabled account", zap.Error(err), zap.String("path", r.URL.Path))
		utils.ResponseForbidden(w, err.Error())
	default:
		logger.Error("Failed to validate session", zap.Error(err), zap.String("path", r.URL.Path))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// RequireRoles lets the request through only when the authenticated user holds one of roles.
// Every denial looks the same to the caller.
func RequireRoles(logger *zap.Logger, roles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, _ := utils.GetUserFromContext(r.Context())

			if !usecase.Authorize(user, roles...) {
				fields := []zap.Field{zap.String("path", r.URL.Path)}
				if user != nil {
					fields = append(fields, zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
				}
				logger.Warn("Access denied", fields...)
				utils.ResponseForbidden(w, usecase.ErrForbidden.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
