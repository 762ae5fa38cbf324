package wire

import (
	"net/http"

	"crossfit-api/internal/adaptor"
	"crossfit-api/internal/data/entity"
	"crossfit-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures profile and user administration routes
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	authenticate func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	r.With(authenticate).Get("/api/view_profile", userHandler.GetProfile)

	r.With(
		authenticate,
		middleware.RequireRoles(log, entity.RoleAdmin),
	).Route("/api/users", func(r chi.Router) {
		r.Get("/", userHandler.GetAllUsers)
		r.Post("/", userHandler.CreateUser)
		r.Get("/{id}", userHandler.GetUser)
		r.Put("/{id}", userHandler.UpdateUser)
		r.Patch("/{id}/status", userHandler.ToggleStatus)
	})
}
