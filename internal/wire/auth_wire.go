package wire

import (
	"net/http"

	"crossfit-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, authenticate func(http.Handler) http.Handler) {
	// public
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)
	r.Post("/api/verify_email", authHandler.VerifyEmail)
	r.Post("/api/reset_password", authHandler.ResetPassword)
	r.Post("/api/new_password", authHandler.NewPassword)

	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Post("/api/logout", authHandler.Logout)
		r.Get("/api/check", authHandler.Check)
		r.Put("/api/edit_profile", authHandler.EditProfile)
		r.Put("/api/change_password", authHandler.ChangePassword)
	})
}
