package adaptor

import (
	"errors"
	"net/http"

	"crossfit-api/internal/dto/request"
	"crossfit-api/internal/dto/response"
	"crossfit-api/internal/usecase"
	"crossfit-api/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "Confirmation email sent", user)
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "login")
		return
	}

	if resp.ConfirmationSent {
		utils.ResponseSuccess(w, "Confirmation email sent", resp)
		return
	}

	utils.ResponseSuccess(w, "Login successful", resp)
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())

	if err := h.service.Logout(r.Context(), token, userID); err != nil {
		// a session already gone is a plain not-found here
		if errors.Is(err, usecase.ErrSessionNotFound) {
			utils.ResponseNotFound(w, err.Error())
			return
		}
		writeServiceError(w, h.log, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}

// Check handles GET /api/check
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	utils.ResponseSuccess(w, "Session is valid", response.UserToPublic(user))
}

// VerifyEmail handles POST /api/verify_email
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyEmailRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.VerifyEmail(r.Context(), req.Token); err != nil {
		writeServiceError(w, h.log, err, "verify email")
		return
	}

	utils.ResponseSuccess(w, "Email verified", nil)
}

// ResetPassword handles POST /api/reset_password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ResetPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeServiceError(w, h.log, err, "request password reset")
		return
	}

	utils.ResponseSuccess(w, "Reset email sent", nil)
}

// NewPassword handles POST /api/new_password
func (h *AuthHandler) NewPassword(w http.ResponseWriter, r *http.Request) {
	var req request.NewPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		writeServiceError(w, h.log, err, "reset password")
		return
	}

	utils.ResponseSuccess(w, "Password updated", nil)
}

// ChangePassword handles PUT /api/change_password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID, &req); err != nil {
		writeServiceError(w, h.log, err, "change password")
		return
	}

	utils.ResponseSuccess(w, "Password updated successfully", nil)
}

// EditProfile handles PUT /api/edit_profile
func (h *AuthHandler) EditProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	token, _ := utils.GetTokenFromContext(r.Context())

	var req request.EditProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.EditProfile(r.Context(), userID, token, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "edit profile")
		return
	}

	if resp.ReauthRequired {
		utils.ResponseSuccess(w, "Profile updated successfully. Please verify your new email address.", resp)
		return
	}

	utils.ResponseSuccess(w, "Profile updated successfully", resp)
}
