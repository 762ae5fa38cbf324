package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"crossfit-api/internal/usecase"
	"crossfit-api/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth *AuthHandler
	User *UserHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth: NewAuthHandler(service.Auth, log),
		User: NewUserHandler(service.User, log),
	}
}

// decodeAndValidate reads a JSON body into dst and writes a 400 when it is unusable
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Invalid fields", validationErrors)
		return false
	}

	return true
}

type errorStatus struct {
	target error
	code   int
}

// statusTable maps usecase errors to HTTP status codes; first match wins
var statusTable = []errorStatus{
	{usecase.ErrValidation, http.StatusBadRequest},
	{usecase.ErrTokenNotFound, http.StatusBadRequest},
	{usecase.ErrTokenExpired, http.StatusBadRequest},
	{usecase.ErrIncorrectPassword, http.StatusBadRequest},
	{usecase.ErrSamePassword, http.StatusBadRequest},
	{usecase.ErrEmailInUse, http.StatusBadRequest},
	{usecase.ErrIdentificationInUse, http.StatusBadRequest},

	{usecase.ErrMissingToken, http.StatusUnauthorized},
	{usecase.ErrInvalidToken, http.StatusUnauthorized},
	{usecase.ErrSessionNotFound, http.StatusUnauthorized},
	{usecase.ErrSessionExpired, http.StatusUnauthorized},
	{usecase.ErrUserNotFound, http.StatusUnauthorized},
	{usecase.ErrInvalidCredentials, http.StatusUnauthorized},

	{usecase.ErrForbidden, http.StatusForbidden},
	{usecase.ErrAccountDisabled, http.StatusForbidden},

	{usecase.ErrAccountNotFound, http.StatusNotFound},
	{usecase.ErrNotFound, http.StatusNotFound},
}

// StatusFor returns the status code and client message for err.
// Anything outside the table is a 500 with a generic message.
func StatusFor(err error) (int, string) {
	for _, es := range statusTable {
		if errors.Is(err, es.target) {
			return es.code, es.target.Error()
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	code, message := StatusFor(err)

	if code == http.StatusInternalServerError {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
	} else {
		log.Warn(operation+" rejected", zap.Error(err), zap.Int("status", code))
	}

	// validation wraps carry a useful detail for the client
	if code == http.StatusBadRequest && errors.Is(err, usecase.ErrValidation) {
		utils.ResponseBadRequest(w, message, err.Error())
		return
	}

	utils.ResponseError(w, code, message)
}
