package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/premium-server/internal/api/http/middleware"
	"github.com/dtroode/premium-server/internal/logger"
	"github.com/dtroode/premium-server/internal/model"
)

// handleError maps a service error to a status code and message. fallback is
// the message used for internal failures; their detail is only logged.
func handleError(w http.ResponseWriter, log *logger.Logger, err error, fallback string) {
	var verr *model.ValidationError

	switch {
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, model.ErrInvalidAssertion):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Google authentication failed")
	case errors.Is(err, model.ErrInvalidOrExpired):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid or expired OTP")
	case errors.Is(err, model.ErrUnauthenticated):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "No token, authorization denied")
	case errors.Is(err, model.ErrInvalidToken):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Token is not valid")
	case errors.Is(err, model.ErrForbidden):
		middleware.ErrorResponse(w, http.StatusForbidden, "Not allowed to access this prediction")
	case errors.Is(err, model.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Prediction not found")
	default:
		log.Error("Handler: request failed", "error", err.Error())
		middleware.ErrorResponse(w, http.StatusInternalServerError, fallback)
	}
}
