package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/dtroode/premium-server/internal/api/http/middleware"
	"github.com/dtroode/premium-server/internal/logger"
	"github.com/dtroode/premium-server/internal/model"
)

// IdentityService defines login and code issuance operations.
type IdentityService interface {
	LoginWithGoogle(ctx context.Context, credential string) (model.Session, error)
	LoginWithCode(ctx context.Context, email, code string) (model.Session, error)
	SendCode(ctx context.Context, email string) error
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	identity IdentityService
	logger   *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(identity IdentityService, logger *logger.Logger) *Auth {
	return &Auth{
		identity: identity,
		logger:   logger,
	}
}

type googleRequest struct {
	Credential string `json:"credential"`
}

type sendCodeRequest struct {
	Email string `json:"email"`
}

type verifyCodeRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Picture *string `json:"picture,omitempty"`
}

// SessionResponse is returned by successful logins.
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func userResponse(a model.Account, withPicture bool) UserResponse {
	u := UserResponse{
		ID:    a.ID.String(),
		Name:  a.Name,
		Email: a.Email,
	}
	if withPicture {
		picture := a.PictureURL()
		u.Picture = &picture
	}
	return u
}

// Google logs in with a Google ID token, registering or linking the account.
func (h *Auth) Google(w http.ResponseWriter, r *http.Request) {
	var req googleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, h.logger, err, "Server error")
		return
	}

	session, err := h.identity.LoginWithGoogle(r.Context(), req.Credential)
	if err != nil {
		h.logger.Info("Auth handler: google login failed", "error", err.Error())
		handleError(w, h.logger, err, "Server error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, SessionResponse{
		Token: session.Token,
		User:  userResponse(session.Account, true),
	})
}

// SendOTP issues a one-time code to the posted email address.
func (h *Auth) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendCodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, h.logger, err, "Server error")
		return
	}
	if req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email is required")
		return
	}

	if err := h.identity.SendCode(r.Context(), req.Email); err != nil {
		handleError(w, h.logger, err, "Failed to send OTP")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, middleware.MessageResponse{Message: "OTP sent to email"})
}

// VerifyOTP exchanges a one-time code for a session.
func (h *Auth) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, h.logger, err, "Server error")
		return
	}

	session, err := h.identity.LoginWithCode(r.Context(), req.Email, req.OTP)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "User not found")
			return
		}
		handleError(w, h.logger, err, "Server error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, SessionResponse{
		Token: session.Token,
		User:  userResponse(session.Account, false),
	})
}
