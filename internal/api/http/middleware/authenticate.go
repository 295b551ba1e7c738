package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dtroode/premium-server/internal/logger"
	"github.com/dtroode/premium-server/internal/model"
)

const (
	tokenHeader = "x-auth-token"
	tokenCookie = "token"

	msgNoToken      = "No token, authorization denied"
	msgInvalidToken = "Token is not valid"
)

// TokenService validates session tokens.
type TokenService interface {
	Validate(token string) (model.SessionClaims, error)
}

// Authenticate validates session tokens and injects the claims into the request context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// Handler rejects requests without a valid session token with 401.
func (m *Authenticate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			ErrorResponse(w, http.StatusUnauthorized, msgNoToken)
			return
		}

		claims, err := m.tokenService.Validate(token)
		if err != nil {
			if !errors.Is(err, model.ErrInvalidToken) && !errors.Is(err, model.ErrUnauthenticated) {
				m.logger.Error("Authenticate middleware: unexpected validation error",
					"path", r.URL.Path,
					"error", err.Error())
			}
			ErrorResponse(w, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetClaimsToContext(r.Context(), claims)))
	})
}

// extractToken looks at the x-auth-token header, then a Bearer Authorization
// header, then the token cookie.
func extractToken(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get(tokenHeader)); t != "" {
		return t
	}

	if h := r.Header.Get("Authorization"); h != "" {
		scheme, t, ok := strings.Cut(strings.TrimSpace(h), " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			if t = strings.TrimSpace(t); t != "" {
				return t
			}
		}
	}

	if c, err := r.Cookie(tokenCookie); err == nil && c.Value != "" {
		return c.Value
	}

	return ""
}
