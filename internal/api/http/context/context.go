package context

import (
	"context"

	"github.com/dtroode/premium-server/internal/model"
)

type claimsKey struct{}

// Manager represents an HTTP request context manager for session claims.
// It provides methods to store and retrieve the authenticated identity.
type Manager struct{}

// NewManager creates a new context manager instance.
//
// Returns a pointer to the newly created Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetClaimsToContext stores the session claims in the request context.
//
// Parameters:
//   - ctx: The request context
//   - claims: The validated session claims
//
// Returns a new context carrying the claims.
func (m *Manager) SetClaimsToContext(ctx context.Context, claims model.SessionClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaimsFromContext retrieves the session claims from the request context.
//
// Parameters:
//   - ctx: The request context
//
// Returns the claims and a boolean indicating if an authenticated identity was found.
func (m *Manager) GetClaimsFromContext(ctx context.Context) (model.SessionClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(model.SessionClaims)
	if !ok {
		return model.SessionClaims{}, false
	}
	return claims, true
}
