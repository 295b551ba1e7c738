// Package google verifies Google Sign-In ID tokens.
package google

import (
	"context"
	"fmt"

	"github.com/dtroode/premium-server/internal/model"
	"google.golang.org/api/idtoken"
)

var _ model.GoogleVerifier = (*Verifier)(nil)

// Validator checks an ID token signature, issuer, audience and expiry.
// *idtoken.Validator satisfies it.
type Validator interface {
	Validate(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

// Verifier turns a Google credential into a verified identity.
type Verifier struct {
	validator Validator
	clientID  string
}

// NewVerifier creates a verifier backed by Google's published keys.
func NewVerifier(ctx context.Context, clientID string) (*Verifier, error) {
	v, err := idtoken.NewValidator(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create id token validator: %w", err)
	}
	return NewVerifierWithValidator(v, clientID), nil
}

func NewVerifierWithValidator(validator Validator, clientID string) *Verifier {
	return &Verifier{
		validator: validator,
		clientID:  clientID,
	}
}

// Verify validates credential for the configured client id. It requires a
// subject and a verified email; any failure wraps model.ErrInvalidAssertion.
func (v *Verifier) Verify(ctx context.Context, credential string) (model.GoogleIdentity, error) {
	if credential == "" {
		return model.GoogleIdentity{}, fmt.Errorf("%w: empty credential", model.ErrInvalidAssertion)
	}

	payload, err := v.validator.Validate(ctx, credential, v.clientID)
	if err != nil {
		return model.GoogleIdentity{}, fmt.Errorf("%w: %v", model.ErrInvalidAssertion, err)
	}

	identity := model.GoogleIdentity{
		Subject:       payload.Subject,
		Email:         stringClaim(payload.Claims, "email"),
		EmailVerified: boolClaim(payload.Claims, "email_verified"),
		Name:          stringClaim(payload.Claims, "name"),
		Picture:       stringClaim(payload.Claims, "picture"),
	}

	if identity.Subject == "" {
		return model.GoogleIdentity{}, fmt.Errorf("%w: missing subject", model.ErrInvalidAssertion)
	}
	if identity.Email == "" || !identity.EmailVerified {
		return model.GoogleIdentity{}, fmt.Errorf("%w: email is missing or unverified", model.ErrInvalidAssertion)
	}

	return identity, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	s, _ := claims[key].(string)
	return s
}

// boolClaim accepts both JSON booleans and the string form some tokens carry.
func boolClaim(claims map[string]interface{}, key string) bool {
	switch v := claims[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}
