package model

import (
	"context"
	"time"
)

// GoogleIdentity holds the verified claims of a Google ID token.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// GoogleVerifier verifies Google ID tokens against the configured audience.
type GoogleVerifier interface {
	Verify(ctx context.Context, credential string) (GoogleIdentity, error)
}

// Mailer delivers one-time codes out of band.
type Mailer interface {
	SendCode(ctx context.Context, email, code string, ttl time.Duration) error
}

// Scorer prices clinical inputs.
type Scorer interface {
	Score(ctx context.Context, inputs ClinicalInputs) (float64, error)
}
