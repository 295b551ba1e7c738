package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionTTL is the lifetime of a session token.
const SessionTTL = 24 * time.Hour

// TokenManager generates and validates session tokens.
type TokenManager interface {
	GenerateAccessToken(account Account) (string, error)
	ParseAccessToken(token string) (SessionClaims, error)
}

// SessionClaims are the identity claims carried by a session token.
type SessionClaims struct {
	AccountID uuid.UUID
	Email     string
	Name      string
	ExpiresAt time.Time
}

// Session is the result of a successful identity resolution.
type Session struct {
	Token   string
	Account Account
}
