package model

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OTPTTL is the lifetime of a one-time login code.
const OTPTTL = 10 * time.Minute

// AccountStore defines persistence operations for accounts.
//
// Implementations must apply SetPendingCode, ConsumeCode and ResolveGoogle
// atomically per account record.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	// SetPendingCode stores code on the account with the shell's email,
	// inserting shell first when no such account exists. Any previous code is replaced.
	SetPendingCode(ctx context.Context, shell Account, code string, expiresAt time.Time) (Account, error)
	// ConsumeCode clears the pending code when it equals code and has not
	// expired at now. It returns ErrInvalidOrExpired otherwise.
	ConsumeCode(ctx context.Context, email, code string, now time.Time) (Account, error)
	// ResolveGoogle inserts candidate or links its Google subject and picture
	// to the existing account with the same email.
	ResolveGoogle(ctx context.Context, candidate Account) (Account, error)
}

// Account represents a resolved human identity.
type Account struct {
	ID            uuid.UUID
	Email         string
	Name          string
	GoogleSubject *string
	Picture       *string
	PendingCode   *string
	CodeExpiresAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NameFromEmail returns the local part of email, used as a placeholder display name.
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// HasGoogleSubject reports whether a Google subject is already attached.
func (a Account) HasGoogleSubject() bool {
	return a.GoogleSubject != nil && *a.GoogleSubject != ""
}

// PictureURL returns the profile image reference or an empty string.
func (a Account) PictureURL() string {
	if a.Picture == nil {
		return ""
	}
	return *a.Picture
}

// LinkGoogle attaches subject and, if the account has none, picture.
// An already attached subject is never replaced. Reports whether anything changed.
func (a *Account) LinkGoogle(subject, picture string) bool {
	if a.HasGoogleSubject() || subject == "" {
		return false
	}
	a.GoogleSubject = &subject
	if a.PictureURL() == "" && picture != "" {
		a.Picture = &picture
	}
	return true
}

// CodeMatches reports whether code equals the pending code and is still valid at now.
func (a Account) CodeMatches(code string, now time.Time) bool {
	if a.PendingCode == nil || a.CodeExpiresAt == nil {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(*a.PendingCode), []byte(code)) != 1 {
		return false
	}
	return now.Before(*a.CodeExpiresAt)
}

// ClearCode drops the pending code and its expiry.
func (a *Account) ClearCode() {
	a.PendingCode = nil
	a.CodeExpiresAt = nil
}
