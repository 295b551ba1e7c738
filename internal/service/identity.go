package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/premium-server/internal/logger"
	"github.com/dtroode/premium-server/internal/metrics"
	"github.com/dtroode/premium-server/internal/model"
	"github.com/google/uuid"
)

const (
	loginMethodGoogle = "google"
	loginMethodOTP    = "otp"
)

// Identity resolves a human identity from a Google assertion or an email code
// and issues a session for it.
type Identity struct {
	accounts model.AccountStore
	google   model.GoogleVerifier
	otp      *OTP
	tokens   *TokenService
	logger   *logger.Logger
	now      func() time.Time
}

func NewIdentity(
	accounts model.AccountStore,
	google model.GoogleVerifier,
	otp *OTP,
	tokens *TokenService,
	logger *logger.Logger,
) *Identity {
	return &Identity{
		accounts: accounts,
		google:   google,
		otp:      otp,
		tokens:   tokens,
		logger:   logger,
		now:      time.Now,
	}
}

// LoginWithGoogle verifies credential and returns a session for the account
// with the asserted email, creating or linking it as needed.
func (i *Identity) LoginWithGoogle(ctx context.Context, credential string) (session model.Session, err error) {
	defer func() { metrics.RecordLogin(loginMethodGoogle, err) }()

	identity, err := i.google.Verify(ctx, credential)
	if err != nil {
		i.logger.Info("Identity service: google assertion rejected", "error", err.Error())
		if !errors.Is(err, model.ErrInvalidAssertion) {
			err = fmt.Errorf("%w: %v", model.ErrInvalidAssertion, err)
		}
		return model.Session{}, err
	}

	email := model.NormalizeEmail(identity.Email)
	name := identity.Name
	if name == "" {
		name = model.NameFromEmail(email)
	}
	subject := identity.Subject
	candidate := model.Account{
		ID:            uuid.New(),
		Email:         email,
		Name:          name,
		GoogleSubject: &subject,
		CreatedAt:     i.now(),
	}
	if identity.Picture != "" {
		picture := identity.Picture
		candidate.Picture = &picture
	}

	account, err := i.accounts.ResolveGoogle(ctx, candidate)
	if err != nil {
		i.logger.Error("Identity service: failed to resolve google account",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to resolve google account: %w", err)
	}

	if account.HasGoogleSubject() && *account.GoogleSubject != subject {
		i.logger.Warn("Identity service: account is linked to a different google subject",
			"account_id", account.ID,
			"email", email)
	}

	return i.startSession(account)
}

// LoginWithCode consumes a one-time code and returns a session for its account.
func (i *Identity) LoginWithCode(ctx context.Context, email, code string) (session model.Session, err error) {
	defer func() { metrics.RecordLogin(loginMethodOTP, err) }()

	account, err := i.otp.Verify(ctx, email, code)
	if err != nil {
		return model.Session{}, err
	}

	return i.startSession(account)
}

// SendCode issues a one-time code for email.
func (i *Identity) SendCode(ctx context.Context, email string) (err error) {
	defer func() { metrics.RecordCodeSent(err) }()

	return i.otp.Issue(ctx, email)
}

func (i *Identity) startSession(account model.Account) (model.Session, error) {
	token, err := i.tokens.Issue(account)
	if err != nil {
		return model.Session{}, err
	}

	i.logger.Info("Identity service: session issued", "account_id", account.ID)

	return model.Session{Token: token, Account: account}, nil
}
