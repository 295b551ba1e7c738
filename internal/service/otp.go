package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/dtroode/premium-server/internal/logger"
	"github.com/dtroode/premium-server/internal/model"
	"github.com/google/uuid"
)

const (
	codeMin = 100000
	codeMax = 999999
)

// OTP issues and verifies one-time email login codes.
type OTP struct {
	accounts  model.AccountStore
	mailer    model.Mailer
	validator *Validator
	logger    *logger.Logger
	now       func() time.Time
	generate  func() (string, error)
}

func NewOTP(accounts model.AccountStore, mailer model.Mailer, validator *Validator, logger *logger.Logger) *OTP {
	return &OTP{
		accounts:  accounts,
		mailer:    mailer,
		validator: validator,
		logger:    logger,
		now:       time.Now,
		generate:  generateCode,
	}
}

// Issue stores a fresh code for email, creating a shell account when the
// address is unknown, and mails it. A previous code stops being valid.
func (o *OTP) Issue(ctx context.Context, email string) error {
	email = model.NormalizeEmail(email)
	if err := o.validator.Email(email); err != nil {
		return err
	}

	o.logger.Debug("OTP service: issuing code", "email", email)

	code, err := o.generate()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	now := o.now()
	shell := model.Account{
		ID:        uuid.New(),
		Email:     email,
		Name:      model.NameFromEmail(email),
		CreatedAt: now,
	}

	account, err := o.accounts.SetPendingCode(ctx, shell, code, now.Add(model.OTPTTL))
	if err != nil {
		o.logger.Error("OTP service: failed to store code",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("failed to store code: %w", err)
	}

	if err := o.mailer.SendCode(ctx, email, code, model.OTPTTL); err != nil {
		o.logger.Error("OTP service: failed to send code",
			"email", email,
			"account_id", account.ID,
			"error", err.Error())
		if !errors.Is(err, model.ErrDelivery) {
			err = fmt.Errorf("%w: %v", model.ErrDelivery, err)
		}
		return fmt.Errorf("failed to send code: %w", err)
	}

	o.logger.Info("OTP service: code sent",
		"email", email,
		"account_id", account.ID)

	return nil
}

// Verify consumes code for email. It fails with model.ErrNotFound for an
// unknown address and model.ErrInvalidOrExpired for a wrong, used or expired code.
func (o *OTP) Verify(ctx context.Context, email, code string) (model.Account, error) {
	email = model.NormalizeEmail(email)
	if email == "" {
		return model.Account{}, model.NewValidationError("email", "is required")
	}
	if code == "" {
		return model.Account{}, model.NewValidationError("otp", "is required")
	}

	if _, err := o.accounts.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			o.logger.Info("OTP service: verification for unknown email", "email", email)
			return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
		}
		o.logger.Error("OTP service: failed to get account",
			"email", email,
			"error", err.Error())
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	account, err := o.accounts.ConsumeCode(ctx, email, code, o.now())
	if err != nil {
		if errors.Is(err, model.ErrInvalidOrExpired) {
			o.logger.Info("OTP service: rejected code", "email", email)
			return model.Account{}, err
		}
		o.logger.Error("OTP service: failed to consume code",
			"email", email,
			"error", err.Error())
		return model.Account{}, fmt.Errorf("failed to consume code: %w", err)
	}

	return account, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}
