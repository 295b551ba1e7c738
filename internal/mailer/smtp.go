// Package mailer delivers one-time login codes by email.
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/premium-server/internal/config"
	"github.com/dtroode/premium-server/internal/model"
	"github.com/wneessen/go-mail"
)

var _ model.Mailer = (*SMTPMailer)(nil)

const codeSubject = "Your Login OTP"

// Sender dispatches prepared messages. *mail.Client satisfies it.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPMailer sends codes through an SMTP relay.
type SMTPMailer struct {
	sender   Sender
	from     string
	fromName string
}

// NewSMTPMailer creates a mailer backed by a go-mail client for cfg.
func NewSMTPMailer(cfg config.SMTP) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return NewMailer(client, cfg.From, cfg.FromName), nil
}

// NewMailer creates a mailer that dispatches through sender.
func NewMailer(sender Sender, from, fromName string) *SMTPMailer {
	return &SMTPMailer{
		sender:   sender,
		from:     from,
		fromName: fromName,
	}
}

// SendCode emails code to the address. A failed dispatch wraps model.ErrDelivery.
func (m *SMTPMailer) SendCode(ctx context.Context, email, code string, ttl time.Duration) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.from); err != nil {
		return fmt.Errorf("%w: invalid sender address: %v", model.ErrDelivery, err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("%w: invalid recipient address: %v", model.ErrDelivery, err)
	}
	msg.Subject(codeSubject)
	msg.SetBodyString(mail.TypeTextPlain, codeBody(code, ttl))

	if err := m.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", model.ErrDelivery, err)
	}

	return nil
}

func codeBody(code string, ttl time.Duration) string {
	return fmt.Sprintf("Your login code is: %s. It expires in %d minutes.", code, int(ttl.Minutes()))
}
