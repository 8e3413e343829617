// Package mail sends account confirmation and password-reset messages.
// Bodies are a single line with the action link; the frontend renders the
// actual pages.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/config"

	gomail "github.com/wneessen/go-mail"
)

// Mailer delivers account mail. Implementations must not block the caller
// longer than an SMTP round trip; callers treat delivery as best-effort.
type Mailer interface {
	SendConfirmation(ctx context.Context, to, name, token string) error
	SendPasswordReset(ctx context.Context, to, name, token string) error
}

// New returns an SMTP mailer, or a log-only mailer when SMTP_HOST is unset
// so dev environments boot without a relay.
func New(cfg config.SMTPConfig, frontendURL string, log *slog.Logger) (Mailer, error) {
	if cfg.Host == "" {
		return &LogMailer{log: log, frontendURL: frontendURL}, nil
	}
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.User),
		gomail.WithPassword(cfg.Password),
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.From, frontendURL: frontendURL}, nil
}

// SMTPMailer sends through a configured SMTP relay.
type SMTPMailer struct {
	client      *gomail.Client
	from        string
	frontendURL string
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)
	return m.client.DialAndSendWithContext(ctx, msg)
}

func (m *SMTPMailer) SendConfirmation(ctx context.Context, to, name, token string) error {
	link := confirmLink(m.frontendURL, token)
	return m.send(ctx, to, "Confirm your account",
		fmt.Sprintf("Hi %s, confirm your account: %s", name, link))
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, name, token string) error {
	link := resetLink(m.frontendURL, token)
	return m.send(ctx, to, "Reset your password",
		fmt.Sprintf("Hi %s, reset your password: %s", name, link))
}

// LogMailer writes the links to the log instead of sending anything.
type LogMailer struct {
	log         *slog.Logger
	frontendURL string
}

func (m *LogMailer) SendConfirmation(ctx context.Context, to, name, token string) error {
	m.log.InfoContext(ctx, "confirmation mail suppressed (no SMTP configured)",
		"to", to, "link", confirmLink(m.frontendURL, token))
	return nil
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to, name, token string) error {
	m.log.InfoContext(ctx, "password-reset mail suppressed (no SMTP configured)",
		"to", to, "link", resetLink(m.frontendURL, token))
	return nil
}

func confirmLink(base, token string) string {
	return strings.TrimSuffix(base, "/") + "/confirm/" + token
}

func resetLink(base, token string) string {
	return strings.TrimSuffix(base, "/") + "/forgot-password/" + token
}
