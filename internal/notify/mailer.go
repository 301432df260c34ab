// Package notify delivers issued passcodes to students out-of-band.
package notify

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// SMTPConfig holds SMTP delivery settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether the configuration is complete enough to send mail.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.Port > 0 && c.From != ""
}

// Mailer sends passcode emails over SMTP.
type Mailer struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

// NewMailer constructs an SMTP Mailer.
func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// SendPasscode emails the one-time passcode to an approved student.
func (m *Mailer) SendPasscode(ctx context.Context, email, name, passcode string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Your registration has been approved")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Dear %s,\n\nYour registration has been approved. Sign in with your registration number and this passcode:\n\n    %s\n\nPlease change it after your first login.\n",
		name, passcode,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("notify: send passcode email: %w", err)
	}
	return nil
}

// NopNotifier discards passcode notifications; used when SMTP is not configured.
type NopNotifier struct{}

// SendPasscode implements the registration.Notifier interface as a no-op.
func (NopNotifier) SendPasscode(ctx context.Context, email, name, passcode string) error {
	return nil
}
