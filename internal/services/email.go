package services

import (
	"fmt"
	"strconv"

	"github.com/uptask-dev/uptask-api/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer delivers the account emails. Dispatch is fire-and-forget: callers
// run it in a goroutine and only log failures.
type Mailer interface {
	SendConfirmationEmail(email, name, code string) error
	SendPasswordResetEmail(email, name, code string) error
}

// SMTPMailer is a gomail-backed Mailer.
type SMTPMailer struct {
	dialer      *gomail.Dialer
	from        string
	frontendURL string
}

// NewSMTPMailer creates a Mailer from the SMTP settings in cfg.
func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port %q: %w", cfg.SMTPPort, err)
	}

	return &SMTPMailer{
		dialer:      gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUser, cfg.SMTPPass),
		from:        cfg.EmailFrom,
		frontendURL: cfg.FrontendURL,
	}, nil
}

// SendConfirmationEmail mails the account confirmation code.
func (m *SMTPMailer) SendConfirmationEmail(email, name, code string) error {
	body := fmt.Sprintf(`
		<p>Hi %s, you have created your UpTask account. Almost done, you just need to confirm it.</p>
		<p>Visit the following link:</p>
		<a href="%s/auth/confirm-account">Confirm account</a>
		<p>And enter the code: <b>%s</b></p>
		<p>This code expires in 10 minutes</p>
	`, name, m.frontendURL, code)

	return m.send(email, "UpTask - Confirm your account", body)
}

// SendPasswordResetEmail mails the password reset code.
func (m *SMTPMailer) SendPasswordResetEmail(email, name, code string) error {
	body := fmt.Sprintf(`
		<p>Hi %s, you have requested a password reset.</p>
		<a href="%s/auth/new-password">Reset password</a>
		<p>And enter the code: <b>%s</b></p>
		<p>This code expires in 10 minutes</p>
	`, name, m.frontendURL, code)

	return m.send(email, "UpTask - Reset your password", body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return m.dialer.DialAndSend(msg)
}
