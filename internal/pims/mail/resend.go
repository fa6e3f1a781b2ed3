// Package mail delivers transactional email through Resend.
package mail

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/resend/resend-go/v2"
)

var ErrNotConfigured = errors.New("mail: sender not configured")

// ResendMailer sends password-reset mail via the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

// NewResendMailer builds a mailer. An empty API key yields a mailer whose
// sends fail with ErrNotConfigured, which in turn makes forgot-password
// clear the stored token.
func NewResendMailer(apiKey, from string) *ResendMailer {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendMailer{}
	}
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (m *ResendMailer) SendPasswordReset(ctx context.Context, to, fullName, resetURL string) error {
	if m.client == nil {
		return ErrNotConfigured
	}

	name := strings.TrimSpace(fullName)
	if name == "" {
		name = "Officer"
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: "Your password reset link (valid for 10 minutes)",
		Html: fmt.Sprintf(
			"<p>Dear %s,</p><p>Forgot your password? Open the link below to set a new one:</p>"+
				"<p><a href=\"%s\">Reset Password</a></p>"+
				"<p>If you did not request this, please ignore this email.</p>",
			html.EscapeString(name), resetURL),
		Text: fmt.Sprintf("Dear %s,\n\nReset your password here: %s\n\nIf you did not request this, ignore this email.",
			name, resetURL),
	}

	if _, err := m.client.Emails.Send(params); err != nil {
		return fmt.Errorf("mail: send reset email: %w", err)
	}
	return nil
}
