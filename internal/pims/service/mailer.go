package service

import "context"

// Mailer delivers transactional email. The production implementation sits in
// internal/pims/mail; tests substitute a recorder.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, fullName, resetURL string) error
}
