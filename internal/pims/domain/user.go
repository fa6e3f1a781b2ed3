package domain

import "time"

// User is the identity + credential + authorization unit. PasswordHash and
// the reset-token fields never leave the service layer; handlers serialize
// the sanitized view only.
type User struct {
	ID           string
	FullName     string
	BadgeNumber  string
	Email        string
	Username     string
	PasswordHash string // argon2id encoded
	Role         string // canonical uppercase, member of the fixed role set

	// Reset token state. A non-nil hash is always paired with a non-nil
	// expiry until consumed or invalidated.
	PasswordResetTokenHash *string
	PasswordResetExpiresAt *time.Time

	PasswordChangedAt *time.Time
	LastLoginAt       *time.Time
	CreatedAt         time.Time
}
