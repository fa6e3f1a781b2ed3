package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sindh-police/spims/internal/pims/domain"
	"github.com/sindh-police/spims/internal/pims/store"
	"github.com/sindh-police/spims/pkg/cryptox"
	"github.com/sindh-police/spims/pkg/idx"
	"github.com/sindh-police/spims/pkg/jwtx"
)

// ResetTokenTTL is the absolute lifetime of a password reset token.
const ResetTokenTTL = 10 * time.Minute

// MinPasswordLength applies to registration and reset alike.
const MinPasswordLength = 8

// AuthService owns account lifecycle: registration (with role quotas),
// login, and the forgot/reset password flow.
type AuthService struct {
	store       store.Store
	signer      jwtx.Signer
	policies    *domain.RolePolicies
	mailer      Mailer
	frontendURL string

	// Now is the service clock, overridable in tests to drive reset-token
	// expiry without sleeping.
	Now func() time.Time
}

func NewAuthService(
	st store.Store,
	signer jwtx.Signer,
	policies *domain.RolePolicies,
	mailer Mailer,
	frontendURL string,
) *AuthService {
	return &AuthService{
		store:       st,
		signer:      signer,
		policies:    policies,
		mailer:      mailer,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		Now:         time.Now,
	}
}

// Dashboard returns the frontend dashboard route for a role, or "/" for a
// role outside the fixed set.
func (s *AuthService) Dashboard(role string) string {
	policy, ok := s.policies.Lookup(role)
	if !ok {
		return "/"
	}
	return policy.Dashboard
}

type RegisterParams struct {
	FullName    string
	BadgeNumber string
	Email       string
	Username    string
	Password    string
	Role        string
}

// Register creates an account and returns it with a fresh bearer token.
//
// The duplicate check, the role quota check and the insert run inside one
// immediate transaction so two concurrent registrations for a capped role
// cannot both pass the count.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (domain.User, string, error) {
	p.FullName = strings.TrimSpace(p.FullName)
	p.BadgeNumber = strings.TrimSpace(p.BadgeNumber)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Username = strings.TrimSpace(p.Username)

	if p.FullName == "" || p.BadgeNumber == "" || p.Email == "" || p.Username == "" {
		return domain.User{}, "", validationf("all fields are required")
	}
	if len(p.Password) < MinPasswordLength {
		return domain.User{}, "", validationf("password must be at least %d characters", MinPasswordLength)
	}

	role := domain.CanonicalRole(p.Role)
	policy, ok := s.policies.Lookup(role)
	if !ok {
		return domain.User{}, "", validationf("unknown role %q", p.Role)
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		FullName:     p.FullName,
		BadgeNumber:  p.BadgeNumber,
		Email:        p.Email,
		Username:     p.Username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.Now().UTC(),
	}

	err = s.store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Users().FindByAnyIdentity(ctx, user.Email, user.Username, user.BadgeNumber)
		switch {
		case err == nil:
			return &DuplicateError{Field: conflictField(existing, user)}
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		if policy.Limit > 0 {
			count, err := tx.Users().CountByRole(ctx, role)
			if err != nil {
				return err
			}
			if count >= policy.Limit {
				return &QuotaExceededError{Role: role, Limit: policy.Limit}
			}
		}

		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		// Unique-index backstop for a duplicate that raced past the
		// pre-check; by then the colliding column is unknown.
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, "", &DuplicateError{}
		}
		return domain.User{}, "", err
	}

	token, err := s.signer.Sign(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// conflictField names the first identity column the new registration collides
// with, in the order the registration form presents them.
func conflictField(existing, incoming domain.User) string {
	switch {
	case existing.Email == incoming.Email:
		return "email"
	case existing.Username == incoming.Username:
		return "username"
	default:
		return "badgeNumber"
	}
}

// Login verifies credentials and returns the user with a fresh bearer token.
// Unknown username and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, "", validationf("please provide username and password")
	}

	user, err := s.store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}

	now := s.Now().UTC()
	if err := s.store.Users().UpdateLastLogin(ctx, user.ID, now); err != nil {
		slog.WarnContext(ctx, "failed to stamp last login",
			slog.String("user_id", user.ID), slog.Any("error", err))
	} else {
		user.LastLoginAt = &now
	}

	token, err := s.signer.Sign(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// ForgotPassword issues a single-use reset token and emails a reset link.
// An unknown email is not an error; the caller's response is identical either
// way so the endpoint cannot be used to probe for accounts.
//
// If the email cannot be delivered the freshly stored token is cleared so a
// token nobody received never lingers.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return validationf("please provide an email address")
	}

	user, err := s.store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	expiresAt := s.Now().UTC().Add(ResetTokenTTL)
	if err := s.store.Users().SetResetToken(ctx, user.ID, cryptox.FingerprintToken(token), expiresAt); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, token)
	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.FullName, resetURL); err != nil {
		if clearErr := s.store.Users().ClearResetToken(ctx, user.ID); clearErr != nil {
			slog.ErrorContext(ctx, "failed to clear reset token after send failure",
				slog.String("user_id", user.ID), slog.Any("error", clearErr))
		}
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token, sets the new password and returns the
// user with a fresh bearer token. Unknown, expired and already-used tokens
// all fail with ErrInvalidResetToken.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (domain.User, string, error) {
	if len(newPassword) < MinPasswordLength {
		return domain.User{}, "", validationf("password must be at least %d characters", MinPasswordLength)
	}

	now := s.Now().UTC()
	fingerprint := cryptox.FingerprintToken(token)
	user, err := s.store.Users().GetUserByResetTokenHash(ctx, fingerprint, now)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidResetToken
		}
		return domain.User{}, "", err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	// The update matches on the token fingerprint as well as the id, so a
	// concurrent reset that consumed the token between the lookup and here
	// fails instead of silently overwriting.
	if err := s.store.Users().UpdatePasswordAndClearReset(ctx, user.ID, fingerprint, hash, now); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidResetToken
		}
		return domain.User{}, "", err
	}
	user.PasswordHash = hash
	user.PasswordChangedAt = &now
	user.PasswordResetTokenHash = nil
	user.PasswordResetExpiresAt = nil

	bearer, err := s.signer.Sign(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("sign token: %w", err)
	}
	return user, bearer, nil
}
