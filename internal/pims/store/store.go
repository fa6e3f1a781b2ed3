package store

import (
	"context"
	"errors"
	"time"

	"github.com/sindh-police/spims/internal/pims/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Personnel() Personnel
	CrimeReports() CrimeReports
	Alerts() Alerts
	Activities() Activities

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing on nil and
	// rolling back on error. Registration's quota check-then-insert is the
	// one operation that depends on this atomicity.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repos, plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID is the per-request existence check behind the access gate.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail is used during forgot-password.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// FindByAnyIdentity returns a user matching any of the three unique
	// identity columns, for duplicate detection at registration.
	FindByAnyIdentity(ctx context.Context, email, username, badgeNumber string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// CountByRole returns the number of accounts holding a role, for quota
	// enforcement. Must be called inside the same transaction as CreateUser.
	CountByRole(ctx context.Context, role string) (int, error)

	// UpdateLastLogin stamps last_login_at.
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error

	// SetResetToken stores the reset token fingerprint and its expiry.
	SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error

	// ClearResetToken removes any pending reset token, e.g. after an email
	// delivery failure.
	ClearResetToken(ctx context.Context, userID string) error

	// GetUserByResetTokenHash returns the user holding an unconsumed,
	// unexpired reset token with the given fingerprint.
	GetUserByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (domain.User, error)

	// UpdatePasswordAndClearReset sets the new password hash, stamps
	// password_changed_at and clears the reset token fields in one statement.
	// The update matches on both id and the token fingerprint, so of two
	// racing resets holding the same token only one can consume it; the
	// loser gets ErrNotFound.
	UpdatePasswordAndClearReset(ctx context.Context, userID, tokenHash, newHash string, changedAt time.Time) error

	// ListUsers returns all accounts ordered by creation date (newest first).
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type Personnel interface {
	ListPersonnel(ctx context.Context) ([]domain.Personnel, error)
	GetPersonnelByID(ctx context.Context, id string) (domain.Personnel, error)
	GetPersonnelByBadge(ctx context.Context, badgeNumber string) (domain.Personnel, error)
	CreatePersonnel(ctx context.Context, p domain.Personnel) error
	UpdatePersonnel(ctx context.Context, p domain.Personnel) error
	DeletePersonnel(ctx context.Context, id string) error
}

// CrimeFilter narrows crime report listings. Zero values mean "any".
type CrimeFilter struct {
	Status    string
	District  string
	CrimeType string
	Severity  string
}

type CrimeReports interface {
	ListCrimeReports(ctx context.Context, f CrimeFilter) ([]domain.CrimeReport, error)
	GetCrimeReportByID(ctx context.Context, id string) (domain.CrimeReport, error)
	CreateCrimeReport(ctx context.Context, c domain.CrimeReport) error
	UpdateCrimeReport(ctx context.Context, c domain.CrimeReport) error
}

type Alerts interface {
	// ListAlerts returns a page of alerts with the given status, newest first.
	ListAlerts(ctx context.Context, status string, limit, offset int) ([]domain.Alert, error)
	CountAlerts(ctx context.Context, status string) (int, error)
	GetAlertByID(ctx context.Context, id string) (domain.Alert, error)
	CreateAlert(ctx context.Context, a domain.Alert) error
	UpdateAlertStatus(ctx context.Context, id, status string) error
	DeleteAlert(ctx context.Context, id string) error
}

type Activities interface {
	CreateActivity(ctx context.Context, a domain.Activity) error
	ListRecentActivities(ctx context.Context, limit int) ([]domain.Activity, error)
}
