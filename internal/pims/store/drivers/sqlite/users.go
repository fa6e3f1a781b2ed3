package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/sindh-police/spims/internal/pims/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, full_name, badge_number, email, username, password_hash, role,
	password_reset_token_hash, password_reset_expires_at, password_changed_at,
	last_login_at, created_at`

func (r *usersRepo) scanUser(row *sql.Row) (domain.User, error) {
	var (
		u         domain.User
		resetHash sql.NullString
		resetExp  sql.NullTime
		pwChanged sql.NullTime
		lastLogin sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.FullName, &u.BadgeNumber, &u.Email, &u.Username,
		&u.PasswordHash, &u.Role,
		&resetHash, &resetExp, &pwChanged, &lastLogin, &u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.PasswordResetTokenHash = stringPtr(resetHash)
	u.PasswordResetExpiresAt = timePtr(resetExp)
	u.PasswordChangedAt = timePtr(pwChanged)
	u.LastLoginAt = timePtr(lastLogin)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *usersRepo) FindByAnyIdentity(
	ctx context.Context,
	email, username, badgeNumber string,
) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE email = ? OR username = ? OR badge_number = ?
		 LIMIT 1`,
		email, username, badgeNumber))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, full_name, badge_number, email, username, password_hash, role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.FullName, u.BadgeNumber, u.Email, u.Username,
		u.PasswordHash, u.Role, u.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) CountByRole(ctx context.Context, role string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = ?`, role).Scan(&count)
	return count, err
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = ? WHERE id = ?`, at, userID)
	return err
}

func (r *usersRepo) SetResetToken(
	ctx context.Context,
	userID, tokenHash string,
	expiresAt time.Time,
) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET password_reset_token_hash = ?, password_reset_expires_at = ?
		 WHERE id = ?`,
		tokenHash, expiresAt, userID)
	return requireRowAffected(res, err)
}

func (r *usersRepo) ClearResetToken(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET password_reset_token_hash = NULL, password_reset_expires_at = NULL
		 WHERE id = ?`,
		userID)
	return err
}

func (r *usersRepo) GetUserByResetTokenHash(
	ctx context.Context,
	tokenHash string,
	now time.Time,
) (domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE password_reset_token_hash = ? AND password_reset_expires_at > ?`,
		tokenHash, now))
}

func (r *usersRepo) UpdatePasswordAndClearReset(
	ctx context.Context,
	userID, tokenHash, newHash string,
	changedAt time.Time,
) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET password_hash = ?,
		     password_changed_at = ?,
		     password_reset_token_hash = NULL,
		     password_reset_expires_at = NULL
		 WHERE id = ? AND password_reset_token_hash = ?`,
		newHash, changedAt, userID, tokenHash)
	return requireRowAffected(res, err)
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var (
			u         domain.User
			resetHash sql.NullString
			resetExp  sql.NullTime
			pwChanged sql.NullTime
			lastLogin sql.NullTime
		)
		if err := rows.Scan(
			&u.ID, &u.FullName, &u.BadgeNumber, &u.Email, &u.Username,
			&u.PasswordHash, &u.Role,
			&resetHash, &resetExp, &pwChanged, &lastLogin, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		u.PasswordResetTokenHash = stringPtr(resetHash)
		u.PasswordResetExpiresAt = timePtr(resetExp)
		u.PasswordChangedAt = timePtr(pwChanged)
		u.LastLoginAt = timePtr(lastLogin)
		users = append(users, u)
	}
	return users, rows.Err()
}
