package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clockit/clockit-idm/pkg/dbx"
)

const accountColumns = `auth_id, employee_id, username, backup_email, password,
	failed_login_attempts, lock_until, reset_token_hash, reset_expires, created_at`

// PostgresRepository implements Repository on the account_auth table
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository creates a repository bound to db, a pool or a transaction.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Email, &a.BackupEmail, &a.PasswordHash,
		&a.FailedLoginCount, &a.LockedUntil, &a.ResetTokenDigest, &a.ResetTokenExpiry, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, fmt.Errorf("scan account: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (Account, error) {
	return scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM account_auth WHERE auth_id = $1`, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (Account, error) {
	return scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM account_auth WHERE username = $1`, email))
}

func (r *PostgresRepository) GetByEmailForUpdate(ctx context.Context, email string) (Account, error) {
	return scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM account_auth WHERE username = $1 FOR UPDATE`, email))
}

func (r *PostgresRepository) GetByAnyEmailForUpdate(ctx context.Context, email string) (Account, error) {
	// Identity matches sort first when another account lists the same
	// address as its backup.
	return scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM account_auth
		 WHERE username = $1 OR backup_email = $1
		 ORDER BY (username = $1) DESC, created_at
		 LIMIT 1
		 FOR UPDATE`, email))
}

func (r *PostgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM account_auth WHERE username = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check account email: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a Account) (Account, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO account_auth (auth_id, employee_id, username, backup_email, password, failed_login_attempts)
		 VALUES ($1, $2, $3, $4, $5, 0)
		 RETURNING created_at`,
		a.ID, a.EmployeeID, a.Email, a.BackupEmail, a.PasswordHash,
	).Scan(&a.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return Account{}, ErrDuplicateEmail
		}
		return Account{}, fmt.Errorf("insert account: %w", err)
	}
	a.FailedLoginCount = 0
	a.LockedUntil = nil
	a.ResetTokenDigest = nil
	a.ResetTokenExpiry = nil
	return a, nil
}

func (r *PostgresRepository) exec(ctx context.Context, op, sql string, args ...any) error {
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdateLoginState(ctx context.Context, id uuid.UUID, failedCount int, lockedUntil *time.Time) error {
	return r.exec(ctx, "update login state",
		`UPDATE account_auth SET failed_login_attempts = $2, lock_until = $3 WHERE auth_id = $1`,
		id, failedCount, lockedUntil)
}

func (r *PostgresRepository) SetResetToken(ctx context.Context, id uuid.UUID, digest []byte, expiry time.Time) error {
	return r.exec(ctx, "set reset token",
		`UPDATE account_auth SET reset_token_hash = $2, reset_expires = $3 WHERE auth_id = $1`,
		id, digest, expiry)
}

func (r *PostgresRepository) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.exec(ctx, "reset password",
		`UPDATE account_auth SET password = $2, reset_token_hash = NULL, reset_expires = NULL WHERE auth_id = $1`,
		id, passwordHash)
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.exec(ctx, "update password",
		`UPDATE account_auth SET password = $2 WHERE auth_id = $1`,
		id, passwordHash)
}

func (r *PostgresRepository) Unlock(ctx context.Context, email string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE account_auth SET failed_login_attempts = 0, lock_until = NULL WHERE username = $1`, email)
	if err != nil {
		return false, fmt.Errorf("unlock account: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
