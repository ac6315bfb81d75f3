package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateEmail  = errors.New("account email already exists")
)

// Repository persists accounts. Methods ending in ForUpdate lock the row
// until the surrounding transaction ends.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByEmailForUpdate(ctx context.Context, email string) (Account, error)
	// GetByAnyEmailForUpdate matches the identity email or the backup email.
	GetByAnyEmailForUpdate(ctx context.Context, email string) (Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, a Account) (Account, error)
	UpdateLoginState(ctx context.Context, id uuid.UUID, failedCount int, lockedUntil *time.Time) error
	SetResetToken(ctx context.Context, id uuid.UUID, digest []byte, expiry time.Time) error
	// ResetPassword replaces the hash and clears the reset token fields.
	ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	// Unlock clears the failure counter and lock. It reports whether an
	// account matched.
	Unlock(ctx context.Context, email string) (bool, error)
}
