package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrDuplicateEmail  = errors.New("employee email already exists")
)

// Repository persists employee profiles.
type Repository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, p Profile) (Profile, error)
	// GetByEmployeeID includes the classification when one is assigned.
	GetByEmployeeID(ctx context.Context, id uuid.UUID) (Profile, error)
	// SetAdminByEmail reports whether an employee matched.
	SetAdminByEmail(ctx context.Context, email string, isAdmin bool) (bool, error)
}
