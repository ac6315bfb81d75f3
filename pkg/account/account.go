// Package account models the credential record behind a login.
package account

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clockit/clockit-idm/pkg/lockout"
)

// Account is the credential record for one identity email.
type Account struct {
	ID               uuid.UUID
	EmployeeID       uuid.UUID
	Email            string
	BackupEmail      *string
	PasswordHash     string `json:"-"`
	FailedLoginCount int
	LockedUntil      *time.Time
	ResetTokenDigest []byte `json:"-"`
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
}

// IsLocked reports whether a lockout is still in effect at now.
func (a *Account) IsLocked(now time.Time) bool {
	return lockout.IsLocked(a.LockedUntil, now)
}

// HasPendingReset reports whether a reset token digest is stored.
func (a *Account) HasPendingReset() bool {
	return len(a.ResetTokenDigest) > 0 && a.ResetTokenExpiry != nil
}

// ResetTarget returns where a reset link goes: the backup email when asked
// for and present, else the identity email.
func (a *Account) ResetTarget(useBackup bool) string {
	if useBackup && a.BackupEmail != nil && *a.BackupEmail != "" {
		return *a.BackupEmail
	}
	return a.Email
}

// NormalizeEmail trims and lower-cases an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
