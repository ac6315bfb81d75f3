package auth

import (
	"time"

	"github.com/google/uuid"
)

// Messages returned to callers. The reset acknowledgement is identical
// whether or not the email belongs to an account.
const (
	ResetRequestAck     = "If that email exists, a reset link was sent."
	ResetSuccessMessage = "Password reset successful."
	UnlockMessage       = "Account unlocked successfully."
)

type RegisterParams struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Address     string
	ContactNo   *string
	BackupEmail *string
}

// RegisterResult holds only non-sensitive identifiers.
type RegisterResult struct {
	AccountID    uuid.UUID
	EmployeeID   uuid.UUID
	Email        string
	EmployeeCode string
}

// UserSummary is the part of the profile returned on login.
type UserSummary struct {
	AccountID  uuid.UUID
	EmployeeID uuid.UUID
	Email      string
	FirstName  string
	LastName   string
	IsAdmin    bool
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserSummary
}

// ProfileView joins the account, the employee record and its classification.
type ProfileView struct {
	AccountID      uuid.UUID
	EmployeeID     uuid.UUID
	Email          string
	BackupEmail    *string
	FirstName      string
	LastName       string
	ContactNo      *string
	Address        string
	EmployeeCode   string
	IsAdmin        bool
	Department     string
	Position       string
	Role           string
	EmploymentType string
	EmployeeLevel  string
	LeaveBalance   float64
	SupervisorName string
	DateHired      time.Time
	Initials       string
	IsLocked       bool
	CreatedAt      time.Time
}
