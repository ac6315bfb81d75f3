package api

import (
	"time"

	"github.com/google/uuid"
)

type SignupRequest struct {
	FirstName   string  `json:"first_name" validate:"required"`
	LastName    string  `json:"last_name" validate:"required"`
	ContactNo   *string `json:"contact_no"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required"`
	BackupEmail *string `json:"backup_email" validate:"omitempty,email"`
	Address     string  `json:"address" validate:"required"`
}

type SignupResponse struct {
	AccountID    uuid.UUID `json:"auth_id"`
	EmployeeID   uuid.UUID `json:"employee_id"`
	Email        string    `json:"email"`
	EmployeeCode string    `json:"employee_code"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserInfo struct {
	AccountID  uuid.UUID `json:"auth_id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	IsAdmin    bool      `json:"is_admin"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

type ForgotPasswordRequest struct {
	Email     string `json:"email" validate:"required"`
	UseBackup bool   `json:"useBackup"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type UnlockAccountRequest struct {
	Email string `json:"email" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

type ProfileResponse struct {
	AccountID      uuid.UUID `json:"auth_id"`
	EmployeeID     uuid.UUID `json:"employee_id"`
	Email          string    `json:"email"`
	BackupEmail    *string   `json:"backup_email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	ContactNo      *string   `json:"contact_no"`
	Address        string    `json:"address"`
	EmployeeCode   string    `json:"employee_code"`
	IsAdmin        bool      `json:"is_admin"`
	Department     string    `json:"department"`
	Position       string    `json:"position"`
	Role           string    `json:"role"`
	EmploymentType string    `json:"employment_type"`
	EmployeeLevel  string    `json:"employee_level"`
	LeaveBalance   float64   `json:"leave_balance"`
	SupervisorName string    `json:"supervisor_name"`
	DateHired      time.Time `json:"date_hired"`
	Initials       string    `json:"initials"`
	IsLocked       bool      `json:"is_locked"`
	CreatedAt      time.Time `json:"created_at"`
}

type PasswordPolicyResponse struct {
	MinLength          int  `json:"min_length"`
	MaxLength          int  `json:"max_length"`
	RequireUppercase   bool `json:"require_uppercase"`
	RequireLowercase   bool `json:"require_lowercase"`
	RequireDigit       bool `json:"require_digit"`
	RequireSpecialChar bool `json:"require_special_char"`
	DisallowCommonPwds bool `json:"disallow_common_pwds"`
}
