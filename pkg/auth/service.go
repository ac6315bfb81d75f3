// Package auth runs the credential lifecycle: registration, login with
// progressive lockout, emailed password reset and manual unlock.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/clockit/clockit-idm/pkg/account"
	apperrors "github.com/clockit/clockit-idm/pkg/errors"
	"github.com/clockit/clockit-idm/pkg/lockout"
	"github.com/clockit/clockit-idm/pkg/mailer"
	"github.com/clockit/clockit-idm/pkg/notification"
	"github.com/clockit/clockit-idm/pkg/password"
	"github.com/clockit/clockit-idm/pkg/profile"
	"github.com/clockit/clockit-idm/pkg/resettoken"
	"github.com/clockit/clockit-idm/pkg/store"
	"github.com/clockit/clockit-idm/pkg/tokengenerator"
)

// Service orchestrates the stores, hasher, lockout policy and token issuer.
type Service struct {
	store          store.Store
	tokens         tokengenerator.TokenGenerator
	hasher         password.Hasher
	policy         password.PolicyChecker
	lockout        lockout.Policy
	mailer         mailer.Mailer
	notifier       notification.Notifier
	tokenTTL       time.Duration
	resetExpiry    time.Duration
	frontendOrigin string
	random         io.Reader
	now            func() time.Time
	validate       *validator.Validate

	dummyOnce sync.Once
	dummyHash string
}

func NewService(st store.Store, tokens tokengenerator.TokenGenerator, opts ...Option) *Service {
	s := &Service{
		store:       st,
		tokens:      tokens,
		hasher:      password.NewBcryptHasher(password.DefaultCost),
		policy:      password.NewPolicyChecker(password.DefaultPolicy()),
		lockout:     lockout.DefaultPolicy(),
		mailer:      mailer.LogMailer{},
		notifier:    notification.NopNotifier{},
		tokenTTL:    tokengenerator.DefaultTTL,
		resetExpiry: resettoken.DefaultExpiry,
		random:      rand.Reader,
		now:         time.Now,
		validate:    validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates the employee profile and its account in one transaction.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*RegisterResult, error) {
	email := account.NormalizeEmail(params.Email)
	firstName := strings.TrimSpace(params.FirstName)
	lastName := strings.TrimSpace(params.LastName)
	address := strings.TrimSpace(params.Address)

	if email == "" || params.Password == "" || firstName == "" || lastName == "" || address == "" {
		return nil, apperrors.ValidationFailed("", "All required fields must be provided.")
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return nil, apperrors.ValidationFailed("email", "Email address is not valid.")
	}
	backupEmail := optionalEmail(params.BackupEmail)
	if backupEmail != nil {
		if err := s.validate.Var(*backupEmail, "email"); err != nil {
			return nil, apperrors.ValidationFailed("backup_email", "Backup email address is not valid.")
		}
	}
	if err := s.policy.CheckPasswordComplexity(params.Password); err != nil {
		return nil, apperrors.ValidationFailed("password", err.Error())
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, apperrors.InternalWrap(err, "Registration failed.")
	}
	code, err := profile.GenerateEmployeeCode()
	if err != nil {
		return nil, apperrors.InternalWrap(err, "Registration failed.")
	}

	var result RegisterResult
	err = s.store.WithTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		inProfiles, err := repos.Profiles.EmailExists(ctx, email)
		if err != nil {
			return err
		}
		inAccounts, err := repos.Accounts.EmailExists(ctx, email)
		if err != nil {
			return err
		}
		if inProfiles || inAccounts {
			return apperrors.Conflict("User already exists.")
		}

		p, err := repos.Profiles.Create(ctx, profile.Profile{
			EmployeeID:       uuid.New(),
			FirstName:        firstName,
			LastName:         lastName,
			ContactNo:        trimmedOrNil(params.ContactNo),
			Email:            email,
			Address:          address,
			EmployeeCode:     code,
			DateHired:        dateOnly(s.now()),
			SupervisorName:   profile.DefaultSupervisorName,
			ClassificationID: profile.DefaultClassificationID,
		})
		if err != nil {
			return err
		}
		a, err := repos.Accounts.Create(ctx, account.Account{
			EmployeeID:   p.EmployeeID,
			Email:        email,
			BackupEmail:  backupEmail,
			PasswordHash: hash,
		})
		if err != nil {
			return err
		}
		result = RegisterResult{
			AccountID:    a.ID,
			EmployeeID:   p.EmployeeID,
			Email:        email,
			EmployeeCode: p.EmployeeCode,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, account.ErrDuplicateEmail) || errors.Is(err, profile.ErrDuplicateEmail) {
			err = apperrors.Conflict("User already exists.")
		}
		if apperrors.IsCode(err, apperrors.ErrCodeConflict) {
			RegistrationsTotal.WithLabelValues(OutcomeConflict).Inc()
			return nil, err
		}
		RegistrationsTotal.WithLabelValues(OutcomeError).Inc()
		slog.Error("Failed registering user", "err", err, "email", email)
		return nil, apperrors.InternalWrap(err, "Registration failed.")
	}

	RegistrationsTotal.WithLabelValues(OutcomeSuccess).Inc()
	slog.Info("User registered", "account_id", result.AccountID, "employee_id", result.EmployeeID)
	return &result, nil
}

// Login verifies a password under the lockout policy and issues a bearer
// token on success. The account row stays locked from read to write.
func (s *Service) Login(ctx context.Context, email, pass string) (*LoginResult, error) {
	email = account.NormalizeEmail(email)
	if email == "" || pass == "" {
		return nil, apperrors.ValidationFailed("", "Email and password are required.")
	}

	var (
		loginErr error
		outcome  string
		acc      account.Account
		prof     profile.Profile
	)
	err := s.store.WithTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		acc, err = repos.Accounts.GetByEmailForUpdate(ctx, email)
		if errors.Is(err, account.ErrAccountNotFound) {
			s.verifyDummy(pass)
			outcome = OutcomeUnknown
			loginErr = apperrors.InvalidCredentials(s.lockoutThreshold() - 1)
			return nil
		}
		if err != nil {
			return err
		}

		now := s.now()
		decision := s.lockout.Decide(acc.FailedLoginCount, acc.LockedUntil, now)
		if !decision.AllowAttempt {
			secs := decision.RemainingSeconds()
			outcome = OutcomeLocked
			loginErr = apperrors.AccountLocked(fmt.Sprintf("Account locked. Try again in %d seconds.", secs), secs)
			return nil
		}

		ok, err := s.hasher.Verify(pass, acc.PasswordHash)
		if err != nil {
			return err
		}
		if !ok {
			out := s.lockout.RecordFailure(decision.FailedCount, now)
			if err := repos.Accounts.UpdateLoginState(ctx, acc.ID, out.FailedCount, out.LockedUntil); err != nil {
				return err
			}
			if out.Locked {
				outcome = OutcomeLockedNow
				loginErr = apperrors.AccountLocked(s.lockedMessage(), int(s.lockout.Duration/time.Second))
			} else {
				outcome = OutcomeInvalid
				loginErr = apperrors.InvalidCredentials(out.AttemptsRemaining)
			}
			return nil
		}

		if err := repos.Accounts.UpdateLoginState(ctx, acc.ID, 0, nil); err != nil {
			return err
		}
		prof, err = repos.Profiles.GetByEmployeeID(ctx, acc.EmployeeID)
		if err != nil {
			return fmt.Errorf("load profile for account %s: %w", acc.ID, err)
		}
		return nil
	})
	if err != nil {
		LoginAttemptsTotal.WithLabelValues(OutcomeError).Inc()
		slog.Error("Failed processing login", "err", err, "email", email)
		return nil, apperrors.InternalWrap(err, "Login failed.")
	}
	if loginErr != nil {
		LoginAttemptsTotal.WithLabelValues(outcome).Inc()
		slog.Info("Login rejected", "email", email, "outcome", outcome)
		return nil, loginErr
	}

	token, expiresAt, err := s.tokens.Issue(tokengenerator.Claims{
		AccountID:  acc.ID.String(),
		EmployeeID: acc.EmployeeID.String(),
		Email:      acc.Email,
		IsAdmin:    prof.IsAdmin,
	}, s.tokenTTL)
	if err != nil {
		LoginAttemptsTotal.WithLabelValues(OutcomeError).Inc()
		slog.Error("Failed issuing token", "err", err, "account_id", acc.ID)
		return nil, apperrors.InternalWrap(err, "Login failed.")
	}

	LoginAttemptsTotal.WithLabelValues(OutcomeSuccess).Inc()
	slog.Info("Login successful", "account_id", acc.ID)
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User: UserSummary{
			AccountID:  acc.ID,
			EmployeeID: acc.EmployeeID,
			Email:      acc.Email,
			FirstName:  prof.FirstName,
			LastName:   prof.LastName,
			IsAdmin:    prof.IsAdmin,
		},
	}, nil
}

// RequestPasswordReset stores a fresh reset digest and mails the raw token.
// The acknowledgement is the same whether or not the email is known.
func (s *Service) RequestPasswordReset(ctx context.Context, email string, useBackup bool) (string, error) {
	email = account.NormalizeEmail(email)
	if email == "" {
		return "", apperrors.ValidationFailed("email", "Email is required.")
	}

	var (
		found     bool
		token     string
		target    string
		firstName string
	)
	err := s.store.WithTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		acc, err := repos.Accounts.GetByAnyEmailForUpdate(ctx, email)
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		raw, digest, err := resettoken.GenerateFrom(s.random)
		if err != nil {
			return err
		}
		if err := repos.Accounts.SetResetToken(ctx, acc.ID, digest, s.now().Add(s.resetExpiry)); err != nil {
			return err
		}

		if p, err := repos.Profiles.GetByEmployeeID(ctx, acc.EmployeeID); err == nil {
			firstName = p.FirstName
		} else if !errors.Is(err, profile.ErrProfileNotFound) {
			return err
		}
		found, token, target = true, raw, acc.ResetTarget(useBackup)
		return nil
	})
	if err != nil {
		PasswordResetRequestsTotal.WithLabelValues(OutcomeError).Inc()
		slog.Error("Failed storing reset token", "err", err)
		return "", apperrors.InternalWrap(err, "Failed to process password reset.")
	}
	if !found {
		PasswordResetRequestsTotal.WithLabelValues(OutcomeNoAccount).Inc()
		slog.Info("Password reset requested for unknown email")
		return ResetRequestAck, nil
	}

	msg, err := mailer.PasswordResetMessage(target, mailer.PasswordResetData{
		FirstName:     firstName,
		ResetURL:      s.resetURL(token, email),
		ExpiryMinutes: int(s.resetExpiry / time.Minute),
	})
	if err != nil {
		PasswordResetRequestsTotal.WithLabelValues(OutcomeError).Inc()
		return "", apperrors.InternalWrap(err, "Failed to process password reset.")
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		PasswordResetRequestsTotal.WithLabelValues(OutcomeDeliveryErr).Inc()
		slog.Error("Failed sending reset email", "err", err)
		return "", apperrors.DeliveryFailed(err)
	}

	PasswordResetRequestsTotal.WithLabelValues(OutcomeSent).Inc()
	slog.Info("Password reset link sent")
	return ResetRequestAck, nil
}

// ResetPassword consumes a reset token and replaces the password.
func (s *Service) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	email = account.NormalizeEmail(email)
	if email == "" || token == "" || newPassword == "" {
		return apperrors.ValidationFailed("", "Email, token, and new password are required.")
	}
	if err := s.policy.CheckPasswordComplexity(newPassword); err != nil {
		return apperrors.ValidationFailed("password", err.Error())
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.InternalWrap(err, "Failed to reset password.")
	}

	var employeeID uuid.UUID
	err = s.store.WithTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		acc, err := repos.Accounts.GetByAnyEmailForUpdate(ctx, email)
		if errors.Is(err, account.ErrAccountNotFound) {
			return apperrors.InvalidResetToken()
		}
		if err != nil {
			return err
		}
		if !resettoken.Valid(token, acc.ResetTokenDigest, acc.ResetTokenExpiry, s.now()) {
			return apperrors.InvalidResetToken()
		}
		employeeID = acc.EmployeeID
		return repos.Accounts.ResetPassword(ctx, acc.ID, hash)
	})
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeInvalidResetToken) {
			slog.Info("Rejected password reset token")
			return err
		}
		slog.Error("Failed resetting password", "err", err)
		return apperrors.InternalWrap(err, "Failed to reset password.")
	}

	slog.Info("Password reset", "employee_id", employeeID)
	s.notifier.Notify(ctx, employeeID, "Password Reset", "Your password was reset successfully.")
	return nil
}

// UnlockAccount clears the failure counter and lock. It succeeds whether or
// not the account exists.
func (s *Service) UnlockAccount(ctx context.Context, email string) error {
	email = account.NormalizeEmail(email)
	if email == "" {
		return apperrors.ValidationFailed("email", "Email is required.")
	}

	var (
		unlocked   bool
		employeeID uuid.UUID
	)
	err := s.store.WithTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		acc, err := repos.Accounts.GetByEmailForUpdate(ctx, email)
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		employeeID = acc.EmployeeID
		unlocked, err = repos.Accounts.Unlock(ctx, acc.Email)
		return err
	})
	if err != nil {
		slog.Error("Failed unlocking account", "err", err)
		return apperrors.InternalWrap(err, "Failed to unlock account.")
	}

	if unlocked {
		slog.Info("Account unlocked", "employee_id", employeeID)
		s.notifier.Notify(ctx, employeeID, "Account Unlocked", "Your account has been unlocked by an administrator.")
	}
	return nil
}

// VerifyBearerToken checks the signature and expiry of a login token.
func (s *Service) VerifyBearerToken(ctx context.Context, token string) (*tokengenerator.Claims, error) {
	if token == "" {
		return nil, apperrors.TokenInvalid(tokengenerator.ErrTokenInvalid)
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		slog.Debug("Rejected bearer token", "err", err)
		return nil, apperrors.TokenInvalid(err)
	}
	return claims, nil
}

// GetProfile returns the joined account and employee view.
func (s *Service) GetProfile(ctx context.Context, accountID uuid.UUID) (*ProfileView, error) {
	repos := s.store.Repos()

	acc, err := repos.Accounts.GetByID(ctx, accountID)
	if errors.Is(err, account.ErrAccountNotFound) {
		return nil, apperrors.NotFound("User not found.")
	}
	if err != nil {
		return nil, apperrors.InternalWrap(err, "Failed to fetch profile.")
	}
	p, err := repos.Profiles.GetByEmployeeID(ctx, acc.EmployeeID)
	if errors.Is(err, profile.ErrProfileNotFound) {
		slog.Error("Account has no employee record", "account_id", acc.ID, "employee_id", acc.EmployeeID)
		return nil, apperrors.NotFound("User not found.")
	}
	if err != nil {
		return nil, apperrors.InternalWrap(err, "Failed to fetch profile.")
	}

	view := &ProfileView{
		AccountID:      acc.ID,
		EmployeeID:     p.EmployeeID,
		Email:          p.Email,
		BackupEmail:    acc.BackupEmail,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		ContactNo:      p.ContactNo,
		Address:        p.Address,
		EmployeeCode:   p.EmployeeCode,
		IsAdmin:        p.IsAdmin,
		LeaveBalance:   p.LeaveBalance,
		SupervisorName: p.SupervisorName,
		DateHired:      p.DateHired,
		Initials:       p.Initials(),
		IsLocked:       acc.IsLocked(s.now()),
		CreatedAt:      acc.CreatedAt,
	}
	if c := p.Classification; c != nil {
		view.Department = c.Department
		view.Position = c.Position
		view.Role = c.Role
		view.EmploymentType = c.EmploymentType
		view.EmployeeLevel = c.EmployeeLevel
	}
	return view, nil
}

// ChangePassword replaces the password of an authenticated account after
// checking the current one.
func (s *Service) ChangePassword(ctx context.Context, accountID uuid.UUID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return apperrors.ValidationFailed("", "Both current and new passwords are required.")
	}
	if err := s.policy.CheckPasswordComplexity(newPassword); err != nil {
		return apperrors.ValidationFailed("password", err.Error())
	}

	err := s.store.WithTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		acc, err := repos.Accounts.GetByID(ctx, accountID)
		if errors.Is(err, account.ErrAccountNotFound) {
			return apperrors.NotFound("User not found.")
		}
		if err != nil {
			return err
		}
		ok, err := s.hasher.Verify(currentPassword, acc.PasswordHash)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.New(apperrors.ErrCodeInvalidCredentials, "Current password is incorrect.")
		}
		hash, err := s.hasher.Hash(newPassword)
		if err != nil {
			return err
		}
		return repos.Accounts.UpdatePassword(ctx, acc.ID, hash)
	})
	if err != nil {
		if _, ok := apperrors.As(err); ok {
			return err
		}
		slog.Error("Failed changing password", "err", err, "account_id", accountID)
		return apperrors.InternalWrap(err, "Failed to update password.")
	}
	slog.Info("Password changed", "account_id", accountID)
	return nil
}

// PasswordPolicy exposes the active password rules.
func (s *Service) PasswordPolicy() *password.Policy {
	return s.policy.GetPolicy()
}

func (s *Service) resetURL(token, email string) string {
	q := url.Values{}
	q.Set("token", token)
	q.Set("email", email)
	return strings.TrimRight(s.frontendOrigin, "/") + "/reset-password?" + q.Encode()
}

func (s *Service) lockedMessage() string {
	return fmt.Sprintf("Account locked for %d seconds after %d failed attempts.",
		int(s.lockout.Duration/time.Second), s.lockoutThreshold())
}

func (s *Service) lockoutThreshold() int {
	if s.lockout.Threshold <= 0 {
		return lockout.DefaultThreshold
	}
	return s.lockout.Threshold
}

// verifyDummy spends the same hashing time for unknown emails as for a
// wrong password.
func (s *Service) verifyDummy(pass string) {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("clockit-dummy-password")
		if err != nil {
			slog.Error("Failed creating dummy hash", "err", err)
			return
		}
		s.dummyHash = h
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(pass, s.dummyHash)
	}
}

func optionalEmail(v *string) *string {
	if v == nil {
		return nil
	}
	e := account.NormalizeEmail(*v)
	if e == "" {
		return nil
	}
	return &e
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
