package notification

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/clockit/clockit-idm/pkg/errors"
	"github.com/clockit/clockit-idm/pkg/profile"
)

const (
	kindPersonal  = "personal"
	kindBroadcast = "broadcast"
)

// EmployeeLookup is the part of the profile store the inbox needs.
type EmployeeLookup interface {
	GetByEmployeeID(ctx context.Context, id uuid.UUID) (profile.Profile, error)
}

// Service manages the notification inbox
type Service struct {
	repo      Repository
	employees EmployeeLookup
	now       func() time.Time
}

type Option func(*Service)

// WithClock sets the time source used for the dedupe window.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, employees EmployeeLookup, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		employees: employees,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notify stores a personal notification unless the employee is unknown or
// already got the same title and message within DedupeWindow.
func (s *Service) Notify(ctx context.Context, employeeID uuid.UUID, title, message string) {
	if _, err := s.employees.GetByEmployeeID(ctx, employeeID); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			slog.Warn("Skipped notification for unknown employee", "employee_id", employeeID)
			record(kindPersonal, OutcomeSkipped)
			return
		}
		slog.Error("Failed looking up employee for notification", "err", err, "employee_id", employeeID)
		record(kindPersonal, OutcomeFailed)
		return
	}
	s.store(ctx, employeeID, title, message)
}

func (s *Service) store(ctx context.Context, employeeID uuid.UUID, title, message string) {
	dup, err := s.repo.HasRecentDuplicate(ctx, employeeID, title, message, s.now().Add(-DedupeWindow))
	if err != nil {
		slog.Error("Failed checking duplicate notification", "err", err, "employee_id", employeeID)
		record(kindPersonal, OutcomeFailed)
		return
	}
	if dup {
		slog.Debug("Skipped duplicate notification", "employee_id", employeeID, "title", title)
		record(kindPersonal, OutcomeDuplicate)
		return
	}

	if _, err := s.repo.Insert(ctx, Notification{EmployeeID: &employeeID, Title: title, Message: message}); err != nil {
		slog.Error("Failed saving notification", "err", err, "employee_id", employeeID)
		record(kindPersonal, OutcomeFailed)
		return
	}
	slog.Info("Notification saved", "employee_id", employeeID, "title", title)
	record(kindPersonal, OutcomeStored)
}

// Broadcast stores one notification visible to every employee.
func (s *Service) Broadcast(ctx context.Context, title, message string) (Notification, error) {
	if err := validate(title, message); err != nil {
		return Notification{}, err
	}
	n, err := s.repo.Insert(ctx, Notification{Title: title, Message: message, IsBroadcast: true})
	if err != nil {
		record(kindBroadcast, OutcomeFailed)
		return Notification{}, apperrors.InternalWrap(err, "Failed to send broadcast notification.")
	}
	record(kindBroadcast, OutcomeStored)
	return n, nil
}

// SendPersonal notifies one employee and fails with NOT_FOUND when the
// employee does not exist.
func (s *Service) SendPersonal(ctx context.Context, employeeID uuid.UUID, title, message string) error {
	if err := validate(title, message); err != nil {
		return err
	}
	if _, err := s.employees.GetByEmployeeID(ctx, employeeID); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return apperrors.NotFound("User not found")
		}
		return apperrors.InternalWrap(err, "Failed to send personal message")
	}
	s.store(ctx, employeeID, title, message)
	return nil
}

// ListForEmployee returns the employee's personal and broadcast notifications, newest first.
func (s *Service) ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]Notification, error) {
	list, err := s.repo.ListForEmployee(ctx, employeeID)
	if err != nil {
		return nil, apperrors.InternalWrap(err, "Failed to fetch notifications.")
	}
	if list == nil {
		list = []Notification{}
	}
	return list, nil
}

func validate(title, message string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(message) == "" {
		return apperrors.ValidationFailed("", "Title and message are required.")
	}
	return nil
}
