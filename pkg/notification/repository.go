package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository persists notifications.
type Repository interface {
	Insert(ctx context.Context, n Notification) (Notification, error)
	// HasRecentDuplicate reports whether employeeID already received the
	// same title and message at or after since.
	HasRecentDuplicate(ctx context.Context, employeeID uuid.UUID, title, message string, since time.Time) (bool, error)
	// ListForEmployee returns personal and broadcast notifications, newest first.
	ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]Notification, error)
}
