// Package notification stores in-app messages for employees.
//
// A notification is either personal (addressed to one employee) or a
// broadcast visible to everyone. Notify is best effort: it skips an
// identical message sent to the same employee within the dedupe window and
// never returns an error to the caller.
package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DedupeWindow is how long an identical personal notification is suppressed.
const DedupeWindow = time.Minute

type Notification struct {
	ID          uuid.UUID  `json:"id"`
	EmployeeID  *uuid.UUID `json:"employee_id,omitempty"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	IsBroadcast bool       `json:"is_broadcast"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Notifier posts a personal notification. Failures are logged, not returned.
type Notifier interface {
	Notify(ctx context.Context, employeeID uuid.UUID, title, message string)
}

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, uuid.UUID, string, string) {}
