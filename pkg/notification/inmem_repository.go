package notification

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Notification
	now   func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{now: time.Now}
}

// WithClock sets the time stamped on inserted notifications.
func (r *InMemoryRepository) WithClock(now func() time.Time) *InMemoryRepository {
	r.now = now
	return r
}

func (r *InMemoryRepository) Insert(ctx context.Context, n Notification) (Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = r.now().UTC()
	r.items = append(r.items, n)
	return n, nil
}

func (r *InMemoryRepository) HasRecentDuplicate(ctx context.Context, employeeID uuid.UUID, title, message string, since time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.items {
		if n.EmployeeID != nil && *n.EmployeeID == employeeID &&
			n.Title == title && n.Message == message && !n.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryRepository) ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := []Notification{}
	for _, n := range r.items {
		if n.IsBroadcast || (n.EmployeeID != nil && *n.EmployeeID == employeeID) {
			list = append(list, n)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// Snapshot copies the current contents for a later Restore.
func (r *InMemoryRepository) Snapshot() []Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Notification(nil), r.items...)
}

// Restore replaces the contents with a snapshot.
func (r *InMemoryRepository) Restore(snap []Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = snap
}
