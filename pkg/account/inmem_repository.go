package account

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository implements Repository using in-memory storage.
// ForUpdate reads take no extra lock; callers serialize through the
// store's transaction mutex.
type InMemoryRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]Account
	now      func() time.Time
}

// NewInMemoryRepository creates a new in-memory account repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		accounts: make(map[uuid.UUID]Account),
		now:      time.Now,
	}
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id uuid.UUID) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return clone(a), nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.Email == email {
			return clone(a), nil
		}
	}
	return Account{}, ErrAccountNotFound
}

func (r *InMemoryRepository) GetByEmailForUpdate(ctx context.Context, email string) (Account, error) {
	return r.GetByEmail(ctx, email)
}

func (r *InMemoryRepository) GetByAnyEmailForUpdate(ctx context.Context, email string) (Account, error) {
	if a, err := r.GetByEmail(ctx, email); err == nil {
		return a, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *Account
	for _, a := range r.accounts {
		if a.BackupEmail == nil || *a.BackupEmail != email {
			continue
		}
		if found == nil || a.CreatedAt.Before(found.CreatedAt) {
			a := a
			found = &a
		}
	}
	if found == nil {
		return Account{}, ErrAccountNotFound
	}
	return clone(*found), nil
}

func (r *InMemoryRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *InMemoryRepository) Create(ctx context.Context, a Account) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Email == a.Email || existing.EmployeeID == a.EmployeeID {
			return Account{}, ErrDuplicateEmail
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.FailedLoginCount = 0
	a.LockedUntil = nil
	a.ResetTokenDigest = nil
	a.ResetTokenExpiry = nil
	a.CreatedAt = r.now().UTC()
	r.accounts[a.ID] = clone(a)
	return clone(a), nil
}

func (r *InMemoryRepository) update(id uuid.UUID, fn func(a *Account)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	fn(&a)
	r.accounts[id] = a
	return nil
}

func (r *InMemoryRepository) UpdateLoginState(ctx context.Context, id uuid.UUID, failedCount int, lockedUntil *time.Time) error {
	return r.update(id, func(a *Account) {
		a.FailedLoginCount = failedCount
		a.LockedUntil = copyTime(lockedUntil)
	})
}

func (r *InMemoryRepository) SetResetToken(ctx context.Context, id uuid.UUID, digest []byte, expiry time.Time) error {
	return r.update(id, func(a *Account) {
		a.ResetTokenDigest = append([]byte(nil), digest...)
		a.ResetTokenExpiry = &expiry
	})
}

func (r *InMemoryRepository) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.update(id, func(a *Account) {
		a.PasswordHash = passwordHash
		a.ResetTokenDigest = nil
		a.ResetTokenExpiry = nil
	})
}

func (r *InMemoryRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.update(id, func(a *Account) {
		a.PasswordHash = passwordHash
	})
}

func (r *InMemoryRepository) Unlock(ctx context.Context, email string) (bool, error) {
	a, err := r.GetByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, r.update(a.ID, func(a *Account) {
		a.FailedLoginCount = 0
		a.LockedUntil = nil
	})
}

// Snapshot copies the current contents for a later Restore.
func (r *InMemoryRepository) Snapshot() map[uuid.UUID]Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := make(map[uuid.UUID]Account, len(r.accounts))
	for id, a := range r.accounts {
		snap[id] = clone(a)
	}
	return snap
}

// Restore replaces the contents with a snapshot.
func (r *InMemoryRepository) Restore(snap map[uuid.UUID]Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = snap
}

func clone(a Account) Account {
	if a.BackupEmail != nil {
		b := *a.BackupEmail
		a.BackupEmail = &b
	}
	a.LockedUntil = copyTime(a.LockedUntil)
	a.ResetTokenExpiry = copyTime(a.ResetTokenExpiry)
	if a.ResetTokenDigest != nil {
		a.ResetTokenDigest = append([]byte(nil), a.ResetTokenDigest...)
	}
	return a
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
