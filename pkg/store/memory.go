package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/clockit/clockit-idm/pkg/account"
	"github.com/clockit/clockit-idm/pkg/notification"
	"github.com/clockit/clockit-idm/pkg/profile"
)

// MemoryStore implements Store with in-memory repositories. Transactions
// are serialized by one mutex and undone from a snapshot on error.
type MemoryStore struct {
	txMu          sync.Mutex
	accounts      *account.InMemoryRepository
	profiles      *profile.InMemoryRepository
	notifications *notification.InMemoryRepository
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts:      account.NewInMemoryRepository(),
		profiles:      profile.NewInMemoryRepository(),
		notifications: notification.NewInMemoryRepository(),
	}
}

func (s *MemoryStore) Repos() Repositories {
	return Repositories{
		Accounts:      s.accounts,
		Profiles:      s.profiles,
		Notifications: s.notifications,
	}
}

// Accounts exposes the account repository for seeding.
func (s *MemoryStore) Accounts() *account.InMemoryRepository {
	return s.accounts
}

// Profiles exposes the profile repository for seeding.
func (s *MemoryStore) Profiles() *profile.InMemoryRepository {
	return s.profiles
}

func (s *MemoryStore) WithTx(ctx context.Context, fn TxFunc) (err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	accounts := s.accounts.Snapshot()
	profiles := s.profiles.Snapshot()
	notifications := s.notifications.Snapshot()

	defer func() {
		if p := recover(); p != nil {
			s.restore(accounts, profiles, notifications)
			panic(p)
		}
		if err != nil {
			s.restore(accounts, profiles, notifications)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, s.Repos())
}

func (s *MemoryStore) restore(a map[uuid.UUID]account.Account, p map[uuid.UUID]profile.Profile, n []notification.Notification) {
	s.accounts.Restore(a)
	s.profiles.Restore(p)
	s.notifications.Restore(n)
}
