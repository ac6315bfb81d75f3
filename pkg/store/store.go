// Package store groups the repositories and runs work against them in a
// single transaction, on Postgres or in memory.
package store

import (
	"context"

	"github.com/clockit/clockit-idm/pkg/account"
	"github.com/clockit/clockit-idm/pkg/notification"
	"github.com/clockit/clockit-idm/pkg/profile"
)

// Repositories is one consistent view of the data, either direct or bound
// to a transaction.
type Repositories struct {
	Accounts      account.Repository
	Profiles      profile.Repository
	Notifications notification.Repository
}

// TxFunc runs inside a transaction. Returning an error rolls it back.
type TxFunc func(ctx context.Context, repos Repositories) error

// Store hands out repositories and runs transactions.
type Store interface {
	Repos() Repositories
	WithTx(ctx context.Context, fn TxFunc) error
}
