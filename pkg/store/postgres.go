package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/clockit/clockit-idm/pkg/account"
	"github.com/clockit/clockit-idm/pkg/dbx"
	"github.com/clockit/clockit-idm/pkg/notification"
	"github.com/clockit/clockit-idm/pkg/profile"
)

// PostgresStore implements Store on a pgx pool
type PostgresStore struct {
	pool dbx.Pool
}

func NewPostgresStore(pool dbx.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func bind(db dbx.DBTX) Repositories {
	return Repositories{
		Accounts:      account.NewPostgresRepository(db),
		Profiles:      profile.NewPostgresRepository(db),
		Notifications: notification.NewPostgresRepository(db),
	}
}

func (s *PostgresStore) Repos() Repositories {
	return bind(s.pool)
}

// WithTx commits when fn returns nil and rolls back otherwise.
func (s *PostgresStore) WithTx(ctx context.Context, fn TxFunc) (err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			rollback(ctx, tx)
			panic(p)
		}
	}()

	if err := fn(ctx, bind(tx)); err != nil {
		rollback(ctx, tx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Error("Failed rolling back transaction", "err", err)
	}
}

// Ping checks the database is reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	var one int
	if err := s.pool.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
var _ Store = (*MemoryStore)(nil)
