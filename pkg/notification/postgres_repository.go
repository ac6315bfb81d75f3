package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clockit/clockit-idm/pkg/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, n Notification) (Notification, error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO notifications (notification_id, employee_id, title, message, is_broadcast)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		n.ID, n.EmployeeID, n.Title, n.Message, n.IsBroadcast,
	).Scan(&n.CreatedAt)
	if err != nil {
		return Notification{}, fmt.Errorf("insert notification: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) HasRecentDuplicate(ctx context.Context, employeeID uuid.UUID, title, message string, since time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE employee_id = $1 AND title = $2 AND message = $3 AND created_at >= $4
		)`, employeeID, title, message, since).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check duplicate notification: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]Notification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT notification_id, employee_id, title, message, is_broadcast, created_at
		 FROM notifications
		 WHERE employee_id = $1 OR is_broadcast
		 ORDER BY created_at DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Notification, error) {
		var n Notification
		err := row.Scan(&n.ID, &n.EmployeeID, &n.Title, &n.Message, &n.IsBroadcast, &n.CreatedAt)
		return n, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan notifications: %w", err)
	}
	return list, nil
}
