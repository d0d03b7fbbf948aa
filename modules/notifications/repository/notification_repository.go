package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seeg/recruiting-platform/modules/notifications/model"
	"github.com/seeg/recruiting-platform/modules/notifications/ports"
)

// NotificationRepository implements ports.NotificationRepository against
// Postgres: append-only insert, list-by-owner ordered by created_at.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

var _ ports.NotificationRepository = (*NotificationRepository)(nil)

// Create appends a notification row.
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	n.ID = uuid.New().String()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notifications (id, user_id, type, title, body, read, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, n.ID, n.UserID, n.Type, n.Title, n.Body, n.Read, n.CreatedAt)
	return err
}

// ListByUser returns a user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Notification, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, type, title, body, read, created_at FROM notifications
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*model.Notification
	for rows.Next() {
		n := &model.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, n)
	}
	return out, total, rows.Err()
}

// MarkRead flips the read flag for a notification owned by userID.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2
	`, notificationID, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return model.ErrNotificationNotFound
	}
	return nil
}

// Stats returns the total/unread/by_type counters for a user's inbox.
func (r *NotificationRepository) Stats(ctx context.Context, userID string) (*model.Stats, error) {
	stats := &model.Stats{ByType: map[string]int{}}

	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID).Scan(&stats.Total)
	if err != nil {
		return nil, err
	}
	err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = false`, userID).Scan(&stats.Unread)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `SELECT type, COUNT(*) FROM notifications WHERE user_id = $1 GROUP BY type`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var t string
		var count int
		if err := rows.Scan(&t, &count); err != nil {
			return nil, err
		}
		stats.ByType[t] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
