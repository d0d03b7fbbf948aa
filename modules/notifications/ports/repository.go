package ports

import (
	"context"

	"github.com/seeg/recruiting-platform/modules/notifications/model"
)

// NotificationRepository defines data access for the append-only Event Log.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Notification, int, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	Stats(ctx context.Context, userID string) (*model.Stats, error)
}
