package service

import (
	"context"

	"github.com/seeg/recruiting-platform/internal/platform/logger"
	"github.com/seeg/recruiting-platform/internal/platform/notify"
	"github.com/seeg/recruiting-platform/modules/notifications/model"
	"github.com/seeg/recruiting-platform/modules/notifications/ports"
)

// NotificationService implements the Event Log.
type NotificationService struct {
	repo   ports.NotificationRepository
	notify *notify.Client
	logger *logger.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(repo ports.NotificationRepository, notifyClient *notify.Client, log *logger.Logger) *NotificationService {
	return &NotificationService{repo: repo, notify: notifyClient, logger: log}
}

// Append records a notification for a user, then fires a best-effort email
// through internal/platform/notify. Callers (the Application Writer on
// submission, and application status changes) issue this right after their
// own commit, never inside it, and treat a failure here as non-fatal.
func (s *NotificationService) Append(ctx context.Context, userID, toEmail, notifType, title, body string) error {
	if notifType == "" {
		return model.ErrTypeRequired
	}
	if err := s.repo.Create(ctx, model.NewNotification(userID, notifType, title, body)); err != nil {
		return err
	}

	if toEmail != "" {
		if err := s.notify.Send(ctx, toEmail, title, body); err != nil {
			s.logger.WithAction("notify_email").WithError("EMAIL_SEND_FAILED").Warn(err.Error())
		}
	}

	return nil
}

// List returns a user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string, limit, offset int) ([]*model.NotificationDTO, int, error) {
	notifications, total, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]*model.NotificationDTO, len(notifications))
	for i, n := range notifications {
		dtos[i] = n.ToDTO()
	}
	return dtos, total, nil
}

// MarkRead flips a single notification's read flag.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}

// Stats returns a user's inbox counters.
func (s *NotificationService) Stats(ctx context.Context, userID string) (*model.Stats, error) {
	return s.repo.Stats(ctx, userID)
}
