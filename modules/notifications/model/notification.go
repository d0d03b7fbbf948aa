package model

import (
	"errors"
	"time"
)

// Notification is an append-only per-user event record.
// Losing one is not fatal — notifications are best-effort and never part of
// the Application Writer's transaction.
type Notification struct {
	ID        string
	UserID    string
	Type      string
	Title     string
	Body      string
	Read      bool
	CreatedAt time.Time
}

// NewNotification constructs an unread Notification.
func NewNotification(userID, notifType, title, body string) *Notification {
	return &Notification{
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Body:      body,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}
}

// NotificationDTO is the JSON-facing view of a Notification.
type NotificationDTO struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) ToDTO() *NotificationDTO {
	return &NotificationDTO{ID: n.ID, Type: n.Type, Title: n.Title, Body: n.Body, Read: n.Read, CreatedAt: n.CreatedAt}
}

// Stats summarizes a user's notification inbox: total count, unread count,
// and a breakdown by type.
type Stats struct {
	Total  int            `json:"total"`
	Unread int            `json:"unread"`
	ByType map[string]int `json:"by_type"`
}

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrTypeRequired         = errors.New("type is required")
)

// ErrorCode is the stable wire identifier for notification errors.
type ErrorCode string

const (
	CodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"
	CodeValidationError      ErrorCode = "VALIDATION_ERROR"
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
)

// GetErrorCode maps a domain error to its wire ErrorCode.
func GetErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrNotificationNotFound):
		return CodeNotificationNotFound
	case errors.Is(err, ErrTypeRequired):
		return CodeValidationError
	default:
		return CodeInternalError
	}
}

// GetErrorMessage returns a client-safe message for a domain error.
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
