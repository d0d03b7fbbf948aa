package ports

import "context"

// Notifier appends an Event Log entry and fires a best-effort notification
// email, issued right after the Application Writer's commit, never inside
// it.
type Notifier interface {
	Append(ctx context.Context, userID, toEmail, notifType, title, body string) error
}
