package ports

import "context"

// CandidateDirectory resolves a candidate id to their email address, so
// notification triggers can hand the Event Log a real recipient. A lookup
// failure degrades to an in-app-only notification, never a failed write.
type CandidateDirectory interface {
	GetEmailByID(ctx context.Context, userID string) (string, error)
}
