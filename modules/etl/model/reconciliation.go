package model

import "time"

// ReconciliationEntry records an application whose fan-out webhook delivery
// or object-lake projection did not complete, for cmd/reconcile to replay
//.
type ReconciliationEntry struct {
	ID            string
	ApplicationID string
	Reason        string
	Resolved      bool
	CreatedAt     time.Time
	ResolvedAt    *time.Time
}
