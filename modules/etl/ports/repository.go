package ports

import (
	"context"

	"github.com/seeg/recruiting-platform/modules/etl/model"
)

// ReconciliationRepository persists the reconciliation_log table that
// cmd/reconcile drains to replay failed dispatches/projections.
type ReconciliationRepository interface {
	Create(ctx context.Context, applicationID, reason string) error
	ListUnresolved(ctx context.Context) ([]*model.ReconciliationEntry, error)
	MarkResolved(ctx context.Context, id string) error
}

// Dispatcher hands a freshly committed application id off to the Fan-out
// Dispatcher without blocking the caller. Matches
// modules/applications/ports.Dispatcher so *Dispatcher satisfies both.
type Dispatcher interface {
	Enqueue(applicationID string)
}
