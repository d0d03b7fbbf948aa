package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seeg/recruiting-platform/modules/etl/model"
	"github.com/seeg/recruiting-platform/modules/etl/ports"
)

// ReconciliationRepository implements ports.ReconciliationRepository against
// Postgres.
type ReconciliationRepository struct {
	pool *pgxpool.Pool
}

// NewReconciliationRepository creates a new reconciliation repository.
func NewReconciliationRepository(pool *pgxpool.Pool) *ReconciliationRepository {
	return &ReconciliationRepository{pool: pool}
}

var _ ports.ReconciliationRepository = (*ReconciliationRepository)(nil)

// Create appends a reconciliation_log row for a failed dispatch/projection.
func (r *ReconciliationRepository) Create(ctx context.Context, applicationID, reason string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reconciliation_log (id, application_id, reason, resolved, created_at)
		VALUES ($1, $2, $3, false, now())
	`, uuid.New().String(), applicationID, reason)
	return err
}

// ListUnresolved returns every reconciliation entry cmd/reconcile still needs to replay.
func (r *ReconciliationRepository) ListUnresolved(ctx context.Context) ([]*model.ReconciliationEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, application_id, reason, resolved, created_at, resolved_at
		FROM reconciliation_log WHERE resolved = false ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*model.ReconciliationEntry
	for rows.Next() {
		e := &model.ReconciliationEntry{}
		if err := rows.Scan(&e.ID, &e.ApplicationID, &e.Reason, &e.Resolved, &e.CreatedAt, &e.ResolvedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// MarkResolved flags a reconciliation_log row as replayed successfully.
func (r *ReconciliationRepository) MarkResolved(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE reconciliation_log SET resolved = true, resolved_at = now() WHERE id = $1`, id)
	return err
}
