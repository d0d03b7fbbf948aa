package repository

import (
	"context"
	"errors"
	"time"

	"github.com/seeg/recruiting-platform/modules/users/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccessRequestRepository implements ports.AccessRequestRepository
type AccessRequestRepository struct {
	pool DBTX
}

// NewAccessRequestRepository creates a new access request repository
func NewAccessRequestRepository(pool *pgxpool.Pool) *AccessRequestRepository {
	return &AccessRequestRepository{pool: pool}
}

// WithTx returns an AccessRequestRepository bound to an in-flight transaction.
func (r *AccessRequestRepository) WithTx(tx pgx.Tx) *AccessRequestRepository {
	return &AccessRequestRepository{pool: tx}
}

// Create inserts a pending access request.
func (r *AccessRequestRepository) Create(ctx context.Context, req *model.AccessRequest) error {
	query := `
		INSERT INTO access_requests (id, user_id, status, approver_id, created_at, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	req.ID = uuid.New().String()
	_, err := r.pool.Exec(ctx, query, req.ID, req.UserID, req.Status, req.ApproverID, req.CreatedAt, req.ResolvedAt)
	return err
}

// GetByID retrieves an access request by id.
func (r *AccessRequestRepository) GetByID(ctx context.Context, id string) (*model.AccessRequest, error) {
	query := `
		SELECT id, user_id, status, approver_id, created_at, resolved_at
		FROM access_requests WHERE id = $1
	`
	req := &model.AccessRequest{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&req.ID, &req.UserID, &req.Status, &req.ApproverID, &req.CreatedAt, &req.ResolvedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAccessRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

// ListPending returns access requests awaiting admin resolution, paginated.
func (r *AccessRequestRepository) ListPending(ctx context.Context, limit, offset int) ([]*model.AccessRequest, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM access_requests WHERE status = $1`, model.AccessRequestPending).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, user_id, status, approver_id, created_at, resolved_at
		FROM access_requests WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, model.AccessRequestPending, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reqs []*model.AccessRequest
	for rows.Next() {
		req := &model.AccessRequest{}
		if err := rows.Scan(&req.ID, &req.UserID, &req.Status, &req.ApproverID, &req.CreatedAt, &req.ResolvedAt); err != nil {
			return nil, 0, err
		}
		reqs = append(reqs, req)
	}
	return reqs, total, rows.Err()
}

// Resolve marks an access request approved or rejected by approverID.
func (r *AccessRequestRepository) Resolve(ctx context.Context, id, approverID string, status model.AccessRequestStatus) error {
	query := `
		UPDATE access_requests SET status = $2, approver_id = $3, resolved_at = $4
		WHERE id = $1
	`
	now := time.Now().UTC()
	result, err := r.pool.Exec(ctx, query, id, status, approverID, now)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return model.ErrAccessRequestNotFound
	}
	return nil
}
