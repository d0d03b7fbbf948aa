package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seeg/recruiting-platform/modules/evaluations/model"
	"github.com/seeg/recruiting-platform/modules/evaluations/ports"
)

// EvaluationRepository implements ports.EvaluationRepository against Postgres.
type EvaluationRepository struct {
	pool *pgxpool.Pool
}

// NewEvaluationRepository creates a new evaluation repository.
func NewEvaluationRepository(pool *pgxpool.Pool) *EvaluationRepository {
	return &EvaluationRepository{pool: pool}
}

var _ ports.EvaluationRepository = (*EvaluationRepository)(nil)

const selectEvaluationColumns = `
	id, application_id, protocol, evaluator_id, phase_scores, weighted_aggregate, state, created_at, updated_at
`

func scanEvaluation(row pgx.Row) (*model.Evaluation, error) {
	e := &model.Evaluation{}
	var scoresRaw []byte
	err := row.Scan(&e.ID, &e.ApplicationID, &e.Protocol, &e.EvaluatorID, &scoresRaw, &e.WeightedAggregate, &e.State, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrEvaluationNotFound
		}
		return nil, err
	}
	if len(scoresRaw) > 0 {
		if err := json.Unmarshal(scoresRaw, &e.PhaseScores); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Create inserts a new Evaluation.
func (r *EvaluationRepository) Create(ctx context.Context, eval *model.Evaluation) error {
	scoresRaw, err := json.Marshal(eval.PhaseScores)
	if err != nil {
		return err
	}
	eval.ID = uuid.New().String()

	_, err = r.pool.Exec(ctx, `
		INSERT INTO evaluations (id, application_id, protocol, evaluator_id, phase_scores, weighted_aggregate, state, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, eval.ID, eval.ApplicationID, eval.Protocol, eval.EvaluatorID, scoresRaw, eval.WeightedAggregate, eval.State, eval.CreatedAt, eval.UpdatedAt)
	return err
}

// GetByID retrieves an evaluation by id.
func (r *EvaluationRepository) GetByID(ctx context.Context, id string) (*model.Evaluation, error) {
	query := `SELECT ` + selectEvaluationColumns + ` FROM evaluations WHERE id = $1`
	return scanEvaluation(r.pool.QueryRow(ctx, query, id))
}

// ListByApplication returns every evaluation linked to an application.
func (r *EvaluationRepository) ListByApplication(ctx context.Context, applicationID string) ([]*model.Evaluation, error) {
	query := `SELECT ` + selectEvaluationColumns + ` FROM evaluations WHERE application_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evals []*model.Evaluation
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evals = append(evals, e)
	}
	return evals, rows.Err()
}

// Update persists phase scores/aggregate/state changes.
func (r *EvaluationRepository) Update(ctx context.Context, eval *model.Evaluation) error {
	scoresRaw, err := json.Marshal(eval.PhaseScores)
	if err != nil {
		return err
	}
	result, err := r.pool.Exec(ctx, `
		UPDATE evaluations SET phase_scores = $2, weighted_aggregate = $3, state = $4, updated_at = $5
		WHERE id = $1
	`, eval.ID, scoresRaw, eval.WeightedAggregate, eval.State, eval.UpdatedAt)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return model.ErrEvaluationNotFound
	}
	return nil
}
