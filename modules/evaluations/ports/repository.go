package ports

import (
	"context"

	"github.com/seeg/recruiting-platform/modules/evaluations/model"
)

// EvaluationRepository defines data access for Evaluation.
type EvaluationRepository interface {
	Create(ctx context.Context, eval *model.Evaluation) error
	GetByID(ctx context.Context, id string) (*model.Evaluation, error)
	ListByApplication(ctx context.Context, applicationID string) ([]*model.Evaluation, error)
	Update(ctx context.Context, eval *model.Evaluation) error
}
