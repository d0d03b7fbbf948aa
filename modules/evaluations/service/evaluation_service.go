package service

import (
	"context"
	"time"

	"github.com/seeg/recruiting-platform/modules/evaluations/model"
	"github.com/seeg/recruiting-platform/modules/evaluations/ports"
)

// EvaluationService implements the Protocol-1/Protocol-2 evaluation
// persistence layer. Persistence only, scoring formulas stay with the
// evaluators.
type EvaluationService struct {
	repo ports.EvaluationRepository
}

// NewEvaluationService creates a new evaluation service.
func NewEvaluationService(repo ports.EvaluationRepository) *EvaluationService {
	return &EvaluationService{repo: repo}
}

// Create opens a new pending evaluation for an application.
func (s *EvaluationService) Create(ctx context.Context, applicationID, evaluatorID string, req *model.CreateEvaluationRequest) (*model.EvaluationDTO, error) {
	protocol := model.Protocol(req.Protocol)
	if protocol != model.ProtocolOne && protocol != model.ProtocolTwo {
		return nil, model.ErrInvalidProtocol
	}

	eval := model.NewEvaluation(applicationID, evaluatorID, protocol)
	if err := s.repo.Create(ctx, eval); err != nil {
		return nil, err
	}
	return eval.ToDTO(), nil
}

// GetByID fetches an evaluation.
func (s *EvaluationService) GetByID(ctx context.Context, id string) (*model.EvaluationDTO, error) {
	eval, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return eval.ToDTO(), nil
}

// ListByApplication returns every evaluation linked to an application.
func (s *EvaluationService) ListByApplication(ctx context.Context, applicationID string) ([]*model.EvaluationDTO, error) {
	evals, err := s.repo.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*model.EvaluationDTO, len(evals))
	for i, e := range evals {
		dtos[i] = e.ToDTO()
	}
	return dtos, nil
}

// Update patches phase scores, the weighted aggregate, and/or state.
func (s *EvaluationService) Update(ctx context.Context, id string, req *model.UpdateEvaluationRequest) (*model.EvaluationDTO, error) {
	eval, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PhaseScores != nil {
		eval.PhaseScores = req.PhaseScores
		if err := eval.ValidatePhaseScores(); err != nil {
			return nil, err
		}
	}
	if req.WeightedAggregate != nil {
		eval.WeightedAggregate = req.WeightedAggregate
	}
	if req.State != nil {
		state := model.State(*req.State)
		switch state {
		case model.StatePending, model.StateInProgress, model.StateCompleted:
		default:
			return nil, model.ErrInvalidState
		}
		eval.State = state
	}
	eval.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, eval); err != nil {
		return nil, err
	}
	return eval.ToDTO(), nil
}
