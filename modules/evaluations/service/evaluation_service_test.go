package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seeg/recruiting-platform/modules/evaluations/model"
)

type fakeEvaluationRepo struct {
	evals map[string]*model.Evaluation
}

func newFakeEvaluationRepo() *fakeEvaluationRepo {
	return &fakeEvaluationRepo{evals: make(map[string]*model.Evaluation)}
}

func (f *fakeEvaluationRepo) Create(ctx context.Context, eval *model.Evaluation) error {
	eval.ID = "eval-1"
	f.evals[eval.ID] = eval
	return nil
}

func (f *fakeEvaluationRepo) GetByID(ctx context.Context, id string) (*model.Evaluation, error) {
	e, ok := f.evals[id]
	if !ok {
		return nil, model.ErrEvaluationNotFound
	}
	return e, nil
}

func (f *fakeEvaluationRepo) ListByApplication(ctx context.Context, applicationID string) ([]*model.Evaluation, error) {
	var out []*model.Evaluation
	for _, e := range f.evals {
		if e.ApplicationID == applicationID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEvaluationRepo) Update(ctx context.Context, eval *model.Evaluation) error {
	if _, ok := f.evals[eval.ID]; !ok {
		return model.ErrEvaluationNotFound
	}
	f.evals[eval.ID] = eval
	return nil
}

func TestEvaluationService_Create_RejectsInvalidProtocol(t *testing.T) {
	svc := NewEvaluationService(newFakeEvaluationRepo())
	_, err := svc.Create(context.Background(), "app-1", "recruiter-1", &model.CreateEvaluationRequest{Protocol: "protocol_3"})
	require.ErrorIs(t, err, model.ErrInvalidProtocol)
}

func TestEvaluationService_Update_RejectsOutOfRangeScore(t *testing.T) {
	repo := newFakeEvaluationRepo()
	svc := NewEvaluationService(repo)

	created, err := svc.Create(context.Background(), "app-1", "recruiter-1", &model.CreateEvaluationRequest{Protocol: "protocol_1"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, &model.UpdateEvaluationRequest{
		PhaseScores: map[string]float64{"interview": 25},
	})
	require.ErrorIs(t, err, model.ErrPhaseScoreOutOfRange)
}

func TestEvaluationService_Update_AcceptsValidScoresAndState(t *testing.T) {
	repo := newFakeEvaluationRepo()
	svc := NewEvaluationService(repo)

	created, err := svc.Create(context.Background(), "app-1", "recruiter-1", &model.CreateEvaluationRequest{Protocol: "protocol_1"})
	require.NoError(t, err)

	state := "completed"
	aggregate := 17.5
	updated, err := svc.Update(context.Background(), created.ID, &model.UpdateEvaluationRequest{
		PhaseScores:       map[string]float64{"interview": 18, "technical": 17},
		WeightedAggregate: &aggregate,
		State:             &state,
	})
	require.NoError(t, err)
	require.Equal(t, "completed", updated.State)
	require.Equal(t, 17.5, *updated.WeightedAggregate)
}
