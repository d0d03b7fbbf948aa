package model

// CreateEvaluationRequest opens a new evaluation for an application.
type CreateEvaluationRequest struct {
	Protocol string `json:"protocol" binding:"required"`
}

// UpdateEvaluationRequest patches phase scores/aggregate/state.
type UpdateEvaluationRequest struct {
	PhaseScores       map[string]float64 `json:"phase_scores"`
	WeightedAggregate *float64           `json:"weighted_aggregate"`
	State             *string            `json:"state"`
}
