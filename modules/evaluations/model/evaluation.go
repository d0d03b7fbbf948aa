package model

import "time"

// Protocol distinguishes the two evaluation phases an application goes
// through; each carries its own phase score set and weighting. The weighting
// formula itself lives with the evaluators, only the aggregate value is
// persisted.
type Protocol string

const (
	ProtocolOne Protocol = "protocol_1"
	ProtocolTwo Protocol = "protocol_2"
)

// State is the evaluation's own lifecycle, independent of the application's.
type State string

const (
	StatePending    State = "pending"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

// MinPhaseScore and MaxPhaseScore bound every individual phase score
//.
const (
	MinPhaseScore = 0
	MaxPhaseScore = 20
)

// Evaluation is a Protocol-1 or Protocol-2 scoring record linked to an
// Application. Persistence only — the platform stores whatever phase scores
// and aggregate the evaluator submits; it does not compute or validate the
// weighting formula.
type Evaluation struct {
	ID              string
	ApplicationID   string
	Protocol        Protocol
	EvaluatorID     string
	PhaseScores     map[string]float64
	WeightedAggregate *float64
	State           State
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewEvaluation constructs a pending Evaluation.
func NewEvaluation(applicationID, evaluatorID string, protocol Protocol) *Evaluation {
	now := time.Now().UTC()
	return &Evaluation{
		ApplicationID: applicationID,
		EvaluatorID:   evaluatorID,
		Protocol:      protocol,
		PhaseScores:   map[string]float64{},
		State:         StatePending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ValidatePhaseScores checks every phase score is within [0, 20].
func (e *Evaluation) ValidatePhaseScores() error {
	for _, score := range e.PhaseScores {
		if score < MinPhaseScore || score > MaxPhaseScore {
			return ErrPhaseScoreOutOfRange
		}
	}
	return nil
}

// EvaluationDTO is the JSON-facing view of an Evaluation.
type EvaluationDTO struct {
	ID                string             `json:"id"`
	ApplicationID     string             `json:"application_id"`
	Protocol          string             `json:"protocol"`
	EvaluatorID       string             `json:"evaluator_id"`
	PhaseScores       map[string]float64 `json:"phase_scores"`
	WeightedAggregate *float64           `json:"weighted_aggregate,omitempty"`
	State             string             `json:"state"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

func (e *Evaluation) ToDTO() *EvaluationDTO {
	return &EvaluationDTO{
		ID:                e.ID,
		ApplicationID:     e.ApplicationID,
		Protocol:          string(e.Protocol),
		EvaluatorID:       e.EvaluatorID,
		PhaseScores:       e.PhaseScores,
		WeightedAggregate: e.WeightedAggregate,
		State:             string(e.State),
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}
