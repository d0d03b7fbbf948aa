package model

import "time"

// Status is the recruiter-driven application lifecycle. The
// candidate side is immutable after submission except via Withdraw.
type Status string

const (
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusInterview   Status = "interview"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
	StatusWithdrawn   Status = "withdrawn"
)

// ValidStatuses is the closed set of application statuses.
var ValidStatuses = map[Status]bool{
	StatusSubmitted: true, StatusUnderReview: true, StatusInterview: true,
	StatusAccepted: true, StatusRejected: true, StatusWithdrawn: true,
}

// allowedTransitions models the recruiter-driven status state machine.
// Withdrawn is terminal and reachable from any non-terminal state by the
// candidate themselves (handled separately in Withdraw).
var allowedTransitions = map[Status]map[Status]bool{
	StatusSubmitted:   {StatusUnderReview: true, StatusRejected: true, StatusWithdrawn: true},
	StatusUnderReview: {StatusInterview: true, StatusRejected: true, StatusWithdrawn: true},
	StatusInterview:   {StatusAccepted: true, StatusRejected: true, StatusWithdrawn: true},
	StatusAccepted:    {},
	StatusRejected:    {},
	StatusWithdrawn:   {},
}

// CanTransition reports whether from -> to is an allowed recruiter-driven
// status transition.
func CanTransition(from, to Status) bool {
	next, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return next[to]
}

// MTPAnswers mirrors a JobOffer's MTPBundle shape; each dimension's answers
// are aligned by index to the offer's questions. A tagged structure, not
// any-shape JSON.
type MTPAnswers struct {
	Metier    []string `json:"metier"`
	Talent    []string `json:"talent"`
	Paradigme []string `json:"paradigme"`
}

// ReferenceContact is a structured reference supplied with an application.
type ReferenceContact struct {
	ID            string
	ApplicationID string
	Company       string
	FullName      string
	Email         string
	Phone         string
}

// ReferenceContactDTO is the JSON-facing view of a ReferenceContact.
type ReferenceContactDTO struct {
	Company  string `json:"company"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

func (r *ReferenceContact) ToDTO() *ReferenceContactDTO {
	return &ReferenceContactDTO{Company: r.Company, FullName: r.FullName, Email: r.Email, Phone: r.Phone}
}

// Application is the central fact linking exactly one candidate to one
// JobOffer.
type Application struct {
	ID                   string
	CandidateID          string
	OfferID              string
	Status               Status
	Answers              MTPAnswers
	ManagementExperience *bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewApplication constructs a freshly submitted Application.
func NewApplication(candidateID, offerID string, answers MTPAnswers, managementExperience *bool) *Application {
	now := time.Now().UTC()
	return &Application{
		CandidateID:          candidateID,
		OfferID:              offerID,
		Status:               StatusSubmitted,
		Answers:              answers,
		ManagementExperience: managementExperience,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// ApplicationDTO is the JSON-facing view of an Application.
type ApplicationDTO struct {
	ID                   string                 `json:"id"`
	CandidateID          string                 `json:"candidate_id"`
	OfferID              string                 `json:"offer_id"`
	Status               string                 `json:"status"`
	Answers              MTPAnswers             `json:"answers"`
	ManagementExperience *bool                  `json:"management_experience,omitempty"`
	Documents            []*ApplicationDocumentDTO `json:"documents,omitempty"`
	References           []*ReferenceContactDTO `json:"references,omitempty"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
}

// ToDTO converts an Application (with preloaded documents/references) to its DTO.
func (a *Application) ToDTO(documents []*ApplicationDocument, references []*ReferenceContact) *ApplicationDTO {
	dto := &ApplicationDTO{
		ID:                   a.ID,
		CandidateID:          a.CandidateID,
		OfferID:              a.OfferID,
		Status:               string(a.Status),
		Answers:              a.Answers,
		ManagementExperience: a.ManagementExperience,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
	for _, d := range documents {
		dto.Documents = append(dto.Documents, d.ToDTO())
	}
	for _, r := range references {
		dto.References = append(dto.References, r.ToDTO())
	}
	return dto
}
