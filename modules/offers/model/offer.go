package model

import "time"

// ContractType is the employment contract offered.
type ContractType string

const (
	ContractCDI         ContractType = "CDI"
	ContractCDD         ContractType = "CDD"
	ContractStage       ContractType = "Stage"
	ContractAlternance  ContractType = "Alternance"
	ContractFreelance   ContractType = "Freelance"
)

// Visibility controls which candidate sub-type may list and apply to an
// offer.
type Visibility string

const (
	VisibilityAll      Visibility = "all"
	VisibilityInternal Visibility = "internal"
	VisibilityExternal Visibility = "external"
)

// State is the offer lifecycle: draft -> open -> closed. Only open offers
// accept applications.
type State string

const (
	StateDraft  State = "draft"
	StateOpen   State = "open"
	StateClosed State = "closed"
)

// MTPBundle is the ordered triple of question lists an offer carries.
// Indices are stable: an application's answers reference positions in these
// lists, so the lists are never re-sorted once created.
type MTPBundle struct {
	Metier    []string `json:"metier"`
	Talent    []string `json:"talent"`
	Paradigme []string `json:"paradigme"`
}

// Bounds: metier list <= 7, talent/paradigme lists <= 3.
const (
	MaxMetierQuestions    = 7
	MaxTalentQuestions    = 3
	MaxParadigmeQuestions = 3
)

// JobOffer is a recruiter-owned posting candidates apply against.
type JobOffer struct {
	ID           string
	RecruiterID  string
	Title        string
	Description  string
	Location     string
	Department   string
	ContractType ContractType
	SalaryMin    *int64
	SalaryMax    *int64
	Currency     string
	Visibility   Visibility
	MTP          MTPBundle
	State        State
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewJobOffer constructs a draft JobOffer.
func NewJobOffer(recruiterID, title, description, location, department string, contractType ContractType, visibility Visibility, mtp MTPBundle) *JobOffer {
	now := time.Now().UTC()
	return &JobOffer{
		RecruiterID:  recruiterID,
		Title:        title,
		Description:  description,
		Location:     location,
		Department:   department,
		ContractType: contractType,
		Visibility:   visibility,
		MTP:          mtp,
		State:        StateDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ValidateBundle enforces the per-dimension list bounds and rejects empty
// question strings.
func (o *JobOffer) ValidateBundle() error {
	if len(o.MTP.Metier) > MaxMetierQuestions {
		return ErrMTPBundleTooLarge
	}
	if len(o.MTP.Talent) > MaxTalentQuestions {
		return ErrMTPBundleTooLarge
	}
	if len(o.MTP.Paradigme) > MaxParadigmeQuestions {
		return ErrMTPBundleTooLarge
	}
	for _, dim := range [][]string{o.MTP.Metier, o.MTP.Talent, o.MTP.Paradigme} {
		for _, q := range dim {
			if len(trimSpace(q)) == 0 {
				return ErrMTPQuestionEmpty
			}
		}
	}
	return nil
}

// ValidateSalaryRange enforces min <= max, non-negative, when both set.
func (o *JobOffer) ValidateSalaryRange() error {
	if o.SalaryMin != nil && *o.SalaryMin < 0 {
		return ErrInvalidSalaryRange
	}
	if o.SalaryMax != nil && *o.SalaryMax < 0 {
		return ErrInvalidSalaryRange
	}
	if o.SalaryMin != nil && o.SalaryMax != nil && *o.SalaryMin > *o.SalaryMax {
		return ErrInvalidSalaryRange
	}
	return nil
}

func trimSpace(s string) string {
	i, j := 0, len(s)
	for i < j && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	for j > i && (s[j-1] == ' ' || s[j-1] == '\t' || s[j-1] == '\n') {
		j--
	}
	return s[i:j]
}

// JobOfferDTO is the JSON-facing view of a JobOffer.
type JobOfferDTO struct {
	ID           string     `json:"id"`
	RecruiterID  string     `json:"recruiter_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Location     string     `json:"location"`
	Department   string     `json:"department"`
	ContractType string     `json:"contract_type"`
	SalaryMin    *int64     `json:"salary_min,omitempty"`
	SalaryMax    *int64     `json:"salary_max,omitempty"`
	Currency     string     `json:"currency,omitempty"`
	Visibility   string     `json:"visibility"`
	MTP          MTPBundle  `json:"mtp"`
	State        string     `json:"state"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ToDTO converts a JobOffer to its DTO.
func (o *JobOffer) ToDTO() *JobOfferDTO {
	return &JobOfferDTO{
		ID:           o.ID,
		RecruiterID:  o.RecruiterID,
		Title:        o.Title,
		Description:  o.Description,
		Location:     o.Location,
		Department:   o.Department,
		ContractType: string(o.ContractType),
		SalaryMin:    o.SalaryMin,
		SalaryMax:    o.SalaryMax,
		Currency:     o.Currency,
		Visibility:   string(o.Visibility),
		MTP:          o.MTP,
		State:        string(o.State),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// VisibleTo reports the visibility set a caller may see:
// external candidates see {all, external}; internal see {all, internal};
// recruiter/admin see everything (nil means no filter).
func VisibleTo(role string, candidateStatus *string) []Visibility {
	if role == "recruiter" || role == "admin" {
		return nil
	}
	if candidateStatus != nil && *candidateStatus == "internal" {
		return []Visibility{VisibilityAll, VisibilityInternal}
	}
	return []Visibility{VisibilityAll, VisibilityExternal}
}

// CanSee reports whether a caller with the given role/candidate-status may
// view an offer with the given visibility — used for the direct GET-by-id
// path.
func CanSee(visibility Visibility, role string, candidateStatus *string) bool {
	allowed := VisibleTo(role, candidateStatus)
	if allowed == nil {
		return true
	}
	for _, v := range allowed {
		if v == visibility {
			return true
		}
	}
	return false
}
