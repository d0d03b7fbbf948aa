package model

// CreateOfferRequest creates a JobOffer in the draft state.
type CreateOfferRequest struct {
	Title        string    `json:"title" binding:"required,min=1,max=255"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Department   string    `json:"department"`
	ContractType string    `json:"contract_type" binding:"required,oneof=CDI CDD Stage Alternance Freelance"`
	SalaryMin    *int64    `json:"salary_min,omitempty"`
	SalaryMax    *int64    `json:"salary_max,omitempty"`
	Currency     string    `json:"currency,omitempty"`
	Visibility   string    `json:"visibility" binding:"required,oneof=all internal external"`
	MTP          MTPBundle `json:"mtp"`
}

// UpdateOfferRequest patches mutable offer fields. State transitions go
// through UpdateOfferStateRequest so lifecycle changes stay auditable.
type UpdateOfferRequest struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Department   *string    `json:"department,omitempty"`
	ContractType *string    `json:"contract_type,omitempty"`
	SalaryMin    *int64     `json:"salary_min,omitempty"`
	SalaryMax    *int64     `json:"salary_max,omitempty"`
	Currency     *string    `json:"currency,omitempty"`
	Visibility   *string    `json:"visibility,omitempty"`
	MTP          *MTPBundle `json:"mtp,omitempty"`
}

// UpdateOfferStateRequest transitions an offer's lifecycle state.
type UpdateOfferStateRequest struct {
	State string `json:"state" binding:"required,oneof=draft open closed"`
}

// ListOffersFilter carries the free-text/contract/department list filters,
// intersected with the visibility filter at query time.
type ListOffersFilter struct {
	ContractType string
	Department   string
	Title        string
}
