package model

import (
	"time"

	offermodel "github.com/seeg/recruiting-platform/modules/offers/model"
)

// CandidateDimension is the dim_candidates star-schema blob.
type CandidateDimension struct {
	CandidateID     string   `json:"candidate_id"`
	Email           string   `json:"email"`
	FullName        string   `json:"full_name"`
	Skills          []string `json:"skills"`
	YearsExperience int      `json:"years_experience"`
	Education       string   `json:"education"`
	Availability    string   `json:"availability"`
}

// JobOfferDimension is the dim_job_offers star-schema blob. MTP carries the
// offer's question bundle verbatim so downstream consumers can align the
// fact blob's answers by index.
type JobOfferDimension struct {
	OfferID      string               `json:"offer_id"`
	Title        string               `json:"title"`
	Department   string               `json:"department"`
	ContractType string               `json:"contract_type"`
	Visibility   string               `json:"visibility"`
	State        string               `json:"state"`
	MTP          offermodel.MTPBundle `json:"mtp"`
}

// ApplicationFact is the fact_applications star-schema blob.
type ApplicationFact struct {
	ApplicationID        string                 `json:"application_id"`
	CandidateID          string                 `json:"candidate_id"`
	OfferID              string                 `json:"offer_id"`
	Status               string                 `json:"status"`
	Answers              map[string]interface{} `json:"answers"`
	ManagementExperience *bool                  `json:"management_experience,omitempty"`
	DocumentTypes        []string               `json:"document_types"`
	ReferenceCount       int                    `json:"reference_count"`
	CreatedAt            time.Time              `json:"created_at"`
	IngestionDate         string                `json:"ingestion_date"`
}
