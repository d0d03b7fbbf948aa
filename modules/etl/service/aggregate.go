package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/seeg/recruiting-platform/modules/etl/model"
	offermodel "github.com/seeg/recruiting-platform/modules/offers/model"
)

// aggregate bundles everything Projector.Run needs to build the three
// dimension/fact JSON documents and the document blobs, loaded eagerly in
// one read-only transaction.
type aggregate struct {
	createdAt time.Time
	candidate model.CandidateDimension
	offer     model.JobOfferDimension
	fact      model.ApplicationFact
	documents []rawDocument
}

func (p *Projector) loadAggregate(ctx context.Context, tx pgx.Tx, applicationID string) (*aggregate, error) {
	var (
		candidateID          string
		offerID              string
		status               string
		answersRaw           []byte
		managementExperience *bool
		createdAt            time.Time
	)
	err := tx.QueryRow(ctx, `
		SELECT candidate_id, offer_id, status, answers, management_experience, created_at
		FROM applications WHERE id = $1
	`, applicationID).Scan(&candidateID, &offerID, &status, &answersRaw, &managementExperience, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrApplicationNotFound
		}
		return nil, err
	}

	var answers map[string]interface{}
	if len(answersRaw) > 0 {
		if err := json.Unmarshal(answersRaw, &answers); err != nil {
			return nil, err
		}
	}

	agg := &aggregate{createdAt: createdAt}

	var email, firstName, lastName string
	err = tx.QueryRow(ctx, `SELECT email, first_name, last_name FROM users WHERE id = $1`, candidateID).Scan(&email, &firstName, &lastName)
	if err != nil {
		return nil, err
	}
	fullName := firstName + " " + lastName

	var skills []string
	var yearsExperience int
	var education, availability string
	err = tx.QueryRow(ctx, `
		SELECT skills, years_experience, education, availability FROM candidate_profiles WHERE user_id = $1
	`, candidateID).Scan(&skills, &yearsExperience, &education, &availability)
	if err != nil {
		return nil, err
	}

	agg.candidate = model.CandidateDimension{
		CandidateID:     candidateID,
		Email:           email,
		FullName:        fullName,
		Skills:          skills,
		YearsExperience: yearsExperience,
		Education:       education,
		Availability:    availability,
	}

	var title, department, contractType, visibility, state string
	var mtpRaw []byte
	err = tx.QueryRow(ctx, `
		SELECT title, department, contract_type, visibility, state, mtp FROM job_offers WHERE id = $1
	`, offerID).Scan(&title, &department, &contractType, &visibility, &state, &mtpRaw)
	if err != nil {
		return nil, err
	}
	var mtp offermodel.MTPBundle
	if len(mtpRaw) > 0 {
		if err := json.Unmarshal(mtpRaw, &mtp); err != nil {
			return nil, err
		}
	}
	agg.offer = model.JobOfferDimension{
		OfferID:      offerID,
		Title:        title,
		Department:   department,
		ContractType: contractType,
		Visibility:   visibility,
		State:        state,
		MTP:          mtp,
	}

	rows, err := tx.Query(ctx, `
		SELECT document_type, file_name, content FROM application_documents WHERE application_id = $1
	`, applicationID)
	if err != nil {
		return nil, err
	}
	var docTypes []string
	for rows.Next() {
		var d rawDocument
		if err := rows.Scan(&d.DocumentType, &d.FileName, &d.Content); err != nil {
			rows.Close()
			return nil, err
		}
		agg.documents = append(agg.documents, d)
		docTypes = append(docTypes, d.DocumentType)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var referenceCount int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM reference_contacts WHERE application_id = $1`, applicationID).Scan(&referenceCount)
	if err != nil {
		return nil, err
	}

	agg.fact = model.ApplicationFact{
		ApplicationID:        applicationID,
		CandidateID:          candidateID,
		OfferID:              offerID,
		Status:               status,
		Answers:              answers,
		ManagementExperience: managementExperience,
		DocumentTypes:        docTypes,
		ReferenceCount:       referenceCount,
		CreatedAt:            createdAt,
		IngestionDate:        createdAt.UTC().Format("2006-01-02"),
	}

	return agg, nil
}
