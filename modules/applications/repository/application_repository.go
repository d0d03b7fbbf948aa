package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seeg/recruiting-platform/modules/applications/model"
	"github.com/seeg/recruiting-platform/modules/applications/ports"
)

// ApplicationRepository implements ports.ApplicationRepository against
// Postgres, writing the Application + ApplicationDocument + ReferenceContact
// aggregate in a single transaction.
type ApplicationRepository struct {
	db   ports.DBTX
	pool *pgxpool.Pool
}

// NewApplicationRepository creates a pool-backed repository.
func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: pool, pool: pool}
}

var _ ports.ApplicationRepository = (*ApplicationRepository)(nil)

// WithTx returns a repository bound to tx so the Application Writer commits
// all aggregate tables atomically.
func (r *ApplicationRepository) WithTx(tx pgx.Tx) ports.ApplicationRepository {
	return &ApplicationRepository{db: tx, pool: r.pool}
}

const selectApplicationColumns = `
	id, candidate_id, offer_id, status, answers, management_experience, created_at, updated_at
`

func scanApplication(row pgx.Row) (*model.Application, error) {
	a := &model.Application{}
	var answersRaw []byte
	err := row.Scan(&a.ID, &a.CandidateID, &a.OfferID, &a.Status, &answersRaw, &a.ManagementExperience, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrApplicationNotFound
		}
		return nil, err
	}
	if len(answersRaw) > 0 {
		if err := json.Unmarshal(answersRaw, &a.Answers); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// ExistsActiveForCandidateOffer row-locks matching rows (FOR UPDATE) so a
// submission racing an existing active application waits on its row. When
// no active row exists yet there is nothing to lock; two concurrent first
// submissions both pass this check and the partial unique index
// uq_applications_active_candidate_offer rejects the second insert.
func (r *ApplicationRepository) ExistsActiveForCandidateOffer(ctx context.Context, candidateID, offerID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM applications
			WHERE candidate_id = $1 AND offer_id = $2 AND status != 'withdrawn'
			FOR UPDATE
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, candidateID, offerID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts the full aggregate: application row, then its documents and
// references. Caller is expected to have started a transaction via WithTx.
func (r *ApplicationRepository) Create(ctx context.Context, app *model.Application, docs []*model.ApplicationDocument, refs []*model.ReferenceContact) error {
	answersRaw, err := json.Marshal(app.Answers)
	if err != nil {
		return err
	}
	app.ID = uuid.New().String()

	_, err = r.db.Exec(ctx, `
		INSERT INTO applications (id, candidate_id, offer_id, status, answers, management_experience, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, app.ID, app.CandidateID, app.OfferID, app.Status, answersRaw, app.ManagementExperience, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		return err
	}

	for _, d := range docs {
		d.ApplicationID = app.ID
		d.ID = uuid.New().String()
		d.UploadedAt = app.CreatedAt
		_, err = r.db.Exec(ctx, `
			INSERT INTO application_documents (id, application_id, document_type, file_name, mime_type, size_bytes, page_count, content, uploaded_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`, d.ID, d.ApplicationID, d.DocumentType, d.FileName, d.MimeType, d.SizeBytes, d.PageCount, d.Content, d.UploadedAt)
		if err != nil {
			return err
		}
	}

	for _, ref := range refs {
		ref.ApplicationID = app.ID
		ref.ID = uuid.New().String()
		_, err = r.db.Exec(ctx, `
			INSERT INTO reference_contacts (id, application_id, company, full_name, email, phone)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, ref.ID, ref.ApplicationID, ref.Company, ref.FullName, ref.Email, ref.Phone)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves an application by id.
func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*model.Application, error) {
	query := `SELECT ` + selectApplicationColumns + ` FROM applications WHERE id = $1`
	return scanApplication(r.db.QueryRow(ctx, query, id))
}

// GetDocuments returns all documents (minus content, kept lazy per-doc) for an application.
func (r *ApplicationRepository) GetDocuments(ctx context.Context, applicationID string) ([]*model.ApplicationDocument, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, application_id, document_type, file_name, mime_type, size_bytes, page_count, uploaded_at
		FROM application_documents WHERE application_id = $1 ORDER BY uploaded_at
	`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*model.ApplicationDocument
	for rows.Next() {
		d := &model.ApplicationDocument{}
		if err := rows.Scan(&d.ID, &d.ApplicationID, &d.DocumentType, &d.FileName, &d.MimeType, &d.SizeBytes, &d.PageCount, &d.UploadedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// GetDocument fetches a single document including its raw content, for the
// document-download endpoint.
func (r *ApplicationRepository) GetDocument(ctx context.Context, applicationID, documentID string) (*model.ApplicationDocument, error) {
	query := `
		SELECT id, application_id, document_type, file_name, mime_type, size_bytes, page_count, content, uploaded_at
		FROM application_documents WHERE application_id = $1 AND id = $2
	`
	d := &model.ApplicationDocument{}
	err := r.db.QueryRow(ctx, query, applicationID, documentID).Scan(
		&d.ID, &d.ApplicationID, &d.DocumentType, &d.FileName, &d.MimeType, &d.SizeBytes, &d.PageCount, &d.Content, &d.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrApplicationNotFound
		}
		return nil, err
	}
	return d, nil
}

// GetReferences returns the reference contacts for an application.
func (r *ApplicationRepository) GetReferences(ctx context.Context, applicationID string) ([]*model.ReferenceContact, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, application_id, company, full_name, email, phone FROM reference_contacts WHERE application_id = $1
	`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []*model.ReferenceContact
	for rows.Next() {
		ref := &model.ReferenceContact{}
		if err := rows.Scan(&ref.ID, &ref.ApplicationID, &ref.Company, &ref.FullName, &ref.Email, &ref.Phone); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// ListByCandidate returns a candidate's own applications, newest first.
func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID string, limit, offset int) ([]*model.Application, int, error) {
	return r.list(ctx, "candidate_id = $1", candidateID, limit, offset)
}

// ListByOffer returns all applications against a given offer, for recruiters.
func (r *ApplicationRepository) ListByOffer(ctx context.Context, offerID string, limit, offset int) ([]*model.Application, int, error) {
	return r.list(ctx, "offer_id = $1", offerID, limit, offset)
}

func (r *ApplicationRepository) list(ctx context.Context, where, arg string, limit, offset int) ([]*model.Application, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE `+where, arg).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + selectApplicationColumns + ` FROM applications WHERE ` + where + ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, arg, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var apps []*model.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		apps = append(apps, a)
	}
	return apps, total, rows.Err()
}

// UpdateStatus transitions an application's status (recruiter-driven side of
// the state machine; candidate-driven Withdraw goes through the same call).
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	result, err := r.db.Exec(ctx, `UPDATE applications SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return model.ErrApplicationNotFound
	}
	return nil
}
