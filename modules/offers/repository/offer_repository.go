package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/seeg/recruiting-platform/modules/offers/model"
	"github.com/seeg/recruiting-platform/modules/offers/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OfferRepository implements ports.OfferRepository against Postgres, storing
// the MTP bundle as jsonb so question order is preserved verbatim.
type OfferRepository struct {
	pool *pgxpool.Pool
}

// NewOfferRepository creates a new offer repository.
func NewOfferRepository(pool *pgxpool.Pool) *OfferRepository {
	return &OfferRepository{pool: pool}
}

var _ ports.OfferRepository = (*OfferRepository)(nil)

const selectOfferColumns = `
	id, recruiter_id, title, description, location, department, contract_type,
	salary_min, salary_max, currency, visibility, mtp, state, created_at, updated_at
`

func scanOffer(row pgx.Row) (*model.JobOffer, error) {
	o := &model.JobOffer{}
	var mtpRaw []byte
	err := row.Scan(
		&o.ID, &o.RecruiterID, &o.Title, &o.Description, &o.Location, &o.Department,
		&o.ContractType, &o.SalaryMin, &o.SalaryMax, &o.Currency, &o.Visibility,
		&mtpRaw, &o.State, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOfferNotFound
		}
		return nil, err
	}
	if len(mtpRaw) > 0 {
		if err := json.Unmarshal(mtpRaw, &o.MTP); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Create inserts a new JobOffer.
func (r *OfferRepository) Create(ctx context.Context, offer *model.JobOffer) error {
	mtpRaw, err := json.Marshal(offer.MTP)
	if err != nil {
		return err
	}
	offer.ID = uuid.New().String()

	query := `
		INSERT INTO job_offers (
			id, recruiter_id, title, description, location, department, contract_type,
			salary_min, salary_max, currency, visibility, mtp, state, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`
	_, err = r.pool.Exec(ctx, query,
		offer.ID, offer.RecruiterID, offer.Title, offer.Description, offer.Location, offer.Department,
		offer.ContractType, offer.SalaryMin, offer.SalaryMax, offer.Currency, offer.Visibility,
		mtpRaw, offer.State, offer.CreatedAt, offer.UpdatedAt,
	)
	return err
}

// GetByID retrieves an offer by id.
func (r *OfferRepository) GetByID(ctx context.Context, offerID string) (*model.JobOffer, error) {
	query := `SELECT ` + selectOfferColumns + ` FROM job_offers WHERE id = $1`
	return scanOffer(r.pool.QueryRow(ctx, query, offerID))
}

// List retrieves offers matching opts, intersecting the free-text/contract/
// department filters with the visibility set at query time so forbidden
// rows never reach the caller.
func (r *OfferRepository) List(ctx context.Context, opts ports.ListOptions) ([]*model.JobOffer, int, error) {
	where := "TRUE"
	args := []interface{}{}
	argN := 1

	if opts.Visibility != nil {
		where += " AND visibility = ANY($" + strconv.Itoa(argN) + ")"
		args = append(args, opts.Visibility)
		argN++
	}
	if opts.Filter.ContractType != "" {
		where += " AND contract_type = $" + strconv.Itoa(argN)
		args = append(args, opts.Filter.ContractType)
		argN++
	}
	if opts.Filter.Department != "" {
		where += " AND department = $" + strconv.Itoa(argN)
		args = append(args, opts.Filter.Department)
		argN++
	}
	if opts.Filter.Title != "" {
		where += " AND title ILIKE $" + strconv.Itoa(argN)
		args = append(args, "%"+opts.Filter.Title+"%")
		argN++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM job_offers WHERE ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + selectOfferColumns + ` FROM job_offers WHERE ` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(argN) + ` OFFSET $` + strconv.Itoa(argN+1)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var offers []*model.JobOffer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, 0, err
		}
		offers = append(offers, o)
	}
	return offers, total, rows.Err()
}

// Update persists mutable offer fields (not state — see SetState).
func (r *OfferRepository) Update(ctx context.Context, offer *model.JobOffer) error {
	mtpRaw, err := json.Marshal(offer.MTP)
	if err != nil {
		return err
	}
	query := `
		UPDATE job_offers
		SET title = $2, description = $3, location = $4, department = $5, contract_type = $6,
		    salary_min = $7, salary_max = $8, currency = $9, visibility = $10, mtp = $11, updated_at = $12
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query,
		offer.ID, offer.Title, offer.Description, offer.Location, offer.Department, offer.ContractType,
		offer.SalaryMin, offer.SalaryMax, offer.Currency, offer.Visibility, mtpRaw, offer.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return model.ErrOfferNotFound
	}
	return nil
}

// SetState transitions the offer's lifecycle state.
func (r *OfferRepository) SetState(ctx context.Context, offerID string, state model.State) error {
	result, err := r.pool.Exec(ctx, `UPDATE job_offers SET state = $2, updated_at = now() WHERE id = $1`, offerID, state)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return model.ErrOfferNotFound
	}
	return nil
}

// Delete removes an offer.
func (r *OfferRepository) Delete(ctx context.Context, offerID string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM job_offers WHERE id = $1`, offerID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return model.ErrOfferNotFound
	}
	return nil
}
