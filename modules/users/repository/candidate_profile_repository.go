package repository

import (
	"context"
	"errors"

	"github.com/seeg/recruiting-platform/modules/users/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CandidateProfileRepository implements ports.CandidateProfileRepository
type CandidateProfileRepository struct {
	pool DBTX
}

// NewCandidateProfileRepository creates a new candidate profile repository
func NewCandidateProfileRepository(pool *pgxpool.Pool) *CandidateProfileRepository {
	return &CandidateProfileRepository{pool: pool}
}

// WithTx returns a CandidateProfileRepository bound to an in-flight transaction.
func (r *CandidateProfileRepository) WithTx(tx pgx.Tx) *CandidateProfileRepository {
	return &CandidateProfileRepository{pool: tx}
}

// Upsert inserts or replaces the 1:1 profile row for a candidate user.
func (r *CandidateProfileRepository) Upsert(ctx context.Context, profile *model.CandidateProfile) error {
	query := `
		INSERT INTO candidate_profiles (
			user_id, skills, years_experience, expected_salary_min, expected_salary_max,
			salary_currency, education, availability, portfolio_url, linkedin_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			skills = EXCLUDED.skills,
			years_experience = EXCLUDED.years_experience,
			expected_salary_min = EXCLUDED.expected_salary_min,
			expected_salary_max = EXCLUDED.expected_salary_max,
			salary_currency = EXCLUDED.salary_currency,
			education = EXCLUDED.education,
			availability = EXCLUDED.availability,
			portfolio_url = EXCLUDED.portfolio_url,
			linkedin_url = EXCLUDED.linkedin_url
	`
	_, err := r.pool.Exec(ctx, query,
		profile.UserID,
		profile.Skills,
		profile.YearsExperience,
		profile.ExpectedSalaryMin,
		profile.ExpectedSalaryMax,
		profile.SalaryCurrency,
		profile.Education,
		profile.Availability,
		profile.PortfolioURL,
		profile.LinkedinURL,
	)
	return err
}

// GetByUserID retrieves a candidate profile by its owning user id.
func (r *CandidateProfileRepository) GetByUserID(ctx context.Context, userID string) (*model.CandidateProfile, error) {
	query := `
		SELECT user_id, skills, years_experience, expected_salary_min, expected_salary_max,
			salary_currency, education, availability, portfolio_url, linkedin_url
		FROM candidate_profiles
		WHERE user_id = $1
	`
	profile := &model.CandidateProfile{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Skills,
		&profile.YearsExperience,
		&profile.ExpectedSalaryMin,
		&profile.ExpectedSalaryMax,
		&profile.SalaryCurrency,
		&profile.Education,
		&profile.Availability,
		&profile.PortfolioURL,
		&profile.LinkedinURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return profile, nil
}
