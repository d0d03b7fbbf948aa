package model

// CandidateProfile is 1:1 with a User holding the candidate role.
// Money fields are integer minor units (cents) to avoid float rounding;
// only min <= max and non-negativity are required.
type CandidateProfile struct {
	UserID              string
	Skills              []string
	YearsExperience     int
	ExpectedSalaryMin   int64
	ExpectedSalaryMax   int64
	SalaryCurrency      string
	Education           string
	Availability        string
	PortfolioURL        *string
	LinkedinURL         *string
}

// CandidateProfileDTO is the JSON-facing view of a CandidateProfile.
type CandidateProfileDTO struct {
	UserID            string   `json:"user_id"`
	Skills            []string `json:"skills"`
	YearsExperience   int      `json:"years_experience"`
	ExpectedSalaryMin int64    `json:"expected_salary_min"`
	ExpectedSalaryMax int64    `json:"expected_salary_max"`
	SalaryCurrency    string   `json:"salary_currency"`
	Education         string   `json:"education"`
	Availability      string   `json:"availability"`
	PortfolioURL      *string  `json:"portfolio_url,omitempty"`
	LinkedinURL       *string  `json:"linkedin_url,omitempty"`
}

// ToDTO converts a CandidateProfile to its DTO.
func (p *CandidateProfile) ToDTO() *CandidateProfileDTO {
	return &CandidateProfileDTO{
		UserID:            p.UserID,
		Skills:            p.Skills,
		YearsExperience:   p.YearsExperience,
		ExpectedSalaryMin: p.ExpectedSalaryMin,
		ExpectedSalaryMax: p.ExpectedSalaryMax,
		SalaryCurrency:    p.SalaryCurrency,
		Education:         p.Education,
		Availability:      p.Availability,
		PortfolioURL:      p.PortfolioURL,
		LinkedinURL:       p.LinkedinURL,
	}
}

// Validate enforces the min <= max, non-negative salary invariant.
func (p *CandidateProfile) Validate() error {
	if p.YearsExperience < 0 {
		return ErrInvalidProfile
	}
	if p.ExpectedSalaryMin < 0 || p.ExpectedSalaryMax < 0 {
		return ErrInvalidProfile
	}
	if p.ExpectedSalaryMin > p.ExpectedSalaryMax {
		return ErrInvalidProfile
	}
	return nil
}
