package model

import "time"

// RegisterCandidateRequest represents a candidate signup request.
// CandidateStatus/NoCorporateEmail together decide whether the created
// account starts active or pending.
type RegisterCandidateRequest struct {
	Email            string     `json:"email" binding:"required,email"`
	Password         string     `json:"password" binding:"required,min=8"`
	FirstName        string     `json:"first_name" binding:"required"`
	LastName         string     `json:"last_name" binding:"required"`
	Phone            string     `json:"phone" binding:"required"`
	Sexe             string     `json:"sexe" binding:"required,oneof=M F"`
	DateOfBirth      time.Time  `json:"date_of_birth" binding:"required"`
	CandidateStatus  string     `json:"candidate_status" binding:"required,oneof=internal external"`
	NoCorporateEmail bool       `json:"no_corporate_email"`
	Skills           []string   `json:"skills"`
	YearsExperience  int        `json:"years_experience"`
	ExpectedSalaryMin int64     `json:"expected_salary_min"`
	ExpectedSalaryMax int64     `json:"expected_salary_max"`
	SalaryCurrency   string     `json:"salary_currency"`
	Education        string     `json:"education"`
	Availability     string     `json:"availability"`
	PortfolioURL     *string    `json:"portfolio_url"`
	LinkedinURL      *string    `json:"linkedin_url"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a refresh token request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents a password-mutation request. Mutations
// require a 12-char minimum; the legacy 8-char floor only
// applies to login/historical passwords, never to a new one.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=12"`
}
