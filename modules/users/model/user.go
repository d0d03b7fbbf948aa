package model

import (
	"time"
)

// Role is the platform-wide principal role.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleRecruiter Role = "recruiter"
	RoleObserver  Role = "observer"
	RoleCandidate Role = "candidate"
)

// Status is the account lifecycle state.
type Status string

const (
	StatusActive  Status = "active"
	StatusPending Status = "pending"
	StatusBlocked Status = "blocked"
)

// CandidateStatus distinguishes the two candidate sub-types that offer
// visibility and account activation key off of.
type CandidateStatus string

const (
	CandidateInternal CandidateStatus = "internal"
	CandidateExternal CandidateStatus = "external"
)

// Sexe is deliberately a closed two-value enum.
type Sexe string

const (
	SexeM Sexe = "M"
	SexeF Sexe = "F"
)

// User is a platform account: admin, recruiter, observer, or candidate.
type User struct {
	ID               string
	Email            string
	PasswordHash     string
	Role             Role
	Status           Status
	FirstName        string
	LastName         string
	Phone            string
	Sexe             Sexe
	DateOfBirth      time.Time
	Matricule        *int
	CandidateStatus  *CandidateStatus
	NoCorporateEmail bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewUser constructs a User in its initial lifecycle state. Candidates who
// are internal-without-corporate-email start pending; everyone else starts
// active.
func NewUser(email, passwordHash string, role Role, firstName, lastName, phone string, sexe Sexe, dob time.Time) *User {
	now := time.Now().UTC()
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Status:       StatusActive,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		Sexe:         sexe,
		DateOfBirth:  dob,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsCandidate reports whether the user holds the candidate role.
func (u *User) IsCandidate() bool {
	return u.Role == RoleCandidate
}

// UserDTO is the redacted, JSON-facing view of a User (no password hash).
type UserDTO struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Role             Role      `json:"role"`
	Status           Status    `json:"status"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Phone            string    `json:"phone"`
	Sexe             Sexe      `json:"sexe"`
	DateOfBirth      time.Time `json:"date_of_birth"`
	Matricule        *int      `json:"matricule,omitempty"`
	CandidateStatus  *string   `json:"candidate_status,omitempty"`
	NoCorporateEmail bool      `json:"no_corporate_email,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToDTO converts a User to its redacted DTO.
func (u *User) ToDTO() *UserDTO {
	var cs *string
	if u.CandidateStatus != nil {
		s := string(*u.CandidateStatus)
		cs = &s
	}
	return &UserDTO{
		ID:               u.ID,
		Email:            u.Email,
		Role:             u.Role,
		Status:           u.Status,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Phone:            u.Phone,
		Sexe:             u.Sexe,
		DateOfBirth:      u.DateOfBirth,
		Matricule:        u.Matricule,
		CandidateStatus:  cs,
		NoCorporateEmail: u.NoCorporateEmail,
		CreatedAt:        u.CreatedAt,
	}
}
