package model

import "time"

// AccessRequestStatus is the lifecycle of an AccessRequest.
type AccessRequestStatus string

const (
	AccessRequestPending  AccessRequestStatus = "pending"
	AccessRequestApproved AccessRequestStatus = "approved"
	AccessRequestRejected AccessRequestStatus = "rejected"
)

// AccessRequest is created automatically when an internal-without-corporate
// email candidate signs up, and resolved by an admin activating or
// rejecting the account.
type AccessRequest struct {
	ID         string
	UserID     string
	Status     AccessRequestStatus
	ApproverID *string
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

// NewAccessRequest constructs a pending AccessRequest for userID.
func NewAccessRequest(userID string) *AccessRequest {
	return &AccessRequest{
		UserID:    userID,
		Status:    AccessRequestPending,
		CreatedAt: time.Now().UTC(),
	}
}

// AccessRequestDTO is the JSON-facing view of an AccessRequest.
type AccessRequestDTO struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Status     string     `json:"status"`
	ApproverID *string    `json:"approver_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// ToDTO converts an AccessRequest to its DTO.
func (a *AccessRequest) ToDTO() *AccessRequestDTO {
	return &AccessRequestDTO{
		ID:         a.ID,
		UserID:     a.UserID,
		Status:     string(a.Status),
		ApproverID: a.ApproverID,
		CreatedAt:  a.CreatedAt,
		ResolvedAt: a.ResolvedAt,
	}
}
