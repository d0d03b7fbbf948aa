package model

// DocumentInput is a base64-decoded (by the transport layer) document
// payload supplied with a submission.
type DocumentInput struct {
	DocumentType string `json:"document_type"`
	FileName     string `json:"file_name"`
	Content      []byte `json:"content"`
}

// ReferenceContactInput is the request-facing shape of a reference.
type ReferenceContactInput struct {
	Company  string `json:"company"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// SubmitApplicationRequest is the payload for POST /applications.
type SubmitApplicationRequest struct {
	OfferID              string                  `json:"offer_id" binding:"required"`
	Answers              MTPAnswers              `json:"answers"`
	ManagementExperience *bool                   `json:"management_experience"`
	References           []ReferenceContactInput `json:"references"`
	Documents            []DocumentInput         `json:"documents" binding:"required"`
}

// UpdateStatusRequest is the payload for PUT /applications/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
