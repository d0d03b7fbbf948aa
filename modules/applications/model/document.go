package model

import "time"

// DocumentType enumerates the document kinds attachable to an application.
// RequiredDocumentTypes must each appear exactly once per submission;
// OptionalDocumentTypes may appear any number of times.
type DocumentType string

const (
	DocCV             DocumentType = "cv"
	DocCoverLetter    DocumentType = "cover_letter"
	DocDiploma        DocumentType = "diploma"
	DocCertificates   DocumentType = "certificates"
	DocRecommendation DocumentType = "recommendation"
	DocPortfolio      DocumentType = "portfolio"
	DocOther          DocumentType = "other"
)

// RequiredDocumentTypes must be present exactly once in every submission.
var RequiredDocumentTypes = []DocumentType{DocCV, DocCoverLetter, DocDiploma}

// OptionalDocumentTypes may be present zero or more times.
var OptionalDocumentTypes = map[DocumentType]bool{
	DocCertificates:   true,
	DocRecommendation: true,
	DocPortfolio:      true,
	DocOther:          true,
}

// AllowedDocumentTypes is the full closed set of valid document_type values.
var AllowedDocumentTypes = func() map[DocumentType]bool {
	m := map[DocumentType]bool{}
	for _, t := range RequiredDocumentTypes {
		m[t] = true
	}
	for t := range OptionalDocumentTypes {
		m[t] = true
	}
	return m
}()

// MaxDocumentSizeBytes is the per-file size cap enforced by the Document
// Validator before any bytes are persisted or projected.
const MaxDocumentSizeBytes = 10 * 1024 * 1024

// pdfMagicBytes is the canonical PDF file signature.
var pdfMagicBytes = []byte("%PDF")

// ApplicationDocument is a validated PDF attached to an application.
type ApplicationDocument struct {
	ID            string
	ApplicationID string
	DocumentType  DocumentType
	FileName      string
	MimeType      string
	SizeBytes     int64
	PageCount     *int
	Content       []byte
	UploadedAt    time.Time
}

// ApplicationDocumentDTO is the JSON-facing view of a document (never
// includes raw content — that's fetched via a dedicated download endpoint).
type ApplicationDocumentDTO struct {
	ID           string    `json:"id"`
	DocumentType string    `json:"document_type"`
	FileName     string    `json:"file_name"`
	SizeBytes    int64     `json:"size_bytes"`
	PageCount    *int      `json:"page_count,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

func (d *ApplicationDocument) ToDTO() *ApplicationDocumentDTO {
	return &ApplicationDocumentDTO{
		ID:           d.ID,
		DocumentType: string(d.DocumentType),
		FileName:     d.FileName,
		SizeBytes:    d.SizeBytes,
		PageCount:    d.PageCount,
		UploadedAt:   d.UploadedAt,
	}
}
