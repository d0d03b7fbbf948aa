package service

import (
	"bytes"
	"strings"

	"github.com/seeg/recruiting-platform/modules/applications/model"
)

// ValidateDocuments runs the Document Validator's six ordered checks
// against the raw submission inputs before any bytes are
// persisted: size cap, extension, magic bytes, document_type membership,
// required-type cardinality (exactly one each), and no duplicate required
// types. Returns the validated documents in submission order, or the first
// failing error.
func ValidateDocuments(inputs []model.DocumentInput, sizeCapBytes int64) ([]*model.ApplicationDocument, error) {
	if sizeCapBytes <= 0 {
		sizeCapBytes = model.MaxDocumentSizeBytes
	}
	seenRequired := map[model.DocumentType]bool{}
	docs := make([]*model.ApplicationDocument, 0, len(inputs))

	for _, in := range inputs {
		docType := model.DocumentType(in.DocumentType)

		// 1. size cap
		if int64(len(in.Content)) > sizeCapBytes {
			return nil, model.ErrFileTooLarge
		}

		// 2. extension, case-insensitive
		if !strings.HasSuffix(strings.ToLower(in.FileName), ".pdf") {
			return nil, model.ErrUnsupportedFileType
		}

		// 3. magic bytes
		if !bytes.HasPrefix(in.Content, []byte("%PDF")) {
			return nil, model.ErrInvalidPDFFormat
		}

		// 4. document_type allowed-set membership
		if !model.AllowedDocumentTypes[docType] {
			return nil, model.ErrUnknownDocumentType
		}

		// 6. no duplicates within the required set
		isRequired := false
		for _, rt := range model.RequiredDocumentTypes {
			if rt == docType {
				isRequired = true
				break
			}
		}
		if isRequired {
			if seenRequired[docType] {
				return nil, model.ErrDuplicateRequiredDoc
			}
			seenRequired[docType] = true
		}

		docs = append(docs, &model.ApplicationDocument{
			DocumentType: docType,
			FileName:     in.FileName,
			MimeType:     "application/pdf",
			SizeBytes:    int64(len(in.Content)),
			Content:      in.Content,
		})
	}

	// 5. exactly-one-each-required-type cardinality
	var missing []string
	for _, rt := range model.RequiredDocumentTypes {
		if !seenRequired[rt] {
			missing = append(missing, string(rt))
		}
	}
	if len(missing) > 0 {
		return nil, &model.ValidationDetails{Err: model.ErrMissingRequiredDocs, Details: missing}
	}

	return docs, nil
}
