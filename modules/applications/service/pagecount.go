package service

import (
	"bytes"

	"github.com/ledongthuc/pdf"
)

// bestEffortPageCount extracts a PDF's page count for informational display.
// It runs strictly AFTER the Document Validator's checks pass and never
// affects validation outcome: a parse failure here just leaves PageCount nil.
func bestEffortPageCount(content []byte) *int {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil
	}
	n := reader.NumPage()
	return &n
}
