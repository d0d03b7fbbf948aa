package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seeg/recruiting-platform/modules/applications/model"
)

func pdfOfSize(size int) []byte {
	content := make([]byte, size)
	copy(content, "%PDF-1.4\n")
	return content
}

func requiredSet(content []byte) []model.DocumentInput {
	return []model.DocumentInput{
		{DocumentType: "cv", FileName: "cv.pdf", Content: content},
		{DocumentType: "cover_letter", FileName: "letter.pdf", Content: content},
		{DocumentType: "diploma", FileName: "diploma.pdf", Content: content},
	}
}

func TestValidateDocuments_AcceptsRequiredSet(t *testing.T) {
	docs, err := ValidateDocuments(requiredSet(pdfOfSize(1024)), 0)

	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, model.DocCV, docs[0].DocumentType)
	assert.Equal(t, "application/pdf", docs[0].MimeType)
	assert.Equal(t, int64(1024), docs[0].SizeBytes)
}

func TestValidateDocuments_SizeCapBoundary(t *testing.T) {
	sizeCap := int64(2048)

	t.Run("accepts document exactly at the cap", func(t *testing.T) {
		_, err := ValidateDocuments(requiredSet(pdfOfSize(int(sizeCap))), sizeCap)
		require.NoError(t, err)
	})

	t.Run("rejects document one byte over the cap", func(t *testing.T) {
		_, err := ValidateDocuments(requiredSet(pdfOfSize(int(sizeCap)+1)), sizeCap)
		assert.ErrorIs(t, err, model.ErrFileTooLarge)
	})
}

func TestValidateDocuments_RejectsNonPDFExtension(t *testing.T) {
	docs := requiredSet(pdfOfSize(100))
	docs[1].FileName = "letter.docx"

	_, err := ValidateDocuments(docs, 0)
	assert.ErrorIs(t, err, model.ErrUnsupportedFileType)
}

func TestValidateDocuments_AcceptsUppercaseExtension(t *testing.T) {
	docs := requiredSet(pdfOfSize(100))
	docs[0].FileName = "CV.PDF"

	_, err := ValidateDocuments(docs, 0)
	require.NoError(t, err)
}

func TestValidateDocuments_RejectsMissingMagicBytes(t *testing.T) {
	docs := requiredSet(pdfOfSize(100))
	docs[2].Content = []byte("not a pdf at all")

	_, err := ValidateDocuments(docs, 0)
	assert.ErrorIs(t, err, model.ErrInvalidPDFFormat)
}

func TestValidateDocuments_RejectsUnknownDocumentType(t *testing.T) {
	docs := append(requiredSet(pdfOfSize(100)), model.DocumentInput{
		DocumentType: "passport", FileName: "passport.pdf", Content: pdfOfSize(100),
	})

	_, err := ValidateDocuments(docs, 0)
	assert.ErrorIs(t, err, model.ErrUnknownDocumentType)
}

func TestValidateDocuments_ListsMissingRequiredTypes(t *testing.T) {
	docs := []model.DocumentInput{
		{DocumentType: "cv", FileName: "cv.pdf", Content: pdfOfSize(100)},
		{DocumentType: "cover_letter", FileName: "letter.pdf", Content: pdfOfSize(100)},
	}

	_, err := ValidateDocuments(docs, 0)
	require.ErrorIs(t, err, model.ErrMissingRequiredDocs)

	var vd *model.ValidationDetails
	require.ErrorAs(t, err, &vd)
	assert.Equal(t, []string{"diploma"}, vd.Details)
}

func TestValidateDocuments_RejectsDuplicateRequiredType(t *testing.T) {
	docs := append(requiredSet(pdfOfSize(100)), model.DocumentInput{
		DocumentType: "cv", FileName: "cv2.pdf", Content: pdfOfSize(100),
	})

	_, err := ValidateDocuments(docs, 0)
	assert.ErrorIs(t, err, model.ErrDuplicateRequiredDoc)
}

func TestValidateDocuments_AllowsRepeatedOptionalTypes(t *testing.T) {
	docs := append(requiredSet(pdfOfSize(100)),
		model.DocumentInput{DocumentType: "certificates", FileName: "cert1.pdf", Content: pdfOfSize(100)},
		model.DocumentInput{DocumentType: "certificates", FileName: "cert2.pdf", Content: pdfOfSize(100)},
	)

	validated, err := ValidateDocuments(docs, 0)
	require.NoError(t, err)
	assert.Len(t, validated, 5)
}
