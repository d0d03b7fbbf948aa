package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPartitionPrefix_UsesUTCDate(t *testing.T) {
	ts := time.Date(2026, 7, 31, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	assert.Equal(t, "ingestion_date=2026-08-01/", PartitionPrefix(ts))
}

func TestSanitizeFileName_StripsSeparatorsAndWhitespace(t *testing.T) {
	assert.Equal(t, "my_resume.pdf", SanitizeFileName("my resume.pdf"))
	assert.Equal(t, "resume.pdf", SanitizeFileName("../../etc/resume.pdf"))
	assert.Equal(t, "c.pdf", SanitizeFileName("a/b\\c.PDF"))
}

func TestDocumentKey_IsDeterministic(t *testing.T) {
	k1 := DocumentKey("ingestion_date=2026-07-31/", "app-1", "cv", "resume.pdf")
	k2 := DocumentKey("ingestion_date=2026-07-31/", "app-1", "cv", "resume.pdf")
	assert.Equal(t, k1, k2)
	assert.Equal(t, "documents/ingestion_date=2026-07-31/app-1/cv_resume.pdf", k1)
}
