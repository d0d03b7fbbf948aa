package model

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// PartitionPrefix returns the ingestion_date=YYYY-MM-DD/ prefix for a given
// UTC timestamp. Callers must pass the application's stored created_at, not
// wall-clock time, so re-projecting an application always lands in the same
// partition.
func PartitionPrefix(t time.Time) string {
	return fmt.Sprintf("ingestion_date=%s/", t.UTC().Format("2006-01-02"))
}

// SanitizeFileName strips path separators, replaces each space, tab and
// newline with an underscore, and lowercases the extension so a candidate-supplied file name is always a
// safe single path segment in the object lake.
func SanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' {
			return '_'
		}
		return r
	}, name)

	ext := strings.ToLower(path.Ext(name))
	base := strings.TrimSuffix(name, path.Ext(name))
	if ext == "" {
		return base
	}
	return base + ext
}

// DimCandidateKey builds the dim_candidates blob key for a candidate.
func DimCandidateKey(partition, candidateID string) string {
	return fmt.Sprintf("dimensions/dim_candidates/%s%s.json", partition, candidateID)
}

// DimJobOfferKey builds the dim_job_offers blob key for an offer.
func DimJobOfferKey(partition, offerID string) string {
	return fmt.Sprintf("dimensions/dim_job_offers/%s%s.json", partition, offerID)
}

// FactApplicationKey builds the fact_applications blob key for an application.
func FactApplicationKey(partition, applicationID string) string {
	return fmt.Sprintf("facts/fact_applications/%s%s.json", partition, applicationID)
}

// DocumentKey builds a document blob key, sanitizing the file name. The
// .pdf extension is re-applied after sanitization so the key carries it
// exactly once regardless of how the upload was named.
func DocumentKey(partition, applicationID, documentType, fileName string) string {
	name := strings.TrimSuffix(SanitizeFileName(fileName), ".pdf")
	return fmt.Sprintf("documents/%s%s/%s_%s.pdf", partition, applicationID, documentType, name)
}
