package service

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/seeg/recruiting-platform/internal/platform/logger"
	"github.com/seeg/recruiting-platform/internal/platform/storage"
	"github.com/seeg/recruiting-platform/modules/etl/model"
)

// rawDocument is the minimal projection of an application_documents row the
// Projector needs — it reads content directly rather than going through
// modules/applications' repository to keep the read-only tx single-purpose.
type rawDocument struct {
	DocumentType string
	FileName     string
	Content      []byte
}

// Projector implements the ETL Projector: a single read-only
// transaction loads an application's full aggregate, three JSON
// dimension/fact documents are built, and everything is written server-side
// into the object lake under a created_at-derived partition.
type Projector struct {
	pool   *pgxpool.Pool
	lake   *storage.LakeWriter
	logger *logger.Logger
}

// NewProjector creates a new ETL Projector.
func NewProjector(pool *pgxpool.Pool, lake *storage.LakeWriter, log *logger.Logger) *Projector {
	return &Projector{pool: pool, lake: lake, logger: log}
}

// Run projects a single application into the object lake and returns the
// keys it wrote (fact key first). It is safe to call more than once for the
// same id — every key is derived deterministically from application-stored
// data, never wall-clock, so a re-projection overwrites the same blobs.
func (p *Projector) Run(ctx context.Context, applicationID string) ([]string, error) {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	agg, err := p.loadAggregate(ctx, tx, applicationID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	partition := model.PartitionPrefix(agg.createdAt)

	candidateDoc, err := json.Marshal(agg.candidate)
	if err != nil {
		return nil, err
	}
	offerDoc, err := json.Marshal(agg.offer)
	if err != nil {
		return nil, err
	}
	factDoc, err := json.Marshal(agg.fact)
	if err != nil {
		return nil, err
	}

	factKey := model.FactApplicationKey(partition, applicationID)
	candidateKey := model.DimCandidateKey(partition, agg.candidate.CandidateID)
	offerKey := model.DimJobOfferKey(partition, agg.offer.OfferID)
	keys := []string{factKey, candidateKey, offerKey}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	g.Go(func() error {
		if err := p.lake.PutJSON(gctx, candidateKey, candidateDoc); err != nil {
			return &model.ErrProjectionFailed{Key: candidateKey, Err: err}
		}
		return nil
	})
	g.Go(func() error {
		if err := p.lake.PutJSON(gctx, offerKey, offerDoc); err != nil {
			return &model.ErrProjectionFailed{Key: offerKey, Err: err}
		}
		return nil
	})
	g.Go(func() error {
		if err := p.lake.PutJSON(gctx, factKey, factDoc); err != nil {
			return &model.ErrProjectionFailed{Key: factKey, Err: err}
		}
		return nil
	})

	for _, doc := range agg.documents {
		doc := doc
		key := model.DocumentKey(partition, applicationID, doc.DocumentType, doc.FileName)
		keys = append(keys, key)
		g.Go(func() error {
			metadata := map[string]string{
				"application_id": applicationID,
				"candidate_id":   agg.candidate.CandidateID,
				"document_type":  doc.DocumentType,
				"ready_for_ocr":  "true",
			}
			if err := p.lake.PutPDF(gctx, key, doc.Content, metadata); err != nil {
				return &model.ErrProjectionFailed{Key: key, Err: err}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return keys, nil
}
