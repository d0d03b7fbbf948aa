package ports

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/seeg/recruiting-platform/modules/applications/model"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx (see modules/users'
// repository.DBTX) so the Application Writer can run its multi-table insert
// (application + documents + references) inside a single transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// ApplicationRepository persists the Application aggregate (Application +
// ApplicationDocument + ReferenceContact).
type ApplicationRepository interface {
	// WithTx returns a repository bound to the given transaction, so the
	// caller can compose the whole submit flow as one atomic commit.
	WithTx(tx pgx.Tx) ApplicationRepository

	// ExistsActiveForCandidateOffer row-locks and checks whether the
	// candidate already has a non-withdrawn application for offerID.
	ExistsActiveForCandidateOffer(ctx context.Context, candidateID, offerID string) (bool, error)

	Create(ctx context.Context, app *model.Application, docs []*model.ApplicationDocument, refs []*model.ReferenceContact) error
	GetByID(ctx context.Context, id string) (*model.Application, error)
	GetDocuments(ctx context.Context, applicationID string) ([]*model.ApplicationDocument, error)
	GetDocument(ctx context.Context, applicationID, documentID string) (*model.ApplicationDocument, error)
	GetReferences(ctx context.Context, applicationID string) ([]*model.ReferenceContact, error)
	ListByCandidate(ctx context.Context, candidateID string, limit, offset int) ([]*model.Application, int, error)
	ListByOffer(ctx context.Context, offerID string, limit, offset int) ([]*model.Application, int, error)
	UpdateStatus(ctx context.Context, id string, status model.Status) error
}
