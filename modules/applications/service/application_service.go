package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seeg/recruiting-platform/modules/applications/model"
	"github.com/seeg/recruiting-platform/modules/applications/ports"
	offermodel "github.com/seeg/recruiting-platform/modules/offers/model"
	offerports "github.com/seeg/recruiting-platform/modules/offers/ports"
	platformredis "github.com/seeg/recruiting-platform/internal/platform/redis"
)

// idempotencyTTL bounds the dedup window a retried X-Request-Id is honored
// within.
const idempotencyTTL = 10 * time.Minute

// ApplicationService implements the Application Writer.
type ApplicationService struct {
	pool         *pgxpool.Pool
	repo         ports.ApplicationRepository
	offerRepo    offerports.OfferRepository
	redis        *platformredis.Client
	dispatcher   ports.Dispatcher
	notifier     ports.Notifier
	directory    ports.CandidateDirectory
	sizeCapBytes int64
}

// NewApplicationService creates a new application service. sizeCapBytes is
// the configured per-document size cap; zero falls back to
// model.MaxDocumentSizeBytes.
func NewApplicationService(pool *pgxpool.Pool, repo ports.ApplicationRepository, offerRepo offerports.OfferRepository, redis *platformredis.Client, dispatcher ports.Dispatcher, notifier ports.Notifier, directory ports.CandidateDirectory, sizeCapBytes int64) *ApplicationService {
	if sizeCapBytes <= 0 {
		sizeCapBytes = model.MaxDocumentSizeBytes
	}
	return &ApplicationService{pool: pool, repo: repo, offerRepo: offerRepo, redis: redis, dispatcher: dispatcher, notifier: notifier, directory: directory, sizeCapBytes: sizeCapBytes}
}

// candidateEmail resolves the recipient address for a notification trigger.
// A failed lookup degrades to an in-app-only notification.
func (s *ApplicationService) candidateEmail(ctx context.Context, candidateID string) string {
	if s.directory == nil {
		return ""
	}
	email, err := s.directory.GetEmailByID(ctx, candidateID)
	if err != nil {
		return ""
	}
	return email
}

// SubmitApplication runs the full submission write path: idempotency
// short-circuit, offer/candidate eligibility, MTP answer-shape validation,
// document validation, then the row-locked uniqueness check and the insert
// in a single transaction, then a non-blocking Fan-out Dispatcher hand-off.
// Because uniqueness is checked last, a duplicate submission that also fails
// answer or document validation reports the validation error.
func (s *ApplicationService) SubmitApplication(ctx context.Context, candidateID string, accountStatus *string, candidateSubType *string, requestID string, req *model.SubmitApplicationRequest) (*model.ApplicationDTO, error) {
	// Step: idempotency short-circuit, checked before any DB write.
	if requestID != "" && s.redis != nil {
		if cached, err := s.redis.GetIdempotentResult(ctx, candidateID, requestID); err == nil {
			return s.GetByID(ctx, cached)
		} else if !errors.Is(err, platformredis.ErrNotFound) {
			return nil, err
		}
		reserved, err := s.redis.ReserveIdempotencyKey(ctx, candidateID, requestID, idempotencyTTL)
		if err != nil {
			return nil, err
		}
		if !reserved {
			// Lost the race to a concurrent identical retry; poll once more.
			if cached, err := s.redis.GetIdempotentResult(ctx, candidateID, requestID); err == nil {
				return s.GetByID(ctx, cached)
			}
		}
	}

	if accountStatus == nil || *accountStatus != "active" {
		return nil, model.ErrCandidateNotActive
	}

	offer, err := s.offerRepo.GetByID(ctx, req.OfferID)
	if err != nil {
		if errors.Is(err, offermodel.ErrOfferNotFound) {
			return nil, model.ErrOfferNotFound
		}
		return nil, err
	}
	if offer.State != offermodel.StateOpen {
		return nil, model.ErrOfferNotOpen
	}
	if !offermodel.CanSee(offer.Visibility, "candidate", candidateSubType) {
		return nil, model.ErrOfferNotVisible
	}

	if err := validateAnswerShape(req.Answers, offer.MTP); err != nil {
		return nil, err
	}

	docs, err := ValidateDocuments(req.Documents, s.sizeCapBytes)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		d.PageCount = bestEffortPageCount(d.Content)
	}

	refs := make([]*model.ReferenceContact, 0, len(req.References))
	for _, r := range req.References {
		refs = append(refs, &model.ReferenceContact{Company: r.Company, FullName: r.FullName, Email: r.Email, Phone: r.Phone})
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	txRepo := s.repo.WithTx(tx)

	exists, err := txRepo.ExistsActiveForCandidateOffer(ctx, candidateID, req.OfferID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrDuplicateApplication
	}

	app := model.NewApplication(candidateID, req.OfferID, req.Answers, req.ManagementExperience)
	if err := txRepo.Create(ctx, app, docs, refs); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if requestID != "" && s.redis != nil {
		_ = s.redis.StoreIdempotentResult(ctx, candidateID, requestID, app.ID, idempotencyTTL)
	}

	if s.dispatcher != nil {
		s.dispatcher.Enqueue(app.ID)
	}

	if s.notifier != nil {
		_ = s.notifier.Append(ctx, candidateID, s.candidateEmail(ctx, candidateID), "application.submitted", "Application submitted", "Your application has been received and is under review.")
	}

	return app.ToDTO(docs, refs), nil
}

// validateAnswerShape requires each MTP dimension's answer count to be no
// more than the offer's question count for that dimension. Answering fewer
// than all of a dimension's questions is allowed.
func validateAnswerShape(answers model.MTPAnswers, bundle offermodel.MTPBundle) error {
	if len(answers.Metier) > len(bundle.Metier) ||
		len(answers.Talent) > len(bundle.Talent) ||
		len(answers.Paradigme) > len(bundle.Paradigme) {
		return model.ErrAnswerShapeMismatch
	}
	return nil
}

// GetByID fetches an application with its documents and references.
func (s *ApplicationService) GetByID(ctx context.Context, id string) (*model.ApplicationDTO, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	docs, err := s.repo.GetDocuments(ctx, id)
	if err != nil {
		return nil, err
	}
	refs, err := s.repo.GetReferences(ctx, id)
	if err != nil {
		return nil, err
	}
	return app.ToDTO(docs, refs), nil
}

// GetDocument fetches a single document's content (e.g. for download).
func (s *ApplicationService) GetDocument(ctx context.Context, applicationID, documentID string) (*model.ApplicationDocument, error) {
	return s.repo.GetDocument(ctx, applicationID, documentID)
}

// ListByCandidate returns a candidate's own applications.
func (s *ApplicationService) ListByCandidate(ctx context.Context, candidateID string, limit, offset int) ([]*model.ApplicationDTO, int, error) {
	apps, total, err := s.repo.ListByCandidate(ctx, candidateID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return toDTOs(apps), total, nil
}

// ListByOffer returns all applications for a given offer (recruiter view).
func (s *ApplicationService) ListByOffer(ctx context.Context, offerID string, limit, offset int) ([]*model.ApplicationDTO, int, error) {
	apps, total, err := s.repo.ListByOffer(ctx, offerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return toDTOs(apps), total, nil
}

func toDTOs(apps []*model.Application) []*model.ApplicationDTO {
	dtos := make([]*model.ApplicationDTO, len(apps))
	for i, a := range apps {
		dtos[i] = a.ToDTO(nil, nil)
	}
	return dtos
}

// UpdateStatus applies a recruiter-driven status transition, enforcing the
// state machine in model.CanTransition.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id, newStatus string) (*model.ApplicationDTO, error) {
	status := model.Status(newStatus)
	if !model.ValidStatuses[status] {
		return nil, model.ErrValidation
	}
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if status != model.StatusWithdrawn && !model.CanTransition(app.Status, status) {
		return nil, model.ErrInvalidStatusTransition
	}
	if status == model.StatusWithdrawn {
		terminal := app.Status == model.StatusAccepted || app.Status == model.StatusRejected || app.Status == model.StatusWithdrawn
		if terminal {
			return nil, model.ErrInvalidStatusTransition
		}
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.Append(ctx, app.CandidateID, s.candidateEmail(ctx, app.CandidateID), "application.status_changed", "Application status updated", "Your application status changed to "+string(status)+".")
	}

	return s.GetByID(ctx, id)
}

// Withdraw lets a candidate withdraw their own application.
func (s *ApplicationService) Withdraw(ctx context.Context, candidateID, id string) (*model.ApplicationDTO, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.CandidateID != candidateID {
		return nil, model.ErrApplicationNotFound
	}
	return s.UpdateStatus(ctx, id, string(model.StatusWithdrawn))
}
