package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/seeg/recruiting-platform/modules/applications/model"
	"github.com/seeg/recruiting-platform/modules/applications/ports"
	offermodel "github.com/seeg/recruiting-platform/modules/offers/model"
	offerports "github.com/seeg/recruiting-platform/modules/offers/ports"
)

type fakeApplicationRepo struct {
	apps map[string]*model.Application
	docs map[string][]*model.ApplicationDocument
	refs map[string][]*model.ReferenceContact
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		apps: make(map[string]*model.Application),
		docs: make(map[string][]*model.ApplicationDocument),
		refs: make(map[string][]*model.ReferenceContact),
	}
}

func (f *fakeApplicationRepo) WithTx(tx pgx.Tx) ports.ApplicationRepository { return f }

func (f *fakeApplicationRepo) ExistsActiveForCandidateOffer(ctx context.Context, candidateID, offerID string) (bool, error) {
	for _, a := range f.apps {
		if a.CandidateID == candidateID && a.OfferID == offerID && a.Status != model.StatusWithdrawn {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplicationRepo) Create(ctx context.Context, app *model.Application, docs []*model.ApplicationDocument, refs []*model.ReferenceContact) error {
	app.ID = "app-" + app.CandidateID + "-" + app.OfferID
	f.apps[app.ID] = app
	f.docs[app.ID] = docs
	f.refs[app.ID] = refs
	return nil
}

func (f *fakeApplicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	a, ok := f.apps[id]
	if !ok {
		return nil, model.ErrApplicationNotFound
	}
	return a, nil
}

func (f *fakeApplicationRepo) GetDocuments(ctx context.Context, applicationID string) ([]*model.ApplicationDocument, error) {
	return f.docs[applicationID], nil
}

func (f *fakeApplicationRepo) GetDocument(ctx context.Context, applicationID, documentID string) (*model.ApplicationDocument, error) {
	for _, d := range f.docs[applicationID] {
		if d.ID == documentID {
			return d, nil
		}
	}
	return nil, model.ErrApplicationNotFound
}

func (f *fakeApplicationRepo) GetReferences(ctx context.Context, applicationID string) ([]*model.ReferenceContact, error) {
	return f.refs[applicationID], nil
}

func (f *fakeApplicationRepo) ListByCandidate(ctx context.Context, candidateID string, limit, offset int) ([]*model.Application, int, error) {
	var out []*model.Application
	for _, a := range f.apps {
		if a.CandidateID == candidateID {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (f *fakeApplicationRepo) ListByOffer(ctx context.Context, offerID string, limit, offset int) ([]*model.Application, int, error) {
	var out []*model.Application
	for _, a := range f.apps {
		if a.OfferID == offerID {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (f *fakeApplicationRepo) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	a, ok := f.apps[id]
	if !ok {
		return model.ErrApplicationNotFound
	}
	a.Status = status
	return nil
}

type fakeOfferRepo struct {
	offers map[string]*offermodel.JobOffer
}

func (f *fakeOfferRepo) Create(ctx context.Context, o *offermodel.JobOffer) error { return nil }
func (f *fakeOfferRepo) GetByID(ctx context.Context, id string) (*offermodel.JobOffer, error) {
	o, ok := f.offers[id]
	if !ok {
		return nil, offermodel.ErrOfferNotFound
	}
	return o, nil
}
func (f *fakeOfferRepo) List(ctx context.Context, opts offerports.ListOptions) ([]*offermodel.JobOffer, int, error) {
	return nil, 0, nil
}
func (f *fakeOfferRepo) Update(ctx context.Context, o *offermodel.JobOffer) error { return nil }
func (f *fakeOfferRepo) SetState(ctx context.Context, id string, state offermodel.State) error {
	return nil
}
func (f *fakeOfferRepo) Delete(ctx context.Context, id string) error { return nil }

func validOffer() *offermodel.JobOffer {
	o := offermodel.NewJobOffer("recruiter-1", "Backend Engineer", "", "", "", offermodel.ContractCDI, offermodel.VisibilityExternal, offermodel.MTPBundle{
		Metier: []string{"q1"}, Talent: []string{"q1"}, Paradigme: []string{"q1"},
	})
	o.ID = "offer-1"
	o.State = offermodel.StateOpen
	return o
}

func validPDF() []byte {
	return append([]byte("%PDF-1.4\n"), make([]byte, 100)...)
}

func validDocuments() []model.DocumentInput {
	return []model.DocumentInput{
		{DocumentType: "cv", FileName: "cv.pdf", Content: validPDF()},
		{DocumentType: "cover_letter", FileName: "letter.pdf", Content: validPDF()},
		{DocumentType: "diploma", FileName: "diploma.pdf", Content: validPDF()},
	}
}

func activeStatus() *string {
	s := "active"
	return &s
}

func TestSubmitApplication_RejectsInactiveCandidate(t *testing.T) {
	svc := NewApplicationService(nil, newFakeApplicationRepo(), &fakeOfferRepo{offers: map[string]*offermodel.JobOffer{"offer-1": validOffer()}}, nil, nil, nil, nil, 0)

	req := &model.SubmitApplicationRequest{OfferID: "offer-1", Documents: validDocuments()}
	pending := "pending"
	_, err := svc.SubmitApplication(context.Background(), "candidate-1", &pending, nil, "", req)
	require.ErrorIs(t, err, model.ErrCandidateNotActive)
}

func TestSubmitApplication_RejectsClosedOffer(t *testing.T) {
	offer := validOffer()
	offer.State = offermodel.StateClosed
	svc := NewApplicationService(nil, newFakeApplicationRepo(), &fakeOfferRepo{offers: map[string]*offermodel.JobOffer{"offer-1": offer}}, nil, nil, nil, nil, 0)

	req := &model.SubmitApplicationRequest{OfferID: "offer-1", Documents: validDocuments()}
	_, err := svc.SubmitApplication(context.Background(), "candidate-1", activeStatus(), nil, "", req)
	require.ErrorIs(t, err, model.ErrOfferNotOpen)
}

func TestSubmitApplication_RejectsInvisibleOffer(t *testing.T) {
	offer := validOffer()
	offer.Visibility = offermodel.VisibilityInternal
	svc := NewApplicationService(nil, newFakeApplicationRepo(), &fakeOfferRepo{offers: map[string]*offermodel.JobOffer{"offer-1": offer}}, nil, nil, nil, nil, 0)

	external := "external"
	req := &model.SubmitApplicationRequest{OfferID: "offer-1", Documents: validDocuments()}
	_, err := svc.SubmitApplication(context.Background(), "candidate-1", activeStatus(), &external, "", req)
	require.ErrorIs(t, err, model.ErrOfferNotVisible)
}

func TestSubmitApplication_RejectsUnknownOffer(t *testing.T) {
	svc := NewApplicationService(nil, newFakeApplicationRepo(), &fakeOfferRepo{offers: map[string]*offermodel.JobOffer{}}, nil, nil, nil, nil, 0)

	req := &model.SubmitApplicationRequest{OfferID: "missing", Documents: validDocuments()}
	_, err := svc.SubmitApplication(context.Background(), "candidate-1", activeStatus(), nil, "", req)
	require.ErrorIs(t, err, model.ErrOfferNotFound)
}

func TestSubmitApplication_RejectsOversizedDocument(t *testing.T) {
	svc := NewApplicationService(nil, newFakeApplicationRepo(), &fakeOfferRepo{offers: map[string]*offermodel.JobOffer{"offer-1": validOffer()}}, nil, nil, nil, nil, 50)

	req := &model.SubmitApplicationRequest{OfferID: "offer-1", Documents: validDocuments()}
	_, err := svc.SubmitApplication(context.Background(), "candidate-1", activeStatus(), nil, "", req)
	require.ErrorIs(t, err, model.ErrFileTooLarge)
}

func TestSubmitApplication_RejectsAnswerShapeMismatch(t *testing.T) {
	svc := NewApplicationService(nil, newFakeApplicationRepo(), &fakeOfferRepo{offers: map[string]*offermodel.JobOffer{"offer-1": validOffer()}}, nil, nil, nil, nil, 0)

	req := &model.SubmitApplicationRequest{
		OfferID:   "offer-1",
		Answers:   model.MTPAnswers{Metier: []string{"a", "b"}, Talent: []string{"a"}, Paradigme: []string{"a"}},
		Documents: validDocuments(),
	}
	_, err := svc.SubmitApplication(context.Background(), "candidate-1", activeStatus(), nil, "", req)
	require.ErrorIs(t, err, model.ErrAnswerShapeMismatch)
}

func TestSubmitApplication_RejectsMissingRequiredDocument(t *testing.T) {
	svc := NewApplicationService(nil, newFakeApplicationRepo(), &fakeOfferRepo{offers: map[string]*offermodel.JobOffer{"offer-1": validOffer()}}, nil, nil, nil, nil, 0)

	req := &model.SubmitApplicationRequest{
		OfferID: "offer-1",
		Answers: model.MTPAnswers{Metier: []string{"a"}, Talent: []string{"a"}, Paradigme: []string{"a"}},
		Documents: []model.DocumentInput{
			{DocumentType: "cv", FileName: "cv.pdf", Content: validPDF()},
		},
	}
	_, err := svc.SubmitApplication(context.Background(), "candidate-1", activeStatus(), nil, "", req)
	require.ErrorIs(t, err, model.ErrMissingRequiredDocs)
}

func TestApplicationService_UpdateStatus_RejectsInvalidTransition(t *testing.T) {
	repo := newFakeApplicationRepo()
	app := model.NewApplication("candidate-1", "offer-1", model.MTPAnswers{}, nil)
	app.ID = "app-1"
	app.Status = model.StatusAccepted
	repo.apps[app.ID] = app

	svc := NewApplicationService(nil, repo, &fakeOfferRepo{}, nil, nil, nil, nil, 0)
	_, err := svc.UpdateStatus(context.Background(), app.ID, string(model.StatusRejected))
	require.ErrorIs(t, err, model.ErrInvalidStatusTransition)
}

func TestApplicationService_Withdraw_RejectsOtherCandidate(t *testing.T) {
	repo := newFakeApplicationRepo()
	app := model.NewApplication("candidate-1", "offer-1", model.MTPAnswers{}, nil)
	app.ID = "app-1"
	repo.apps[app.ID] = app

	svc := NewApplicationService(nil, repo, &fakeOfferRepo{}, nil, nil, nil, nil, 0)
	_, err := svc.Withdraw(context.Background(), "candidate-2", app.ID)
	require.ErrorIs(t, err, model.ErrApplicationNotFound)
}
