package service

import (
	"context"
	"testing"

	"github.com/seeg/recruiting-platform/modules/offers/model"
	"github.com/seeg/recruiting-platform/modules/offers/ports"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOfferRepo struct {
	offers map[string]*model.JobOffer
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: make(map[string]*model.JobOffer)}
}

func (f *fakeOfferRepo) Create(ctx context.Context, o *model.JobOffer) error {
	o.ID = uuid.New().String()
	f.offers[o.ID] = o
	return nil
}

func (f *fakeOfferRepo) GetByID(ctx context.Context, id string) (*model.JobOffer, error) {
	o, ok := f.offers[id]
	if !ok {
		return nil, model.ErrOfferNotFound
	}
	return o, nil
}

func (f *fakeOfferRepo) List(ctx context.Context, opts ports.ListOptions) ([]*model.JobOffer, int, error) {
	var out []*model.JobOffer
	for _, o := range f.offers {
		if opts.Visibility != nil {
			visible := false
			for _, v := range opts.Visibility {
				if v == o.Visibility {
					visible = true
				}
			}
			if !visible {
				continue
			}
		}
		out = append(out, o)
	}
	return out, len(out), nil
}

func (f *fakeOfferRepo) Update(ctx context.Context, o *model.JobOffer) error {
	if _, ok := f.offers[o.ID]; !ok {
		return model.ErrOfferNotFound
	}
	f.offers[o.ID] = o
	return nil
}

func (f *fakeOfferRepo) SetState(ctx context.Context, id string, state model.State) error {
	o, ok := f.offers[id]
	if !ok {
		return model.ErrOfferNotFound
	}
	o.State = state
	return nil
}

func (f *fakeOfferRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.offers[id]; !ok {
		return model.ErrOfferNotFound
	}
	delete(f.offers, id)
	return nil
}

func TestOfferService_Create_RejectsOversizedBundle(t *testing.T) {
	svc := NewOfferService(newFakeOfferRepo())

	req := &model.CreateOfferRequest{
		Title:        "Backend Engineer",
		ContractType: "CDI",
		Visibility:   "external",
		MTP: model.MTPBundle{
			Metier: []string{"1", "2", "3", "4", "5", "6", "7", "8"},
		},
	}

	_, err := svc.Create(context.Background(), "recruiter-1", req)
	require.ErrorIs(t, err, model.ErrMTPBundleTooLarge)
}

func TestOfferService_Create_RejectsInvertedSalaryRange(t *testing.T) {
	svc := NewOfferService(newFakeOfferRepo())
	min, max := int64(5000), int64(3000)

	req := &model.CreateOfferRequest{
		Title:        "Backend Engineer",
		ContractType: "CDI",
		Visibility:   "external",
		SalaryMin:    &min,
		SalaryMax:    &max,
	}

	_, err := svc.Create(context.Background(), "recruiter-1", req)
	require.ErrorIs(t, err, model.ErrInvalidSalaryRange)
}

func TestOfferService_GetByID_ForbidsHiddenOffer(t *testing.T) {
	repo := newFakeOfferRepo()
	svc := NewOfferService(repo)

	offer := model.NewJobOffer("recruiter-1", "Internal-only role", "", "", "", model.ContractCDI, model.VisibilityInternal, model.MTPBundle{})
	require.NoError(t, repo.Create(context.Background(), offer))

	_, err := svc.GetByID(context.Background(), "candidate", strPtr("external"), offer.ID)
	require.ErrorIs(t, err, model.ErrOfferNotVisible)
}

func TestOfferService_List_FiltersByVisibility(t *testing.T) {
	repo := newFakeOfferRepo()
	svc := NewOfferService(repo)

	external := model.NewJobOffer("r", "External role", "", "", "", model.ContractCDI, model.VisibilityExternal, model.MTPBundle{})
	internal := model.NewJobOffer("r", "Internal role", "", "", "", model.ContractCDI, model.VisibilityInternal, model.MTPBundle{})
	require.NoError(t, repo.Create(context.Background(), external))
	require.NoError(t, repo.Create(context.Background(), internal))

	dtos, total, err := svc.List(context.Background(), "candidate", strPtr("external"), model.ListOffersFilter{}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, external.ID, dtos[0].ID)
}

func strPtr(s string) *string { return &s }
