package service

import (
	"context"
	"strings"

	"github.com/seeg/recruiting-platform/modules/offers/model"
	"github.com/seeg/recruiting-platform/modules/offers/ports"
)

// OfferService implements the Offer & Visibility Engine.
type OfferService struct {
	repo ports.OfferRepository
}

// NewOfferService creates a new offer service.
func NewOfferService(repo ports.OfferRepository) *OfferService {
	return &OfferService{repo: repo}
}

// Create creates a draft offer owned by recruiterID.
func (s *OfferService) Create(ctx context.Context, recruiterID string, req *model.CreateOfferRequest) (*model.JobOfferDTO, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, model.ErrTitleRequired
	}

	offer := model.NewJobOffer(
		recruiterID, req.Title, req.Description, req.Location, req.Department,
		model.ContractType(req.ContractType), model.Visibility(req.Visibility), req.MTP,
	)
	offer.SalaryMin = req.SalaryMin
	offer.SalaryMax = req.SalaryMax
	offer.Currency = req.Currency

	if err := offer.ValidateBundle(); err != nil {
		return nil, err
	}
	if err := offer.ValidateSalaryRange(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, offer); err != nil {
		return nil, err
	}
	return offer.ToDTO(), nil
}

// GetByID fetches an offer, enforcing the visibility filter for non-
// recruiter/admin callers. An offer that exists but isn't visible returns
// 403 forbidden (ErrOfferNotVisible), not 404, to distinguish "not for you"
// from "doesn't exist".
func (s *OfferService) GetByID(ctx context.Context, role string, candidateStatus *string, offerID string) (*model.JobOfferDTO, error) {
	offer, err := s.repo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !model.CanSee(offer.Visibility, role, candidateStatus) {
		return nil, model.ErrOfferNotVisible
	}
	return offer.ToDTO(), nil
}

// List returns offers matching filter+pagination, intersected with the
// caller's visibility set at query time.
func (s *OfferService) List(ctx context.Context, role string, candidateStatus *string, filter model.ListOffersFilter, limit, offset int) ([]*model.JobOfferDTO, int, error) {
	opts := ports.ListOptions{
		Limit:      limit,
		Offset:     offset,
		Filter:     filter,
		Visibility: model.VisibleTo(role, candidateStatus),
	}
	offers, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]*model.JobOfferDTO, len(offers))
	for i, o := range offers {
		dtos[i] = o.ToDTO()
	}
	return dtos, total, nil
}

// Update patches mutable offer fields.
func (s *OfferService) Update(ctx context.Context, offerID string, req *model.UpdateOfferRequest) (*model.JobOfferDTO, error) {
	offer, err := s.repo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, model.ErrTitleRequired
		}
		offer.Title = *req.Title
	}
	if req.Description != nil {
		offer.Description = *req.Description
	}
	if req.Location != nil {
		offer.Location = *req.Location
	}
	if req.Department != nil {
		offer.Department = *req.Department
	}
	if req.ContractType != nil {
		offer.ContractType = model.ContractType(*req.ContractType)
	}
	if req.SalaryMin != nil {
		offer.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		offer.SalaryMax = req.SalaryMax
	}
	if req.Currency != nil {
		offer.Currency = *req.Currency
	}
	if req.Visibility != nil {
		offer.Visibility = model.Visibility(*req.Visibility)
	}
	if req.MTP != nil {
		offer.MTP = *req.MTP
	}

	if err := offer.ValidateBundle(); err != nil {
		return nil, err
	}
	if err := offer.ValidateSalaryRange(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, offer); err != nil {
		return nil, err
	}
	return offer.ToDTO(), nil
}

// SetState transitions the offer's lifecycle (draft -> open -> closed).
// Any other transition returns ErrInvalidState.
func (s *OfferService) SetState(ctx context.Context, offerID string, state string) (*model.JobOfferDTO, error) {
	newState := model.State(state)
	switch newState {
	case model.StateDraft, model.StateOpen, model.StateClosed:
	default:
		return nil, model.ErrInvalidState
	}
	current, err := s.repo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !(current.State == model.StateDraft && newState == model.StateOpen) &&
		!(current.State == model.StateOpen && newState == model.StateClosed) {
		return nil, model.ErrInvalidState
	}
	if err := s.repo.SetState(ctx, offerID, newState); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, "admin", nil, offerID)
}

// Delete removes an offer.
func (s *OfferService) Delete(ctx context.Context, offerID string) error {
	return s.repo.Delete(ctx, offerID)
}
