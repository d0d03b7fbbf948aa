package ports

import (
	"context"

	"github.com/seeg/recruiting-platform/modules/offers/model"
)

// ListOptions bundles pagination, free-text/contract/department filters, and
// the visibility set a repository must intersect with at query time
// so forbidden rows never reach the response.
type ListOptions struct {
	Limit      int
	Offset     int
	Filter     model.ListOffersFilter
	Visibility []model.Visibility // nil means no visibility restriction
}

// OfferRepository defines data access for JobOffer.
type OfferRepository interface {
	Create(ctx context.Context, offer *model.JobOffer) error
	GetByID(ctx context.Context, offerID string) (*model.JobOffer, error)
	List(ctx context.Context, opts ListOptions) ([]*model.JobOffer, int, error)
	Update(ctx context.Context, offer *model.JobOffer) error
	SetState(ctx context.Context, offerID string, state model.State) error
	Delete(ctx context.Context, offerID string) error
}
