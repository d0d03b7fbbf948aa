package ports

import (
	"context"

	"github.com/seeg/recruiting-platform/modules/users/model"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, userID string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, roleFilter *model.Role, limit, offset int) ([]*model.User, int, error)
	Update(ctx context.Context, user *model.User) error
	SetStatus(ctx context.Context, userID string, status model.Status) error
	Delete(ctx context.Context, userID string) error
}

// CandidateProfileRepository defines the interface for candidate profile data access
type CandidateProfileRepository interface {
	Upsert(ctx context.Context, profile *model.CandidateProfile) error
	GetByUserID(ctx context.Context, userID string) (*model.CandidateProfile, error)
}

// AccessRequestRepository defines the interface for access request data access
type AccessRequestRepository interface {
	Create(ctx context.Context, req *model.AccessRequest) error
	GetByID(ctx context.Context, id string) (*model.AccessRequest, error)
	ListPending(ctx context.Context, limit, offset int) ([]*model.AccessRequest, int, error)
	Resolve(ctx context.Context, id, approverID string, status model.AccessRequestStatus) error
}
