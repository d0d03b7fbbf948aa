package service

import (
	"context"

	"github.com/seeg/recruiting-platform/modules/users/model"
	"github.com/seeg/recruiting-platform/modules/users/ports"
)

// UserService implements admin-facing user and access-request operations.
// register_candidate and login live in modules/auth/service — this service
// only covers admin-gated user operations.
type UserService struct {
	userRepo          ports.UserRepository
	profileRepo       ports.CandidateProfileRepository
	accessRequestRepo ports.AccessRequestRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo ports.UserRepository, profileRepo ports.CandidateProfileRepository, accessRequestRepo ports.AccessRequestRepository) *UserService {
	return &UserService{
		userRepo:          userRepo,
		profileRepo:       profileRepo,
		accessRequestRepo: accessRequestRepo,
	}
}

// GetProfile returns a user and, when the user is a candidate, their profile.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.UserDTO, *model.CandidateProfileDTO, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if !user.IsCandidate() {
		return user.ToDTO(), nil, nil
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return user.ToDTO(), nil, nil
	}
	return user.ToDTO(), profile.ToDTO(), nil
}

// List returns users, optionally filtered by role (admin only route).
func (s *UserService) List(ctx context.Context, roleFilter *model.Role, limit, offset int) ([]*model.UserDTO, int, error) {
	users, total, err := s.userRepo.List(ctx, roleFilter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]*model.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, u.ToDTO())
	}
	return dtos, total, nil
}

// ActivateUser transitions a pending user (typically an internal-without-
// corporate-email candidate) to active status.
func (s *UserService) ActivateUser(ctx context.Context, userID string) error {
	return s.userRepo.SetStatus(ctx, userID, model.StatusActive)
}

// BlockUser transitions a user to blocked status.
func (s *UserService) BlockUser(ctx context.Context, userID string) error {
	return s.userRepo.SetStatus(ctx, userID, model.StatusBlocked)
}

// ListPendingAccessRequests lists unresolved access requests for admin review.
func (s *UserService) ListPendingAccessRequests(ctx context.Context, limit, offset int) ([]*model.AccessRequestDTO, int, error) {
	reqs, total, err := s.accessRequestRepo.ListPending(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]*model.AccessRequestDTO, 0, len(reqs))
	for _, r := range reqs {
		dtos = append(dtos, r.ToDTO())
	}
	return dtos, total, nil
}

// ResolveAccessRequest approves or rejects an access request and, on
// approval, activates the underlying user account.
func (s *UserService) ResolveAccessRequest(ctx context.Context, id, approverID string, approve bool) error {
	req, err := s.accessRequestRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	status := model.AccessRequestRejected
	if approve {
		status = model.AccessRequestApproved
	}
	if err := s.accessRequestRepo.Resolve(ctx, id, approverID, status); err != nil {
		return err
	}

	if approve {
		return s.userRepo.SetStatus(ctx, req.UserID, model.StatusActive)
	}
	return nil
}
