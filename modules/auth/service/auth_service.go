package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/seeg/recruiting-platform/internal/platform/auth"
	authModel "github.com/seeg/recruiting-platform/modules/auth/model"
	authPorts "github.com/seeg/recruiting-platform/modules/auth/ports"
	userModel "github.com/seeg/recruiting-platform/modules/users/model"
	userRepo "github.com/seeg/recruiting-platform/modules/users/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuthService handles identity and token operations: register_candidate,
// login, refresh, logout, change_password.
type AuthService struct {
	pool          *pgxpool.Pool
	userRepo      *userRepo.UserRepository
	profileRepo   *userRepo.CandidateProfileRepository
	accessReqRepo *userRepo.AccessRequestRepository
	tokenRepo     authPorts.RefreshTokenRepository
	jwtManager    *auth.JWTManager
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewAuthService creates a new auth service. register_candidate touches three
// tables (users, candidate_profiles, access_requests) so this service is
// built against the concrete repository structs rather than ports.*
// interfaces — only they expose WithTx, which the generic ports don't carry
// to avoid forcing a pgx dependency onto every port consumer.
func NewAuthService(
	pool *pgxpool.Pool,
	userRepo *userRepo.UserRepository,
	profileRepo *userRepo.CandidateProfileRepository,
	accessReqRepo *userRepo.AccessRequestRepository,
	tokenRepo authPorts.RefreshTokenRepository,
	jwtManager *auth.JWTManager,
	accessExpiry time.Duration,
	refreshExpiry time.Duration,
) *AuthService {
	return &AuthService{
		pool:          pool,
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		accessReqRepo: accessReqRepo,
		tokenRepo:     tokenRepo,
		jwtManager:    jwtManager,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// RegisterCandidate creates a candidate User and its CandidateProfile in one
// transaction. Internal-without-corporate-email candidates additionally get
// a pending AccessRequest row and never receive tokens; the caller must log
// in separately once an admin activates the account.
func (s *AuthService) RegisterCandidate(ctx context.Context, req *authModel.RegisterCandidateRequest) (*userModel.UserDTO, *authModel.AuthTokens, error) {
	if len(req.Password) < 8 {
		return nil, nil, userModel.ErrInvalidPassword
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, nil, userModel.ErrUserAlreadyExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	candidateStatus := userModel.CandidateStatus(req.CandidateStatus)
	pending := candidateStatus == userModel.CandidateInternal && req.NoCorporateEmail

	user := userModel.NewUser(email, passwordHash, userModel.RoleCandidate, req.FirstName, req.LastName, req.Phone, userModel.Sexe(req.Sexe), req.DateOfBirth)
	user.CandidateStatus = &candidateStatus
	user.NoCorporateEmail = req.NoCorporateEmail
	if pending {
		user.Status = userModel.StatusPending
	}

	profile := &userModel.CandidateProfile{
		Skills:            req.Skills,
		YearsExperience:   req.YearsExperience,
		ExpectedSalaryMin: req.ExpectedSalaryMin,
		ExpectedSalaryMax: req.ExpectedSalaryMax,
		SalaryCurrency:    req.SalaryCurrency,
		Education:         req.Education,
		Availability:      req.Availability,
		PortfolioURL:      req.PortfolioURL,
		LinkedinURL:       req.LinkedinURL,
	}
	if err := profile.Validate(); err != nil {
		return nil, nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	txUserRepo := s.userRepo.WithTx(tx)
	if err := txUserRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	profile.UserID = user.ID
	if err := s.profileRepo.WithTx(tx).Upsert(ctx, profile); err != nil {
		return nil, nil, err
	}

	if pending {
		accessReq := userModel.NewAccessRequest(user.ID)
		if err := s.accessReqRepo.WithTx(tx).Create(ctx, accessReq); err != nil {
			return nil, nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	if pending {
		return user.ToDTO(), nil, nil
	}

	tokens, err := s.generateTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user.ToDTO(), tokens, nil
}

// unknownUserHash is verified against when a login names an unknown email,
// so that path costs one bcrypt comparison just like a wrong password.
var unknownUserHash, _ = auth.HashPassword(time.Now().String())

// Login authenticates a user. Fails with invalid_credentials on unknown
// email or hash mismatch, account_blocked on status blocked, and
// account_pending on status pending.
func (s *AuthService) Login(ctx context.Context, req *authModel.LoginRequest) (*userModel.UserDTO, *authModel.AuthTokens, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userModel.ErrUserNotFound) {
			_ = auth.VerifyPassword(req.Password, unknownUserHash)
			return nil, nil, userModel.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := auth.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		return nil, nil, userModel.ErrInvalidCredentials
	}

	switch user.Status {
	case userModel.StatusBlocked:
		return nil, nil, userModel.ErrAccountBlocked
	case userModel.StatusPending:
		return nil, nil, userModel.ErrAccountPending
	}

	tokens, err := s.generateTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user.ToDTO(), tokens, nil
}

// RefreshTokens refreshes an access token using a refresh token, rotating
// the refresh token (single-use).
func (s *AuthService) RefreshTokens(ctx context.Context, refreshTokenString string) (*authModel.AuthTokens, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshTokenString)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}

	tokenHash := auth.HashToken(refreshTokenString)
	dbToken, err := s.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}

	if !dbToken.IsValid() {
		return nil, errors.New("refresh token expired or revoked")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	_ = s.tokenRepo.Revoke(ctx, tokenHash)

	return tokens, nil
}

// Logout revokes all refresh tokens for a user
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.tokenRepo.RevokeAllForUser(ctx, userID)
}

// ChangePassword verifies the current password and sets a new one,
// enforcing the 12-character mutation floor instead of the 8-character
// legacy floor used at signup/login.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req *authModel.ChangePasswordRequest) error {
	if len(req.NewPassword) < 12 {
		return userModel.ErrInvalidPassword
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := auth.VerifyPassword(req.CurrentPassword, user.PasswordHash); err != nil {
		return userModel.ErrInvalidCredentials
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = newHash
	return s.userRepo.Update(ctx, user)
}

// generateTokens mints and persists a fresh access/refresh pair for user,
// carrying role/status/candidate_status into the claims so the Authorization
// Gate never needs an extra DB round-trip.
func (s *AuthService) generateTokens(ctx context.Context, user *userModel.User) (*authModel.AuthTokens, error) {
	var candidateStatus *string
	if user.CandidateStatus != nil {
		cs := string(*user.CandidateStatus)
		candidateStatus = &cs
	}
	sub := auth.TokenSubject{
		UserID:          user.ID,
		Role:            auth.Role(user.Role),
		CandidateStatus: candidateStatus,
		Status:          string(user.Status),
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(sub)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(sub)
	if err != nil {
		return nil, err
	}

	tokenHash := auth.HashToken(refreshToken)
	dbToken := authModel.NewRefreshToken(user.ID, tokenHash, time.Now().UTC().Add(s.refreshExpiry))
	if err := s.tokenRepo.Create(ctx, dbToken); err != nil {
		return nil, err
	}

	return &authModel.AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessExpiry.Seconds()),
	}, nil
}
