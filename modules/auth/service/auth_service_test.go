package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/seeg/recruiting-platform/internal/platform/auth"
	authModel "github.com/seeg/recruiting-platform/modules/auth/model"
	authRepo "github.com/seeg/recruiting-platform/modules/auth/repository"
	userModel "github.com/seeg/recruiting-platform/modules/users/model"
	userRepo "github.com/seeg/recruiting-platform/modules/users/repository"
)

// newTestAuthService boots a disposable Postgres and wires a real AuthService
// over it: register_candidate spans three tables in one transaction, so a
// mocked repository would prove nothing about the part that matters.
func newTestAuthService(t *testing.T) (*AuthService, *pgxpool.Pool) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("recruiting"),
		tcpostgres.WithUsername("recruiting"),
		tcpostgres.WithPassword("recruiting"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(ctr) })

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	m, err := migrate.New("file://"+migrationsPath, dsn)
	require.NoError(t, err)
	require.NoError(t, m.Up())
	m.Close()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	jwtManager := auth.NewJWTManager(
		"test-access-secret-key-32chars!!",
		"test-refresh-secret-key-32chars!",
		15*time.Minute,
		7*24*time.Hour,
		"recruiting-platform",
		"recruiting-platform-clients",
	)

	svc := NewAuthService(
		pool,
		userRepo.NewUserRepository(pool),
		userRepo.NewCandidateProfileRepository(pool),
		userRepo.NewAccessRequestRepository(pool),
		authRepo.NewRefreshTokenRepository(pool),
		jwtManager,
		15*time.Minute,
		7*24*time.Hour,
	)
	return svc, pool
}

func externalSignup(email string) *authModel.RegisterCandidateRequest {
	return &authModel.RegisterCandidateRequest{
		Email:           email,
		Password:        "password123",
		FirstName:       "Jean",
		LastName:        "Obiang",
		Phone:           "+24100000000",
		Sexe:            "M",
		DateOfBirth:     time.Date(1995, 3, 14, 0, 0, 0, 0, time.UTC),
		CandidateStatus: "external",
		Skills:          []string{"Go"},
		YearsExperience: 4,
		SalaryCurrency:  "XAF",
	}
}

func TestAuthService_RegisterCandidate(t *testing.T) {
	svc, pool := newTestAuthService(t)
	ctx := context.Background()

	t.Run("external candidate starts active and receives tokens", func(t *testing.T) {
		user, tokens, err := svc.RegisterCandidate(ctx, externalSignup("jean@example.com"))

		require.NoError(t, err)
		require.NotNil(t, user)
		require.NotNil(t, tokens)
		assert.Equal(t, userModel.StatusActive, user.Status)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)

		var profileCount int
		require.NoError(t, pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM candidate_profiles WHERE user_id = $1`, user.ID).Scan(&profileCount))
		assert.Equal(t, 1, profileCount)
	})

	t.Run("internal without corporate email starts pending, no tokens, access request created", func(t *testing.T) {
		req := externalSignup("marie@example.com")
		req.CandidateStatus = "internal"
		req.NoCorporateEmail = true

		user, tokens, err := svc.RegisterCandidate(ctx, req)

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Nil(t, tokens)
		assert.Equal(t, userModel.StatusPending, user.Status)

		var accessRequests int
		require.NoError(t, pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM access_requests WHERE user_id = $1 AND status = 'pending'`, user.ID).Scan(&accessRequests))
		assert.Equal(t, 1, accessRequests)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, _, err := svc.RegisterCandidate(ctx, externalSignup("dup@example.com"))
		require.NoError(t, err)

		_, _, err = svc.RegisterCandidate(ctx, externalSignup("dup@example.com"))
		assert.ErrorIs(t, err, userModel.ErrUserAlreadyExists)
	})

	t.Run("rejects short password", func(t *testing.T) {
		req := externalSignup("short@example.com")
		req.Password = "short"

		_, _, err := svc.RegisterCandidate(ctx, req)
		assert.ErrorIs(t, err, userModel.ErrInvalidPassword)
	})
}

func TestAuthService_Login(t *testing.T) {
	svc, pool := newTestAuthService(t)
	ctx := context.Background()

	registered, _, err := svc.RegisterCandidate(ctx, externalSignup("login@example.com"))
	require.NoError(t, err)

	t.Run("succeeds with valid credentials", func(t *testing.T) {
		user, tokens, err := svc.Login(ctx, &authModel.LoginRequest{Email: "login@example.com", Password: "password123"})

		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("normalizes email case", func(t *testing.T) {
		_, _, err := svc.Login(ctx, &authModel.LoginRequest{Email: "LOGIN@EXAMPLE.COM", Password: "password123"})
		require.NoError(t, err)
	})

	t.Run("rejects unknown email with invalid_credentials", func(t *testing.T) {
		_, _, err := svc.Login(ctx, &authModel.LoginRequest{Email: "ghost@example.com", Password: "password123"})
		assert.ErrorIs(t, err, userModel.ErrInvalidCredentials)
	})

	t.Run("rejects wrong password with invalid_credentials", func(t *testing.T) {
		_, _, err := svc.Login(ctx, &authModel.LoginRequest{Email: "login@example.com", Password: "wrong-password"})
		assert.ErrorIs(t, err, userModel.ErrInvalidCredentials)
	})

	t.Run("rejects pending account with account_pending", func(t *testing.T) {
		req := externalSignup("pending@example.com")
		req.CandidateStatus = "internal"
		req.NoCorporateEmail = true
		_, _, err := svc.RegisterCandidate(ctx, req)
		require.NoError(t, err)

		_, _, err = svc.Login(ctx, &authModel.LoginRequest{Email: "pending@example.com", Password: "password123"})
		assert.ErrorIs(t, err, userModel.ErrAccountPending)
	})

	t.Run("rejects blocked account with account_blocked", func(t *testing.T) {
		_, err := pool.Exec(ctx, `UPDATE users SET status = 'blocked' WHERE email = $1`, "login@example.com")
		require.NoError(t, err)

		_, _, err = svc.Login(ctx, &authModel.LoginRequest{Email: "login@example.com", Password: "password123"})
		assert.ErrorIs(t, err, userModel.ErrAccountBlocked)

		_, err = pool.Exec(ctx, `UPDATE users SET status = 'active' WHERE email = $1`, "login@example.com")
		require.NoError(t, err)
	})
}

func TestAuthService_RefreshTokens_Rotation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, tokens, err := svc.RegisterCandidate(ctx, externalSignup("rotate@example.com"))
	require.NoError(t, err)

	fresh, err := svc.RefreshTokens(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
	assert.NotEqual(t, tokens.RefreshToken, fresh.RefreshToken)

	// Single-use: the presented refresh token was revoked by the rotation.
	_, err = svc.RefreshTokens(ctx, tokens.RefreshToken)
	assert.Error(t, err)

	// The rotated replacement still works.
	_, err = svc.RefreshTokens(ctx, fresh.RefreshToken)
	require.NoError(t, err)
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, _, err := svc.RegisterCandidate(ctx, externalSignup("changepw@example.com"))
	require.NoError(t, err)

	t.Run("rejects new password under the 12-char mutation floor", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, &authModel.ChangePasswordRequest{
			CurrentPassword: "password123",
			NewPassword:     "elevenchars",
		})
		assert.ErrorIs(t, err, userModel.ErrInvalidPassword)
	})

	t.Run("rejects wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, &authModel.ChangePasswordRequest{
			CurrentPassword: "not-the-password",
			NewPassword:     "a-much-longer-password",
		})
		assert.ErrorIs(t, err, userModel.ErrInvalidCredentials)
	})

	t.Run("changes password and old one stops working", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, &authModel.ChangePasswordRequest{
			CurrentPassword: "password123",
			NewPassword:     "a-much-longer-password",
		})
		require.NoError(t, err)

		_, _, err = svc.Login(ctx, &authModel.LoginRequest{Email: "changepw@example.com", Password: "password123"})
		assert.ErrorIs(t, err, userModel.ErrInvalidCredentials)

		_, _, err = svc.Login(ctx, &authModel.LoginRequest{Email: "changepw@example.com", Password: "a-much-longer-password"})
		require.NoError(t, err)
	})
}
