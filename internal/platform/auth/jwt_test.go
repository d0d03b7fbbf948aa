package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTManager() *JWTManager {
	return NewJWTManager(
		"access-secret-32-characters!!",
		"refresh-secret-32-characters!",
		15*time.Minute,
		7*24*time.Hour,
		"recruiting-platform",
		"recruiting-platform-clients",
	)
}

func candidateSubject(userID string) TokenSubject {
	cs := "external"
	return TokenSubject{
		UserID:          userID,
		Role:            RoleCandidate,
		CandidateStatus: &cs,
		Status:          "active",
	}
}

func TestJWTManager_GenerateAccessToken(t *testing.T) {
	jwtManager := testJWTManager()

	t.Run("generates valid access token", func(t *testing.T) {
		token, err := jwtManager.GenerateAccessToken(candidateSubject("user-123"))

		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("token carries the full subject", func(t *testing.T) {
		token, err := jwtManager.GenerateAccessToken(candidateSubject("user-456"))
		require.NoError(t, err)

		claims, err := jwtManager.ValidateAccessToken(token)

		require.NoError(t, err)
		assert.Equal(t, "user-456", claims.UserID)
		assert.Equal(t, AccessToken, claims.Type)
		assert.Equal(t, RoleCandidate, claims.Role)
		require.NotNil(t, claims.CandidateStatus)
		assert.Equal(t, "external", *claims.CandidateStatus)
		assert.Equal(t, "active", claims.Status)
	})

	t.Run("token carries issuer and audience", func(t *testing.T) {
		token, err := jwtManager.GenerateAccessToken(candidateSubject("user-789"))
		require.NoError(t, err)

		claims, err := jwtManager.ValidateAccessToken(token)

		require.NoError(t, err)
		assert.Equal(t, "recruiting-platform", claims.Issuer)
		assert.Contains(t, claims.Audience, "recruiting-platform-clients")
	})
}

func TestJWTManager_GenerateRefreshToken(t *testing.T) {
	jwtManager := testJWTManager()

	t.Run("generates valid refresh token", func(t *testing.T) {
		token, err := jwtManager.GenerateRefreshToken(candidateSubject("user-123"))

		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("token contains correct user ID", func(t *testing.T) {
		token, err := jwtManager.GenerateRefreshToken(candidateSubject("user-789"))
		require.NoError(t, err)

		claims, err := jwtManager.ValidateRefreshToken(token)

		require.NoError(t, err)
		assert.Equal(t, "user-789", claims.UserID)
		assert.Equal(t, RefreshToken, claims.Type)
	})
}

func TestJWTManager_ValidateAccessToken(t *testing.T) {
	jwtManager := testJWTManager()

	t.Run("validates valid access token", func(t *testing.T) {
		token, _ := jwtManager.GenerateAccessToken(candidateSubject("user-123"))

		claims, err := jwtManager.ValidateAccessToken(token)

		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID)
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		_, err := jwtManager.ValidateAccessToken("invalid-token")

		assert.Error(t, err)
	})

	t.Run("rejects refresh token as access token", func(t *testing.T) {
		refreshToken, _ := jwtManager.GenerateRefreshToken(candidateSubject("user-123"))

		_, err := jwtManager.ValidateAccessToken(refreshToken)

		assert.Error(t, err)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		shortJwt := NewJWTManager(
			"access-secret-32-characters!!",
			"refresh-secret-32-characters!",
			-1*time.Second,
			7*24*time.Hour,
			"recruiting-platform",
			"recruiting-platform-clients",
		)
		token, _ := shortJwt.GenerateAccessToken(candidateSubject("user-123"))

		_, err := jwtManager.ValidateAccessToken(token)

		assert.Error(t, err)
	})

	t.Run("rejects token minted for another issuer", func(t *testing.T) {
		otherIssuer := NewJWTManager(
			"access-secret-32-characters!!",
			"refresh-secret-32-characters!",
			15*time.Minute,
			7*24*time.Hour,
			"some-other-service",
			"recruiting-platform-clients",
		)
		token, _ := otherIssuer.GenerateAccessToken(candidateSubject("user-123"))

		_, err := jwtManager.ValidateAccessToken(token)

		assert.Error(t, err)
	})

	t.Run("rejects token minted for another audience", func(t *testing.T) {
		otherAudience := NewJWTManager(
			"access-secret-32-characters!!",
			"refresh-secret-32-characters!",
			15*time.Minute,
			7*24*time.Hour,
			"recruiting-platform",
			"some-other-frontend",
		)
		token, _ := otherAudience.GenerateAccessToken(candidateSubject("user-123"))

		_, err := jwtManager.ValidateAccessToken(token)

		assert.Error(t, err)
	})
}

func TestJWTManager_ValidateRefreshToken(t *testing.T) {
	jwtManager := testJWTManager()

	t.Run("validates valid refresh token", func(t *testing.T) {
		token, _ := jwtManager.GenerateRefreshToken(candidateSubject("user-123"))

		claims, err := jwtManager.ValidateRefreshToken(token)

		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID)
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		_, err := jwtManager.ValidateRefreshToken("invalid-token")

		assert.Error(t, err)
	})

	t.Run("rejects access token as refresh token", func(t *testing.T) {
		accessToken, _ := jwtManager.GenerateAccessToken(candidateSubject("user-123"))

		_, err := jwtManager.ValidateRefreshToken(accessToken)

		assert.Error(t, err)
	})
}

func TestHashToken(t *testing.T) {
	t.Run("generates consistent hash", func(t *testing.T) {
		token := "test-token-12345"

		hash1 := HashToken(token)
		hash2 := HashToken(token)

		assert.Equal(t, hash1, hash2)
	})

	t.Run("generates different hashes for different tokens", func(t *testing.T) {
		hash1 := HashToken("token-1")
		hash2 := HashToken("token-2")

		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("hash has expected length", func(t *testing.T) {
		// SHA256 produces 64 hex characters
		assert.Len(t, HashToken("any-token"), 64)
	})
}

func TestTokenType_Constants(t *testing.T) {
	assert.Equal(t, TokenType("access"), AccessToken)
	assert.Equal(t, TokenType("refresh"), RefreshToken)
}
