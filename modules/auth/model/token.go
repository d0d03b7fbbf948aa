package model

import (
	"errors"
	"time"
)

// ErrTokenNotFound is returned when no stored refresh token matches a
// presented hash.
var ErrTokenNotFound = errors.New("refresh token not found")

// RefreshToken is the stored, hashed form of an issued refresh token.
// Tokens are single-use: RefreshTokens rotation revokes the presented token
// when minting its replacement.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// NewRefreshToken creates a new refresh token
func NewRefreshToken(userID, tokenHash string, expiresAt time.Time) *RefreshToken {
	return &RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
}

// IsValid checks if the token is valid
func (t *RefreshToken) IsValid() bool {
	return t.RevokedAt == nil && time.Now().UTC().Before(t.ExpiresAt)
}

// AuthTokens represents access and refresh tokens
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds
}
