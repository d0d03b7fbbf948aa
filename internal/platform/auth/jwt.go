package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType represents the type of JWT token
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Role mirrors modules/users/model.Role. Duplicated here (rather than
// imported) so the platform auth package stays free of module dependencies;
// the users module's Role is string-convertible to this type at the call
// site.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleRecruiter Role = "recruiter"
	RoleObserver  Role = "observer"
	RoleCandidate Role = "candidate"
)

// Claims represents JWT claims minted for both access and refresh tokens.
// CandidateStatus is only populated for Role == RoleCandidate.
type Claims struct {
	UserID          string    `json:"user_id"`
	Type            TokenType `json:"type"`
	Role            Role      `json:"role"`
	CandidateStatus *string   `json:"candidate_status,omitempty"`
	Status          string    `json:"status"`
	jwt.RegisteredClaims
}

// Principal is the materialized, request-scoped identity the Authorization
// Gate attaches to the Gin context.
type Principal struct {
	UserID          string
	Role            Role
	CandidateStatus *string
	Status          string
}

// TokenSubject carries the fields minted into every access/refresh token.
type TokenSubject struct {
	UserID          string
	Role            Role
	CandidateStatus *string
	Status          string
}

// JWTManager handles JWT token operations
type JWTManager struct {
	accessSecret  string
	refreshSecret string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	issuer        string
	audience      string
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration, issuer, audience string) *JWTManager {
	return &JWTManager{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		issuer:        issuer,
		audience:      audience,
	}
}

func (m *JWTManager) newClaims(sub TokenSubject, tokenType TokenType, expiry time.Duration) *Claims {
	now := time.Now()
	return &Claims{
		UserID:          sub.UserID,
		Type:            tokenType,
		Role:            sub.Role,
		CandidateStatus: sub.CandidateStatus,
		Status:          sub.Status,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
		},
	}
}

// GenerateAccessToken generates a new access token carrying the subject's
// role and status so the Authorization Gate never has to hit the DB again.
func (m *JWTManager) GenerateAccessToken(sub TokenSubject) (string, error) {
	claims := m.newClaims(sub, AccessToken, m.accessExpiry)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.accessSecret))
}

// GenerateRefreshToken generates a new refresh token. Refresh tokens carry
// the same subject fields as access tokens but are never accepted by
// business endpoints (enforced by Type).
func (m *JWTManager) GenerateRefreshToken(sub TokenSubject) (string, error) {
	claims := m.newClaims(sub, RefreshToken, m.refreshExpiry)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.refreshSecret))
}

// ValidateAccessToken validates an access token and returns the claims
func (m *JWTManager) ValidateAccessToken(tokenString string) (*Claims, error) {
	return m.validateToken(tokenString, m.accessSecret, AccessToken)
}

// ValidateRefreshToken validates a refresh token and returns the claims
func (m *JWTManager) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return m.validateToken(tokenString, m.refreshSecret, RefreshToken)
}

func (m *JWTManager) validateToken(tokenString, secret string, expectedType TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(m.issuer), jwt.WithAudience(m.audience))

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.Type != expectedType {
		return nil, fmt.Errorf("invalid token type")
	}

	return claims, nil
}

// HashToken creates a SHA256 hash of a token for storage
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
