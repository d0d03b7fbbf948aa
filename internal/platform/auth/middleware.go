package auth

import (
	"strings"

	httpPlatform "github.com/seeg/recruiting-platform/internal/platform/http"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// AuthMiddleware validates JWT access tokens and resolves a Principal onto
// the Gin context. Role/status/candidate_status are read straight off the
// claims — no DB round trip, since they were minted fresh at the last
// login/refresh.
func AuthMiddleware(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httpPlatform.RespondWithError(c, 401, "UNAUTHENTICATED", "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httpPlatform.RespondWithError(c, 401, "UNAUTHENTICATED", "Invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			httpPlatform.RespondWithError(c, 401, "UNAUTHENTICATED", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set(principalKey, Principal{
			UserID:          claims.UserID,
			Role:            claims.Role,
			CandidateStatus: claims.CandidateStatus,
			Status:          claims.Status,
		})
		c.Next()
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	return userID.(string), true
}

// GetPrincipal returns the resolved Principal attached by AuthMiddleware.
func GetPrincipal(c *gin.Context) (Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// RequireRole aborts with 403 forbidden unless the caller's principal holds
// one of the given roles. Must run after AuthMiddleware.
func RequireRole(roles ...Role) gin.HandlerFunc {
	allowed := make(map[Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			httpPlatform.RespondWithError(c, 401, "UNAUTHENTICATED", "Authentication required")
			c.Abort()
			return
		}
		if !allowed[principal.Role] {
			httpPlatform.RespondWithError(c, 403, "FORBIDDEN", "Caller's role cannot perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireActiveCandidate aborts unless the principal is a candidate whose
// account status is active. account_pending is surfaced distinctly from a
// bare role mismatch so the client can tell a candidate to wait for
// activation instead of showing a generic permission error.
func RequireActiveCandidate() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			httpPlatform.RespondWithError(c, 401, "UNAUTHENTICATED", "Authentication required")
			c.Abort()
			return
		}
		if principal.Role != RoleCandidate {
			httpPlatform.RespondWithError(c, 403, "FORBIDDEN", "Caller's role cannot perform this action")
			c.Abort()
			return
		}
		if principal.Status == "pending" {
			httpPlatform.RespondWithError(c, 403, "ACCOUNT_PENDING", "Account is pending activation")
			c.Abort()
			return
		}
		if principal.Status != "active" {
			httpPlatform.RespondWithError(c, 403, "ACCOUNT_BLOCKED", "Account is blocked")
			c.Abort()
			return
		}
		c.Next()
	}
}
