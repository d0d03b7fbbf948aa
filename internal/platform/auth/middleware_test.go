package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func subjectWith(role Role, status string, candidateStatus *string) TokenSubject {
	return TokenSubject{
		UserID:          "user-123",
		Role:            role,
		CandidateStatus: candidateStatus,
		Status:          status,
	}
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := testJWTManager()

	t.Run("allows request with valid token and resolves principal", func(t *testing.T) {
		cs := "internal"
		token, _ := jwtManager.GenerateAccessToken(subjectWith(RoleCandidate, "active", &cs))

		router := setupTestRouter()
		router.GET("/protected", AuthMiddleware(jwtManager), func(c *gin.Context) {
			principal, ok := GetPrincipal(c)
			require.True(t, ok)
			assert.Equal(t, "user-123", principal.UserID)
			assert.Equal(t, RoleCandidate, principal.Role)
			require.NotNil(t, principal.CandidateStatus)
			assert.Equal(t, "internal", *principal.CandidateStatus)
			assert.Equal(t, "active", principal.Status)
			c.JSON(http.StatusOK, gin.H{"user_id": principal.UserID})
		})

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects request without authorization header", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/protected", AuthMiddleware(jwtManager), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{})
		})

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects request with invalid authorization format", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/protected", AuthMiddleware(jwtManager), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{})
		})

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "InvalidFormat")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects request with non-Bearer prefix", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/protected", AuthMiddleware(jwtManager), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{})
		})

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic sometoken")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects request with invalid token", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/protected", AuthMiddleware(jwtManager), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{})
		})

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects request with expired token", func(t *testing.T) {
		expiredJwt := NewJWTManager(
			"access-secret-32-characters!!",
			"refresh-secret-32-characters!",
			-1*time.Second,
			7*24*time.Hour,
			"recruiting-platform",
			"recruiting-platform-clients",
		)
		token, _ := expiredJwt.GenerateAccessToken(subjectWith(RoleCandidate, "active", nil))

		router := setupTestRouter()
		router.GET("/protected", AuthMiddleware(jwtManager), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{})
		})

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	jwtManager := testJWTManager()

	protectedRouter := func(roles ...Role) *gin.Engine {
		router := setupTestRouter()
		router.GET("/admin-only", AuthMiddleware(jwtManager), RequireRole(roles...), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{})
		})
		return router
	}

	t.Run("allows listed role", func(t *testing.T) {
		token, _ := jwtManager.GenerateAccessToken(subjectWith(RoleAdmin, "active", nil))

		req, _ := http.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		protectedRouter(RoleAdmin, RoleRecruiter).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects unlisted role with 403", func(t *testing.T) {
		cs := "external"
		token, _ := jwtManager.GenerateAccessToken(subjectWith(RoleCandidate, "active", &cs))

		req, _ := http.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		protectedRouter(RoleAdmin, RoleRecruiter).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRequireActiveCandidate(t *testing.T) {
	jwtManager := testJWTManager()

	router := setupTestRouter()
	router.POST("/applications", AuthMiddleware(jwtManager), RequireActiveCandidate(), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{})
	})

	do := func(sub TokenSubject) *httptest.ResponseRecorder {
		token, _ := jwtManager.GenerateAccessToken(sub)
		req, _ := http.NewRequest(http.MethodPost, "/applications", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("allows active candidate", func(t *testing.T) {
		cs := "internal"
		w := do(subjectWith(RoleCandidate, "active", &cs))
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("rejects non-candidate role", func(t *testing.T) {
		w := do(subjectWith(RoleRecruiter, "active", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("rejects pending candidate with ACCOUNT_PENDING", func(t *testing.T) {
		cs := "internal"
		w := do(subjectWith(RoleCandidate, "pending", &cs))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "ACCOUNT_PENDING")
	})

	t.Run("rejects blocked candidate with ACCOUNT_BLOCKED", func(t *testing.T) {
		cs := "external"
		w := do(subjectWith(RoleCandidate, "blocked", &cs))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "ACCOUNT_BLOCKED")
	})
}

func TestGetUserID(t *testing.T) {
	t.Run("returns user ID when set", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", "user-123")

		userID, exists := GetUserID(c)

		assert.True(t, exists)
		assert.Equal(t, "user-123", userID)
	})

	t.Run("returns false when user ID not set", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		userID, exists := GetUserID(c)

		assert.False(t, exists)
		assert.Empty(t, userID)
	})
}
