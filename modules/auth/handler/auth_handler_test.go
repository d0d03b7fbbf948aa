package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The cases below all fail at the binding/auth boundary, before the handler
// touches its service, so no database is involved.
func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAuthHandler(nil)
	h.RegisterRoutes(router.Group("/api/v1"), func(c *gin.Context) { c.Next() })
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterCandidate_Validation(t *testing.T) {
	router := setupAuthRouter()

	valid := map[string]any{
		"email":            "jean@example.com",
		"password":         "password123",
		"first_name":       "Jean",
		"last_name":        "Obiang",
		"phone":            "+24100000000",
		"sexe":             "M",
		"date_of_birth":    "1995-03-14T00:00:00Z",
		"candidate_status": "external",
	}

	invalidate := func(field string, value any) map[string]any {
		req := make(map[string]any, len(valid))
		for k, v := range valid {
			req[k] = v
		}
		if value == nil {
			delete(req, field)
		} else {
			req[field] = value
		}
		return req
	}

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing email", invalidate("email", nil)},
		{"malformed email", invalidate("email", "not-an-email")},
		{"short password", invalidate("password", "short")},
		{"missing first name", invalidate("first_name", nil)},
		{"sexe outside closed set", invalidate("sexe", "X")},
		{"candidate_status outside closed set", invalidate("candidate_status", "contractor")},
		{"missing date of birth", invalidate("date_of_birth", nil)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, router, "/api/v1/auth/signup/candidate", tc.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
		})
	}
}

func TestLogin_Validation(t *testing.T) {
	router := setupAuthRouter()

	t.Run("missing password", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/auth/login", map[string]any{"email": "jean@example.com"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed email", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/auth/login", map[string]any{"email": "nope", "password": "password123"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRefresh_Validation(t *testing.T) {
	router := setupAuthRouter()

	w := postJSON(t, router, "/api/v1/auth/refresh", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangePassword_Validation(t *testing.T) {
	t.Run("rejects unauthenticated caller", func(t *testing.T) {
		router := setupAuthRouter()

		w := postJSON(t, router, "/api/v1/auth/change-password", map[string]any{
			"current_password": "password123",
			"new_password":     "a-much-longer-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects new password under the 12-char floor at the boundary", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		h := NewAuthHandler(nil)
		h.RegisterRoutes(router.Group("/api/v1"), func(c *gin.Context) {
			c.Set("user_id", "user-123")
			c.Next()
		})

		w := postJSON(t, router, "/api/v1/auth/change-password", map[string]any{
			"current_password": "password123",
			"new_password":     "elevenchars",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
