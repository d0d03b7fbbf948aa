package handler

import (
	"net/http"

	"github.com/seeg/recruiting-platform/internal/platform/auth"
	httpPlatform "github.com/seeg/recruiting-platform/internal/platform/http"
	authModel "github.com/seeg/recruiting-platform/modules/auth/model"
	"github.com/seeg/recruiting-platform/modules/auth/service"
	userModel "github.com/seeg/recruiting-platform/modules/users/model"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterCandidateResponse represents the candidate signup response. Tokens
// is nil for accounts that start pending; a pending candidate never gets
// auto-issued tokens.
type RegisterCandidateResponse struct {
	User   *userModel.UserDTO    `json:"user"`
	Tokens *authModel.AuthTokens `json:"tokens,omitempty"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	User   *userModel.UserDTO    `json:"user"`
	Tokens *authModel.AuthTokens `json:"tokens"`
}

// RegisterCandidate godoc
// @Summary Candidate signup
// @Description Create a new candidate account; pending accounts receive no tokens until activated
// @Tags auth
// @Accept json
// @Produce json
// @Param request body authModel.RegisterCandidateRequest true "Candidate signup request"
// @Success 200 {object} RegisterCandidateResponse
// @Failure 400 {object} httpPlatform.ErrorResponse
// @Failure 409 {object} httpPlatform.ErrorResponse "User already exists"
// @Failure 500 {object} httpPlatform.ErrorResponse
// @Router /auth/signup/candidate [post]
func (h *AuthHandler) RegisterCandidate(c *gin.Context) {
	var req authModel.RegisterCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(userModel.CodeValidationError), "Invalid request payload")
		return
	}

	user, tokens, err := h.authService.RegisterCandidate(c.Request.Context(), &req)
	if err != nil {
		errorCode := userModel.GetErrorCode(err)
		errorMessage := userModel.GetErrorMessage(err)
		httpPlatform.RespondWithError(c, httpPlatform.StatusForCode(string(errorCode)), string(errorCode), errorMessage)
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, RegisterCandidateResponse{
		User:   user,
		Tokens: tokens,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticate user and receive JWT tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body authModel.LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} httpPlatform.ErrorResponse
// @Failure 401 {object} httpPlatform.ErrorResponse "Invalid credentials"
// @Failure 403 {object} httpPlatform.ErrorResponse "Account blocked or pending"
// @Failure 500 {object} httpPlatform.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req authModel.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(userModel.CodeValidationError), "Invalid request payload")
		return
	}

	user, tokens, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		errorCode := userModel.GetErrorCode(err)
		errorMessage := userModel.GetErrorMessage(err)
		httpPlatform.RespondWithError(c, httpPlatform.StatusForCode(string(errorCode)), string(errorCode), errorMessage)
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, LoginResponse{
		User:   user,
		Tokens: tokens,
	})
}

// Refresh godoc
// @Summary Refresh access token
// @Description Get a new access token using a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body authModel.RefreshRequest true "Refresh token"
// @Success 200 {object} authModel.AuthTokens
// @Failure 400 {object} httpPlatform.ErrorResponse
// @Failure 401 {object} httpPlatform.ErrorResponse "Invalid or expired refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req authModel.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(userModel.CodeValidationError), "Invalid request payload")
		return
	}

	tokens, err := h.authService.RefreshTokens(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusUnauthorized, string(userModel.CodeUnauthenticated), "Invalid or expired refresh token")
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, tokens)
}

// Logout godoc
// @Summary User logout
// @Description Revoke all refresh tokens for the authenticated user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} httpPlatform.ErrorResponse "Unauthorized"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		httpPlatform.RespondWithError(c, http.StatusUnauthorized, string(userModel.CodeUnauthenticated), "Unauthorized")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, string(userModel.CodeInternalError), "Failed to logout")
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// ChangePassword godoc
// @Summary Change password
// @Description Change the authenticated user's password, enforcing the 12-char mutation floor
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body authModel.ChangePasswordRequest true "Password change request"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httpPlatform.ErrorResponse
// @Failure 401 {object} httpPlatform.ErrorResponse "Current password incorrect"
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		httpPlatform.RespondWithError(c, http.StatusUnauthorized, string(userModel.CodeUnauthenticated), "Unauthorized")
		return
	}

	var req authModel.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(userModel.CodeValidationError), "Invalid request payload")
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		errorCode := userModel.GetErrorCode(err)
		errorMessage := userModel.GetErrorMessage(err)
		httpPlatform.RespondWithError(c, httpPlatform.StatusForCode(string(errorCode)), string(errorCode), errorMessage)
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"message": "Password changed"})
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup/candidate", h.RegisterCandidate)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", authMiddleware, h.Logout)
		authGroup.POST("/change-password", authMiddleware, h.ChangePassword)
	}
}
