package handler

import (
	"net/http"

	"github.com/seeg/recruiting-platform/internal/platform/auth"
	httpPlatform "github.com/seeg/recruiting-platform/internal/platform/http"
	"github.com/seeg/recruiting-platform/modules/users/model"
	"github.com/seeg/recruiting-platform/modules/users/service"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user-admin and profile HTTP requests.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// ProfileResponse bundles a user and, for candidates, their profile.
type ProfileResponse struct {
	User    *model.UserDTO              `json:"user"`
	Profile *model.CandidateProfileDTO  `json:"profile,omitempty"`
}

// Me godoc
// @Summary Get own profile
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} ProfileResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		httpPlatform.RespondWithError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Unauthorized")
		return
	}

	user, profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		code := model.GetErrorCode(err)
		httpPlatform.RespondWithError(c, httpPlatform.StatusForCode(string(code)), string(code), model.GetErrorMessage(err))
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, ProfileResponse{User: user, Profile: profile})
}

// List godoc
// @Summary List users (admin)
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param role query string false "Filter by role"
// @Success 200 {object} httpPlatform.PaginatedResponse{items=[]model.UserDTO}
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	pagination, err := httpPlatform.ParsePaginationParams(c)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pagination parameters")
		return
	}

	var roleFilter *model.Role
	if roleParam := c.Query("role"); roleParam != "" {
		r := model.Role(roleParam)
		roleFilter = &r
	}

	users, total, err := h.service.List(c.Request.Context(), roleFilter, pagination.Limit, pagination.Offset)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list users")
		return
	}

	httpPlatform.RespondWithPagination(c, http.StatusOK, users, pagination.Limit, pagination.Offset, total)
}

// Activate godoc
// @Summary Activate a pending user (admin)
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Router /users/{id}/activate [post]
func (h *UserHandler) Activate(c *gin.Context) {
	userID := c.Param("id")
	if err := h.service.ActivateUser(c.Request.Context(), userID); err != nil {
		code := model.GetErrorCode(err)
		httpPlatform.RespondWithError(c, httpPlatform.StatusForCode(string(code)), string(code), model.GetErrorMessage(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"message": "user activated"})
}

// Block godoc
// @Summary Block a user (admin)
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Router /users/{id}/block [post]
func (h *UserHandler) Block(c *gin.Context) {
	userID := c.Param("id")
	if err := h.service.BlockUser(c.Request.Context(), userID); err != nil {
		code := model.GetErrorCode(err)
		httpPlatform.RespondWithError(c, httpPlatform.StatusForCode(string(code)), string(code), model.GetErrorMessage(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"message": "user blocked"})
}

// ListAccessRequests godoc
// @Summary List pending access requests (admin)
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} httpPlatform.PaginatedResponse{items=[]model.AccessRequestDTO}
// @Router /access-requests [get]
func (h *UserHandler) ListAccessRequests(c *gin.Context) {
	pagination, err := httpPlatform.ParsePaginationParams(c)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pagination parameters")
		return
	}

	reqs, total, err := h.service.ListPendingAccessRequests(c.Request.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list access requests")
		return
	}

	httpPlatform.RespondWithPagination(c, http.StatusOK, reqs, pagination.Limit, pagination.Offset, total)
}

// ResolveAccessRequestRequest is the body of the resolve-access-request endpoint.
type ResolveAccessRequestRequest struct {
	Approve bool `json:"approve"`
}

// ResolveAccessRequest godoc
// @Summary Approve or reject a pending access request (admin)
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Access request ID"
// @Param request body ResolveAccessRequestRequest true "Resolution"
// @Success 200 {object} map[string]string
// @Router /access-requests/{id}/resolve [post]
func (h *UserHandler) ResolveAccessRequest(c *gin.Context) {
	approverID, exists := auth.GetUserID(c)
	if !exists {
		httpPlatform.RespondWithError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Unauthorized")
		return
	}

	id := c.Param("id")
	var req ResolveAccessRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request payload")
		return
	}

	if err := h.service.ResolveAccessRequest(c.Request.Context(), id, approverID, req.Approve); err != nil {
		code := model.GetErrorCode(err)
		httpPlatform.RespondWithError(c, httpPlatform.StatusForCode(string(code)), string(code), model.GetErrorMessage(err))
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"message": "access request resolved"})
}

// RegisterRoutes registers user routes.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc, adminOnly gin.HandlerFunc) {
	users := router.Group("/users")
	users.Use(authMiddleware)
	{
		users.GET("/me", h.Me)
		users.GET("", adminOnly, h.List)
		users.POST("/:id/activate", adminOnly, h.Activate)
		users.POST("/:id/block", adminOnly, h.Block)
	}

	accessRequests := router.Group("/access-requests")
	accessRequests.Use(authMiddleware, adminOnly)
	{
		accessRequests.GET("", h.ListAccessRequests)
		accessRequests.POST("/:id/resolve", h.ResolveAccessRequest)
	}
}
