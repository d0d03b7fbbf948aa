package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seeg/recruiting-platform/internal/platform/auth"
	httpPlatform "github.com/seeg/recruiting-platform/internal/platform/http"
	"github.com/seeg/recruiting-platform/modules/applications/model"
	"github.com/seeg/recruiting-platform/modules/applications/service"
)

// ApplicationHandler handles Application HTTP requests.
type ApplicationHandler struct {
	service *service.ApplicationService
}

// NewApplicationHandler creates a new application handler.
func NewApplicationHandler(service *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// canReadApplication implements the application read policy: the owning
// candidate, recruiters, and admins may read; every other role is denied.
func canReadApplication(principal auth.Principal, candidateID string) bool {
	switch principal.Role {
	case auth.RoleRecruiter, auth.RoleAdmin:
		return true
	case auth.RoleCandidate:
		return principal.UserID == candidateID
	default:
		return false
	}
}

func respondApplicationError(c *gin.Context, err error) {
	code := model.GetErrorCode(err)
	status := httpPlatform.StatusForCode(string(code))
	var vd *model.ValidationDetails
	if errors.As(err, &vd) {
		httpPlatform.RespondWithErrorDetails(c, status, string(code), model.GetErrorMessage(err), vd.Details)
		return
	}
	httpPlatform.RespondWithError(c, status, string(code), model.GetErrorMessage(err))
}

// Submit godoc
// @Summary Submit a job application
// @Tags applications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param X-Request-Id header string false "Idempotency key"
// @Param request body model.SubmitApplicationRequest true "Application"
// @Success 201 {object} model.ApplicationDTO
// @Failure 409 {object} httpPlatform.ErrorResponse
// @Failure 422 {object} httpPlatform.ErrorResponse
// @Router /applications [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	principal, _ := auth.GetPrincipal(c)

	var req model.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(model.CodeValidationError), "Invalid request payload")
		return
	}

	requestID := c.GetHeader("X-Request-Id")
	accountStatus := principal.Status
	candidateSubType := principal.CandidateStatus

	app, err := h.service.SubmitApplication(c.Request.Context(), principal.UserID, &accountStatus, candidateSubType, requestID, &req)
	if err != nil {
		respondApplicationError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusCreated, app)
}

// Get godoc
// @Summary Get an application by id
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Param id path string true "Application id"
// @Success 200 {object} model.ApplicationDTO
// @Router /applications/{id} [get]
func (h *ApplicationHandler) Get(c *gin.Context) {
	id := c.Param("id")
	principal, _ := auth.GetPrincipal(c)

	app, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondApplicationError(c, err)
		return
	}
	if !canReadApplication(principal, app.CandidateID) {
		httpPlatform.RespondWithError(c, http.StatusForbidden, "FORBIDDEN", "Caller's role cannot perform this action")
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, app)
}

// DownloadDocument godoc
// @Summary Download an application document
// @Tags applications
// @Security BearerAuth
// @Produce application/pdf
// @Param id path string true "Application id"
// @Param document_id path string true "Document id"
// @Success 200 {file} file
// @Router /applications/{id}/documents/{document_id} [get]
func (h *ApplicationHandler) DownloadDocument(c *gin.Context) {
	id := c.Param("id")
	principal, _ := auth.GetPrincipal(c)

	app, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondApplicationError(c, err)
		return
	}
	if !canReadApplication(principal, app.CandidateID) {
		httpPlatform.RespondWithError(c, http.StatusForbidden, "FORBIDDEN", "Caller's role cannot perform this action")
		return
	}

	doc, err := h.service.GetDocument(c.Request.Context(), id, c.Param("document_id"))
	if err != nil {
		respondApplicationError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Data(http.StatusOK, doc.MimeType, doc.Content)
}

// ListMine godoc
// @Summary List the caller's own applications
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} httpPlatform.PaginatedResponse{items=[]model.ApplicationDTO}
// @Router /applications/me [get]
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	principal, _ := auth.GetPrincipal(c)

	pagination, err := httpPlatform.ParsePaginationParams(c)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(model.CodeValidationError), "Invalid pagination parameters")
		return
	}

	apps, total, err := h.service.ListByCandidate(c.Request.Context(), principal.UserID, pagination.Limit, pagination.Offset)
	if err != nil {
		respondApplicationError(c, err)
		return
	}
	httpPlatform.RespondWithPagination(c, http.StatusOK, apps, pagination.Limit, pagination.Offset, total)
}

// ListByOffer godoc
// @Summary List applications against a job offer
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Param id path string true "Offer id"
// @Success 200 {object} httpPlatform.PaginatedResponse{items=[]model.ApplicationDTO}
// @Router /jobs/{id}/applications [get]
func (h *ApplicationHandler) ListByOffer(c *gin.Context) {
	offerID := c.Param("id")

	pagination, err := httpPlatform.ParsePaginationParams(c)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(model.CodeValidationError), "Invalid pagination parameters")
		return
	}

	apps, total, err := h.service.ListByOffer(c.Request.Context(), offerID, pagination.Limit, pagination.Offset)
	if err != nil {
		respondApplicationError(c, err)
		return
	}
	httpPlatform.RespondWithPagination(c, http.StatusOK, apps, pagination.Limit, pagination.Offset, total)
}

// UpdateStatus godoc
// @Summary Transition an application's status
// @Tags applications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Application id"
// @Param request body model.UpdateStatusRequest true "New status"
// @Success 200 {object} model.ApplicationDTO
// @Failure 409 {object} httpPlatform.ErrorResponse
// @Router /applications/{id}/status [put]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(model.CodeValidationError), "Invalid request payload")
		return
	}

	app, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondApplicationError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, app)
}

// Withdraw godoc
// @Summary Withdraw the caller's own application
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Param id path string true "Application id"
// @Success 200 {object} model.ApplicationDTO
// @Router /applications/{id}/withdraw [post]
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	id := c.Param("id")
	principal, _ := auth.GetPrincipal(c)

	app, err := h.service.Withdraw(c.Request.Context(), principal.UserID, id)
	if err != nil {
		respondApplicationError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, app)
}

// RegisterRoutes registers application routes. Submission/listing-own/
// withdraw are candidate-only; status transitions and per-offer listing are
// recruiter/admin only.
func (h *ApplicationHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	applications := router.Group("/applications")
	applications.Use(authMiddleware)
	{
		candidateOnly := applications.Group("")
		candidateOnly.Use(auth.RequireActiveCandidate())
		{
			candidateOnly.POST("", h.Submit)
			candidateOnly.GET("/me", h.ListMine)
			candidateOnly.POST("/:id/withdraw", h.Withdraw)
		}

		applications.GET("/:id", h.Get)
		applications.GET("/:id/documents/:document_id", h.DownloadDocument)

		recruiterOnly := applications.Group("")
		recruiterOnly.Use(auth.RequireRole(auth.RoleRecruiter, auth.RoleAdmin))
		{
			recruiterOnly.PUT("/:id/status", h.UpdateStatus)
		}
	}

	// Mounted under /jobs with the same :id wildcard name the offers module
	// uses for that segment.
	jobs := router.Group("/jobs")
	jobs.Use(authMiddleware, auth.RequireRole(auth.RoleRecruiter, auth.RoleAdmin))
	{
		jobs.GET("/:id/applications", h.ListByOffer)
	}
}
