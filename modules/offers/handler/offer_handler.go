package handler

import (
	"net/http"

	"github.com/seeg/recruiting-platform/internal/platform/auth"
	httpPlatform "github.com/seeg/recruiting-platform/internal/platform/http"
	"github.com/seeg/recruiting-platform/modules/offers/model"
	"github.com/seeg/recruiting-platform/modules/offers/service"
	"github.com/gin-gonic/gin"
)

// OfferHandler handles JobOffer HTTP requests.
type OfferHandler struct {
	service *service.OfferService
}

// NewOfferHandler creates a new offer handler.
func NewOfferHandler(service *service.OfferService) *OfferHandler {
	return &OfferHandler{service: service}
}

func respondOfferError(c *gin.Context, err error) {
	code := model.GetErrorCode(err)
	httpPlatform.RespondWithError(c, httpPlatform.StatusForCode(string(code)), string(code), model.GetErrorMessage(err))
}

// Create godoc
// @Summary Create a job offer
// @Tags offers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body model.CreateOfferRequest true "Offer"
// @Success 201 {object} model.JobOfferDTO
// @Failure 403 {object} httpPlatform.ErrorResponse
// @Failure 422 {object} httpPlatform.ErrorResponse
// @Router /jobs [post]
func (h *OfferHandler) Create(c *gin.Context) {
	principal, _ := auth.GetPrincipal(c)

	var req model.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(model.CodeValidationError), "Invalid request payload")
		return
	}

	offer, err := h.service.Create(c.Request.Context(), principal.UserID, &req)
	if err != nil {
		respondOfferError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusCreated, offer)
}

// List godoc
// @Summary List job offers
// @Tags offers
// @Security BearerAuth
// @Produce json
// @Param contract_type query string false "Contract type filter"
// @Param department query string false "Department filter"
// @Param title query string false "Free-text title filter"
// @Success 200 {object} httpPlatform.PaginatedResponse{items=[]model.JobOfferDTO}
// @Router /jobs [get]
func (h *OfferHandler) List(c *gin.Context) {
	principal, _ := auth.GetPrincipal(c)

	pagination, err := httpPlatform.ParsePaginationParams(c)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(model.CodeValidationError), "Invalid pagination parameters")
		return
	}

	filter := model.ListOffersFilter{
		ContractType: c.Query("contract_type"),
		Department:   c.Query("department"),
		Title:        c.Query("title"),
	}

	offers, total, err := h.service.List(c.Request.Context(), string(principal.Role), principal.CandidateStatus, filter, pagination.Limit, pagination.Offset)
	if err != nil {
		respondOfferError(c, err)
		return
	}
	httpPlatform.RespondWithPagination(c, http.StatusOK, offers, pagination.Limit, pagination.Offset, total)
}

// Get godoc
// @Summary Get a job offer by id
// @Tags offers
// @Security BearerAuth
// @Produce json
// @Param id path string true "Offer id"
// @Success 200 {object} model.JobOfferDTO
// @Failure 403 {object} httpPlatform.ErrorResponse "Offer exists but is not visible to caller"
// @Failure 404 {object} httpPlatform.ErrorResponse
// @Router /jobs/{id} [get]
func (h *OfferHandler) Get(c *gin.Context) {
	principal, _ := auth.GetPrincipal(c)
	offerID := c.Param("id")

	offer, err := h.service.GetByID(c.Request.Context(), string(principal.Role), principal.CandidateStatus, offerID)
	if err != nil {
		respondOfferError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, offer)
}

// Update godoc
// @Summary Update a job offer
// @Tags offers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Offer id"
// @Param request body model.UpdateOfferRequest true "Offer patch"
// @Success 200 {object} model.JobOfferDTO
// @Router /jobs/{id} [put]
func (h *OfferHandler) Update(c *gin.Context) {
	offerID := c.Param("id")

	var req model.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(model.CodeValidationError), "Invalid request payload")
		return
	}

	offer, err := h.service.Update(c.Request.Context(), offerID, &req)
	if err != nil {
		respondOfferError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, offer)
}

// SetState godoc
// @Summary Transition a job offer's lifecycle state
// @Tags offers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Offer id"
// @Param request body model.UpdateOfferStateRequest true "New state"
// @Success 200 {object} model.JobOfferDTO
// @Router /jobs/{id}/state [put]
func (h *OfferHandler) SetState(c *gin.Context) {
	offerID := c.Param("id")

	var req model.UpdateOfferStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(model.CodeValidationError), "Invalid request payload")
		return
	}

	offer, err := h.service.SetState(c.Request.Context(), offerID, req.State)
	if err != nil {
		respondOfferError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, offer)
}

// Delete godoc
// @Summary Delete a job offer
// @Tags offers
// @Security BearerAuth
// @Param id path string true "Offer id"
// @Success 204
// @Router /jobs/{id} [delete]
func (h *OfferHandler) Delete(c *gin.Context) {
	offerID := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), offerID); err != nil {
		respondOfferError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers offer routes. Create/Update/SetState/Delete are
// recruiter/admin only; List/Get are open to any authenticated principal,
// visibility-filtered
func (h *OfferHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	jobs := router.Group("/jobs")
	jobs.Use(authMiddleware)
	{
		jobs.GET("", h.List)
		jobs.GET("/:id", h.Get)

		write := jobs.Group("")
		write.Use(auth.RequireRole(auth.RoleRecruiter, auth.RoleAdmin))
		{
			write.POST("", h.Create)
			write.PUT("/:id", h.Update)
			write.PUT("/:id/state", h.SetState)
			write.DELETE("/:id", h.Delete)
		}
	}
}
