package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seeg/recruiting-platform/internal/platform/auth"
	httpPlatform "github.com/seeg/recruiting-platform/internal/platform/http"
	"github.com/seeg/recruiting-platform/modules/evaluations/model"
	"github.com/seeg/recruiting-platform/modules/evaluations/service"
)

// EvaluationHandler handles Evaluation HTTP requests.
type EvaluationHandler struct {
	service *service.EvaluationService
}

// NewEvaluationHandler creates a new evaluation handler.
func NewEvaluationHandler(service *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{service: service}
}

func respondEvaluationError(c *gin.Context, err error) {
	code := model.GetErrorCode(err)
	httpPlatform.RespondWithError(c, httpPlatform.StatusForCode(string(code)), string(code), model.GetErrorMessage(err))
}

// Create godoc
// @Summary Open a Protocol-1/Protocol-2 evaluation for an application
// @Tags evaluations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Application id"
// @Param request body model.CreateEvaluationRequest true "Evaluation"
// @Success 201 {object} model.EvaluationDTO
// @Router /applications/{id}/evaluations [post]
func (h *EvaluationHandler) Create(c *gin.Context) {
	principal, _ := auth.GetPrincipal(c)
	applicationID := c.Param("id")

	var req model.CreateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(model.CodeValidationError), "Invalid request payload")
		return
	}

	eval, err := h.service.Create(c.Request.Context(), applicationID, principal.UserID, &req)
	if err != nil {
		respondEvaluationError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusCreated, eval)
}

// ListByApplication godoc
// @Summary List evaluations for an application
// @Tags evaluations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Application id"
// @Success 200 {array} model.EvaluationDTO
// @Router /applications/{id}/evaluations [get]
func (h *EvaluationHandler) ListByApplication(c *gin.Context) {
	applicationID := c.Param("id")
	evals, err := h.service.ListByApplication(c.Request.Context(), applicationID)
	if err != nil {
		respondEvaluationError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, evals)
}

// Get godoc
// @Summary Get an evaluation by id
// @Tags evaluations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Evaluation id"
// @Success 200 {object} model.EvaluationDTO
// @Router /evaluations/{id} [get]
func (h *EvaluationHandler) Get(c *gin.Context) {
	eval, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondEvaluationError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, eval)
}

// Update godoc
// @Summary Update an evaluation's scores/state
// @Tags evaluations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Evaluation id"
// @Param request body model.UpdateEvaluationRequest true "Evaluation patch"
// @Success 200 {object} model.EvaluationDTO
// @Router /evaluations/{id} [put]
func (h *EvaluationHandler) Update(c *gin.Context) {
	var req model.UpdateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(model.CodeValidationError), "Invalid request payload")
		return
	}

	eval, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondEvaluationError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, eval)
}

// RegisterRoutes registers evaluation routes. All of them are recruiter/
// admin only. The application-scoped paths reuse the :id wildcard name the
// applications module registered for that segment.
func (h *EvaluationHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	group := router.Group("")
	group.Use(authMiddleware, auth.RequireRole(auth.RoleRecruiter, auth.RoleAdmin))
	{
		group.POST("/applications/:id/evaluations", h.Create)
		group.GET("/applications/:id/evaluations", h.ListByApplication)
		group.GET("/evaluations/:id", h.Get)
		group.PUT("/evaluations/:id", h.Update)
	}
}
