package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	httpPlatform "github.com/seeg/recruiting-platform/internal/platform/http"
	"github.com/seeg/recruiting-platform/internal/platform/logger"
	"github.com/seeg/recruiting-platform/internal/platform/webhook"
	"github.com/seeg/recruiting-platform/modules/etl/model"
	"github.com/seeg/recruiting-platform/modules/etl/ports"
	"github.com/seeg/recruiting-platform/modules/etl/service"
)

// webhookPayload mirrors the Fan-out Dispatcher's POST body.
type webhookPayload struct {
	ApplicationID string `json:"application_id" binding:"required"`
	Event         string `json:"event"`
}

// WebhookHandler receives the Fan-out Dispatcher's internal call and runs
// the ETL Projector.
type WebhookHandler struct {
	projector *service.Projector
	reconcile ports.ReconciliationRepository
	logger    *logger.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(projector *service.Projector, reconcile ports.ReconciliationRepository, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{projector: projector, reconcile: reconcile, logger: log}
}

// ApplicationSubmitted godoc
// @Summary Internal webhook: run the ETL Projector for a submitted application
// @Tags internal
// @Accept json
// @Param request body webhookPayload true "Event"
// @Success 202
// @Router /webhooks/application-submitted [post]
func (h *WebhookHandler) ApplicationSubmitted(c *gin.Context) {
	var payload webhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid webhook payload")
		return
	}

	if _, err := h.projector.Run(c.Request.Context(), payload.ApplicationID); err != nil {
		if errors.Is(err, model.ErrApplicationNotFound) {
			httpPlatform.RespondWithError(c, http.StatusNotFound, "APPLICATION_NOT_FOUND", "application not found")
			return
		}
		h.logger.WithAction("project_application").WithError("PROJECTION_FAILED").Error(err.Error())
		if recErr := h.reconcile.Create(c.Request.Context(), payload.ApplicationID, err.Error()); recErr != nil {
			h.logger.WithAction("project_application").Error("failed to record reconciliation entry: " + recErr.Error())
		}
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "projection failed")
		return
	}

	// 202: the Projector already ran synchronously here, but the Dispatcher's
	// caller (itself) doesn't need the response body — ack-style
	c.Status(http.StatusAccepted)
}

// RegisterRoutes mounts the webhook route group behind the shared-secret
// middleware instead of user JWT auth.
func (h *WebhookHandler) RegisterRoutes(router *gin.RouterGroup, webhookSecret string) {
	group := router.Group("/webhooks")
	group.Use(webhook.VerifySharedSecret(webhookSecret))
	{
		group.POST("/application-submitted", h.ApplicationSubmitted)
	}
}
