package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seeg/recruiting-platform/internal/platform/auth"
	httpPlatform "github.com/seeg/recruiting-platform/internal/platform/http"
	"github.com/seeg/recruiting-platform/modules/notifications/model"
	"github.com/seeg/recruiting-platform/modules/notifications/service"
)

// NotificationHandler handles Notification HTTP requests.
type NotificationHandler struct {
	service *service.NotificationService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(service *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func respondNotificationError(c *gin.Context, err error) {
	code := model.GetErrorCode(err)
	httpPlatform.RespondWithError(c, httpPlatform.StatusForCode(string(code)), string(code), model.GetErrorMessage(err))
}

// List godoc
// @Summary List the caller's notifications
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} httpPlatform.PaginatedResponse{items=[]model.NotificationDTO}
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	principal, _ := auth.GetPrincipal(c)

	pagination, err := httpPlatform.ParsePaginationParams(c)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pagination parameters")
		return
	}

	notifications, total, err := h.service.List(c.Request.Context(), principal.UserID, pagination.Limit, pagination.Offset)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	httpPlatform.RespondWithPagination(c, http.StatusOK, notifications, pagination.Limit, pagination.Offset, total)
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Security BearerAuth
// @Param id path string true "Notification id"
// @Success 204
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	principal, _ := auth.GetPrincipal(c)
	if err := h.service.MarkRead(c.Request.Context(), principal.UserID, c.Param("id")); err != nil {
		respondNotificationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats godoc
// @Summary Get the caller's notification counters
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.Stats
// @Router /notifications/stats [get]
func (h *NotificationHandler) Stats(c *gin.Context) {
	principal, _ := auth.GetPrincipal(c)
	stats, err := h.service.Stats(c.Request.Context(), principal.UserID)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, stats)
}

// RegisterRoutes registers notification routes, open to any authenticated principal.
func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	notifications := router.Group("/notifications")
	notifications.Use(authMiddleware)
	{
		notifications.GET("", h.List)
		notifications.GET("/stats", h.Stats)
		notifications.PUT("/:id/read", h.MarkRead)
	}
}
