package handlers

import (
	"errors"
	"net/http"

	"retail_backend/internal/services"
	"retail_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler holds the notification service.
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(ns services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: ns}
}

// GetNotifications lists low stock notifications, optionally unread only.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	onlyUnread := c.DefaultQuery("unread", "false") == "true"

	notifications, err := h.notificationService.List(onlyUnread)
	if err != nil {
		utils.LogError(err, "GetNotifications: Error from notificationService.List")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch notifications.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkNotificationRead marks one notification as read.
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Notification not found.", err.Error()))
		} else {
			utils.LogError(err, "MarkNotificationRead: Error from notificationService.MarkRead")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update notification.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetLowStock lists products below their per-product minimum at any location.
func (h *NotificationHandler) GetLowStock(c *gin.Context) {
	entries, err := h.notificationService.LowStock()
	if err != nil {
		utils.LogError(err, "GetLowStock: Error from notificationService.LowStock")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch low stock list.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"low_stock": entries})
}
