package handlers

import (
	"net/http"
	"strconv"

	notificationRepo "grandstay/database/repository/notification"
	"grandstay/middleware"
	"grandstay/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the in-app notification feed.
type NotificationHandler struct {
	Notifications notificationRepo.NotificationRepository
}

func NewNotificationHandler(notifications notificationRepo.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{Notifications: notifications}
}

// List handles GET /notifications?unread=true&limit=20.
func (h *NotificationHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "limit must be an integer")
			return
		}
		limit = n
	}

	items, err := h.Notifications.GetByUser(middleware.CurrentUserID(c), unreadOnly, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Notifications", items)
}

// MarkRead handles PUT /notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.Notifications.MarkRead(c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Notification marked read", nil)
}

// MarkAllRead handles PUT /notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.Notifications.MarkAllRead(middleware.CurrentUserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "All notifications marked read", nil)
}
