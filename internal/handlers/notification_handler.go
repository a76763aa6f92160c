package handlers

import (
	"github.com/gin-gonic/gin"

	"taxidesk/internal/middleware"
	"taxidesk/internal/services"
	"taxidesk/internal/utils"
	"taxidesk/pkg/logger"
)

type NotificationHandler struct {
	notifications *services.NotificationService
	logger        *logger.Logger
}

func NewNotificationHandler(notifications *services.NotificationService, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		logger:        log.WithField("handler", "notification"),
	}
}

// List shows the logged-in user's in-app notification feed.
func (h *NotificationHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	items, total, err := h.notifications.ListForRecipient(c.Request.Context(), middleware.GetUserID(c), params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponseWithMeta(c, "", items, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.notifications.MarkRead(c.Request.Context(), id); err != nil {
		respondRepoError(c, err, "notification")
		return
	}
	utils.SuccessResponse(c, "", nil)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notifications.CountUnread(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponse(c, "", gin.H{"unread": count})
}
