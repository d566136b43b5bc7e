package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/repairshop-service/internal/api/dto"
	"github.com/spec-kit/repairshop-service/internal/auth"
	"github.com/spec-kit/repairshop-service/internal/service"
	apperrors "github.com/spec-kit/repairshop-service/pkg/util"
)

// NotificationsHandler manages in-app notification endpoints.
type NotificationsHandler struct {
	service *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{service: notificationService}
}

// ListNotifications GET /notifications.
func (h *NotificationsHandler) ListNotifications(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	notifications, fromCache, err := h.service.ListNotifications(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	items := make([]dto.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		items = append(items, dto.NotificationResponse{
			ID:        notification.ID,
			Title:     notification.Title,
			Body:      notification.Body,
			Read:      notification.Read,
			CreatedAt: notification.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items, "from_cache": fromCache})
}
