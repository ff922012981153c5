package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workfusion/workforce-system/internal/core/domain"
	"github.com/workfusion/workforce-system/internal/core/ports"
)

type NotificationHandler struct {
	notificationService ports.NotificationService
}

func NewNotificationHandler(notificationService ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// recipient parses the path pair and enforces that non-admin callers only
// touch their own inbox. Entity ids are only unique within a role, so both
// path segments must match the token claims.
func (h *NotificationHandler) recipient(c echo.Context) (string, domain.Role, error) {
	role, ok := domain.ParseRole(c.Param("roleId"))
	if !ok {
		return "", 0, echo.NewHTTPError(http.StatusBadRequest, "invalid role id")
	}
	entityID := c.Param("entityId")

	actorRole, actorEntity, err := ctxActor(c)
	if err != nil {
		return "", 0, err
	}
	if actorRole != domain.RoleAdmin && (actorRole != role || actorEntity != entityID) {
		return "", 0, domain.ErrForbiddenScope
	}
	return entityID, role, nil
}

// List returns the recipient's notifications, newest first.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Param        entityId  path  string  true  "Recipient entity id"
// @Param        roleId    path  string  true  "Recipient role id"
// @Success      200  {array}   domain.Notification
// @Failure      403  {object}  errorResponse
// @Router       /notifications/{entityId}/{roleId} [get]
func (h *NotificationHandler) List(c echo.Context) error {
	entityID, role, err := h.recipient(c)
	if err != nil {
		return err
	}

	rows, err := h.notificationService.ListFor(c.Request().Context(), entityID, role)
	if err != nil {
		return err
	}
	if rows == nil {
		rows = []*domain.Notification{}
	}
	return c.JSON(http.StatusOK, rows)
}

// UnreadCount returns the recipient's unread notification count.
//
// @Summary      Count unread notifications
// @Tags         notifications
// @Produce      json
// @Param        entityId  path  string  true  "Recipient entity id"
// @Param        roleId    path  string  true  "Recipient role id"
// @Success      200  {object}  map[string]int64
// @Failure      403  {object}  errorResponse
// @Router       /notifications/{entityId}/{roleId}/unread-count [get]
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	entityID, role, err := h.recipient(c)
	if err != nil {
		return err
	}

	count, err := h.notificationService.CountUnread(c.Request().Context(), entityID, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int64{"unread": count})
}

// MarkRead flags one notification as read.
//
// @Summary      Mark a notification read
// @Tags         notifications
// @Produce      json
// @Param        id  path  string  true  "Notification id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if err := h.notificationService.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "notification marked read"})
}

// Delete removes one notification.
//
// @Summary      Delete a notification
// @Tags         notifications
// @Produce      json
// @Param        id  path  string  true  "Notification id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c echo.Context) error {
	if err := h.notificationService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "notification deleted"})
}
