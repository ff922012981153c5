package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/workfusion/workforce-system/internal/core/domain"
	"github.com/workfusion/workforce-system/internal/core/ports"
)

// NotificationService handles the recipient-facing read side and the
// delivery step executed by the dispatcher workers.
type NotificationService struct {
	notifications ports.NotificationRepository
	outbox        ports.OutboxRepository
	logger        zerolog.Logger
}

func NewNotificationService(
	notifications ports.NotificationRepository,
	outbox ports.OutboxRepository,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{notifications: notifications, outbox: outbox, logger: logger}
}

// Deliver materializes an outbox entry as a notification row and marks the
// entry dispatched. Delivery is at-most-once from the recipient's point of
// view: a crash between the insert and the mark can produce a duplicate
// advisory row, which is acceptable for this side channel.
func (s *NotificationService) Deliver(ctx context.Context, e *domain.OutboxEntry) error {
	n := &domain.Notification{
		EntityID:  e.EntityID,
		Role:      e.Role,
		Message:   e.Message,
		IsRead:    false,
		CreatedAt: e.CreatedAt,
	}
	if _, err := s.notifications.Insert(ctx, n); err != nil {
		return fmt.Errorf("deliver notification: %w", err)
	}
	if err := s.outbox.MarkDispatched(ctx, e.ID, time.Now().UTC()); err != nil {
		return fmt.Errorf("mark outbox dispatched: %w", err)
	}
	return nil
}

func (s *NotificationService) ListFor(ctx context.Context, entityID string, role domain.Role) ([]*domain.Notification, error) {
	return s.notifications.ListByRecipient(ctx, entityID, role)
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.notifications.MarkRead(ctx, id)
}

func (s *NotificationService) Delete(ctx context.Context, id string) error {
	return s.notifications.Delete(ctx, id)
}

func (s *NotificationService) CountUnread(ctx context.Context, entityID string, role domain.Role) (int64, error) {
	return s.notifications.CountUnread(ctx, entityID, role)
}
