package ports

import (
	"context"
	"time"

	"github.com/workfusion/workforce-system/internal/core/domain"
)

// NotificationRepository persists delivered notifications. Every read path
// filters by entity and role together, because entity ids are only unique
// within a role.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) (string, error)
	ListByRecipient(ctx context.Context, entityID string, role domain.Role) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	CountUnread(ctx context.Context, entityID string, role domain.Role) (int64, error)
}

// OutboxRepository persists notification intents awaiting delivery.
type OutboxRepository interface {
	Append(ctx context.Context, e *domain.OutboxEntry) error
	MarkDispatched(ctx context.Context, id string, at time.Time) error
	// ListPending returns up to limit undelivered entries, oldest first.
	ListPending(ctx context.Context, limit int) ([]*domain.OutboxEntry, error)
}

// Notifier is the fire-and-forget side channel workflow services invoke
// after their primary mutation has committed. Implementations record the
// intent durably and deliver asynchronously; callers log a returned error
// and move on; it must never fail the primary operation.
type Notifier interface {
	Notify(ctx context.Context, entityID string, role domain.Role, message string) (string, error)
}

// NotificationService exposes the recipient-facing read side and the
// delivery step executed by dispatcher workers.
type NotificationService interface {
	// Deliver inserts the notification row for an outbox entry and marks the
	// entry dispatched.
	Deliver(ctx context.Context, e *domain.OutboxEntry) error
	ListFor(ctx context.Context, entityID string, role domain.Role) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	CountUnread(ctx context.Context, entityID string, role domain.Role) (int64, error)
}
