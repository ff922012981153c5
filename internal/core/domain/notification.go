package domain

import "time"

// Notification is a transient advisory message for one recipient. An entity
// id is only unique within a role (a manager id and an employee id may
// collide), so the recipient key is always the (EntityID, Role) pair.
type Notification struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	EntityID  string    `json:"entity_id" bson:"entity_id"`
	Role      Role      `json:"role_id" bson:"role_id"`
	Message   string    `json:"message" bson:"message"`
	IsRead    bool      `json:"is_read" bson:"is_read"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// OutboxStatus is the delivery state of a pending notification intent.
type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "pending"
	OutboxDispatched OutboxStatus = "dispatched"
)

// OutboxEntry records the intent to notify, written right after the primary
// mutation commits. Entries are drained asynchronously; a crash between the
// mutation and delivery leaves the entry pending so the sweeper can retry,
// while a delivery failure can never roll back the mutation.
type OutboxEntry struct {
	ID           string       `json:"id" bson:"_id"`
	EntityID     string       `json:"entity_id" bson:"entity_id"`
	Role         Role         `json:"role_id" bson:"role_id"`
	Message      string       `json:"message" bson:"message"`
	Status       OutboxStatus `json:"status" bson:"status"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
	DispatchedAt *time.Time   `json:"dispatched_at,omitempty" bson:"dispatched_at,omitempty"`
}

// RecipientKey returns the sharding key for per-recipient delivery ordering.
func (e *OutboxEntry) RecipientKey() string {
	return e.Role.String() + ":" + e.EntityID
}
