// Package events defines the activity events emitted after list and item
// mutations commit, and the publishers that deliver them.
package events

import (
	"context"
	"time"
)

// Event types.
const (
	ListCreated   = "lista.created"
	ListDeleted   = "lista.deleted"
	ItemAdded     = "item.added"
	ItemCompleted = "item.completed"
)

// QueueName is the durable RabbitMQ queue that carries activity events.
const QueueName = "shopping.activity"

// ActivityEvent is published once the mutation it describes has committed.
// It carries enough context for consumers to log or notify without
// querying the primary database.
type ActivityEvent struct {
	Type       string    `json:"type"`
	UserID     uint64    `json:"user_id"`
	ListID     uint64    `json:"lista_id"`
	ItemID     uint64    `json:"item_id,omitempty"`
	Name       string    `json:"nombre,omitempty"`
	Completed  *bool     `json:"completed,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers activity events.  Publish must not block the request
// on broker availability; failures are the publisher's to log.
type Publisher interface {
	Publish(ctx context.Context, ev ActivityEvent)
}

// Noop discards every event.  It is used when EVENTS_ENABLED is false.
type Noop struct{}

func (Noop) Publish(context.Context, ActivityEvent) {}
