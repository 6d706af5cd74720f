// Package queue defines the reservation events exchanged over RabbitMQ and
// the publisher and audit consumer that move them.
package queue

import "time"

// QueueName is the durable queue every reservation event is routed to.
const QueueName = "reservation.events"

// Event types.
const (
	EventSubmitted     = "reservation.submitted"
	EventStatusChanged = "reservation.status_changed"
)

// ReservationEvent is published after a reservation is created or its
// status changes.  It carries enough of the record for consumers to log or
// notify without querying the database.
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID uint64    `json:"reservation_id"`
	UserID        uint64    `json:"user_id"`
	Email         string    `json:"email"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}
