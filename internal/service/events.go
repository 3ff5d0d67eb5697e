package service

import (
	"context"
	"log/slog"
)

const (
	EventMemberCreated  = "member.created"
	EventMemberUpdated  = "member.updated"
	EventMemberDeleted  = "member.deleted"
	EventCountryCreated = "country.created"
	EventCountryUpdated = "country.updated"
	EventCountryDeleted = "country.deleted"
	EventBookingCreated = "booking.created"
	EventBookingUpdated = "booking.updated"
	EventBookingDeleted = "booking.deleted"
)

// EventPublisher delivers domain events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// publish logs broker failures and drops the event.
func publish(ctx context.Context, p EventPublisher, routingKey string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, routingKey, payload); err != nil {
		slog.Warn("publish event failed", "routing_key", routingKey, "error", err)
	}
}

type deletedEvent struct {
	ID uint `json:"id"`
}
