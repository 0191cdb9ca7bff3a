package service

import "context"

// DayUpdatedEvent tells interested clients that a pillar's completion state
// changed, so an open app view can refresh without polling.
type DayUpdatedEvent struct {
	UserID    string `json:"user_id"`
	Date      string `json:"date"`
	Pillar    string `json:"pillar"`
	Completed bool   `json:"completed"`
	Source    string `json:"source"`
}

// EventPublisher defines the interface for publishing day-updated events.
type EventPublisher interface {
	// PublishDayUpdated publishes a day-updated event. Implementations are
	// best-effort; a failed publish must not fail the triggering operation.
	PublishDayUpdated(ctx context.Context, event *DayUpdatedEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
