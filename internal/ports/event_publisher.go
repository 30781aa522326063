package ports

import (
	"context"
	"meeting-point-service/internal/domain"
	"time"
)

// Emitted after every successful meeting point computation.
type MeetingPointComputed struct {
	Kind          domain.Kind
	Lat           float64
	Lng           float64
	LocationCount int
	Mode          domain.TravelMode
	ComputedAt    time.Time
}

// Contract for announcing computed meeting points to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event MeetingPointComputed) error
}
