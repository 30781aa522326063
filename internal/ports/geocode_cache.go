package ports

import (
	"context"
	"meeting-point-service/internal/domain"
)

// Persistent address -> coordinates cache consulted before the network.
// Keys are normalized by the caller.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
