package ports

import (
	"context"
	"meeting-point-service/internal/domain"
)

// Contract for resolving a free-text address to coordinates.
type Geocoder interface {
	// Return coordinates for the address, or domain.ErrLocationNotFound
	// when the lookup service has no match.
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
