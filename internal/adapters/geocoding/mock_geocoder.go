package geocoding

import (
	"context"
	"fmt"
	"meeting-point-service/internal/domain"
)

// MockGeocoder resolves addresses from a fixed table. Unknown addresses
// yield ErrLocationNotFound.
type MockGeocoder struct {
	m map[string]domain.Coordinates
}

func NewMockGeocoder(known map[string]domain.Coordinates) *MockGeocoder {
	m := make(map[string]domain.Coordinates, len(known))
	for addr, c := range known {
		m[normalize(addr)] = c
	}
	return &MockGeocoder{m: m}
}

func (g *MockGeocoder) Geocode(_ context.Context, address string) (domain.Coordinates, error) {
	c, ok := g.m[normalize(address)]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, domain.ErrLocationNotFound)
	}
	return c, nil
}
