package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Represents one input point contributed by a user.
// Locations are owned by the caller; computations never retain them.
type Location struct {
	ID   uuid.UUID
	Lat  float64
	Lng  float64
	Name string
}

// NewLocation creates a location with a fresh ID.
// An empty name falls back to the positional placeholder for position,
// the 1-based index the location takes in the caller's list.
func NewLocation(lat, lng float64, name string, position int) Location {
	if name == "" {
		name = PlaceholderName(position)
	}
	return Location{
		ID:   uuid.New(),
		Lat:  lat,
		Lng:  lng,
		Name: name,
	}
}

// PlaceholderName returns the default label for the location at a 1-based position.
func PlaceholderName(position int) string {
	return fmt.Sprintf("Location %d", position)
}

// MoveTo repositions the location in place, keeping its identity and name.
func (l *Location) MoveTo(lat, lng float64) {
	l.Lat = lat
	l.Lng = lng
}

// Coordinates returns the location's position.
func (l Location) Coordinates() Coordinates {
	return Coordinates{Lat: l.Lat, Lng: l.Lng}
}
