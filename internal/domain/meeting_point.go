package domain

import "time"

// Kind names the strategy used to compute a meeting point.
type Kind string

const (
	KindByDistance   Kind = "byDistance"
	KindByTravelTime Kind = "byTravelTime"
)

// Label returns the human-readable title used for history entries and shares.
func (k Kind) Label() string {
	switch k {
	case KindByTravelTime:
		return "Travel Time Point"
	default:
		return "Center Point"
	}
}

// Represents a computed meeting point.
// A MeetingPoint has no identity of its own: it is derived from the location
// set and strategy that produced it and is stale as soon as that set changes.
type MeetingPoint struct {
	Lat  float64
	Lng  float64
	Kind Kind
}

// Coordinates returns the meeting point's position.
func (m MeetingPoint) Coordinates() Coordinates {
	return Coordinates{Lat: m.Lat, Lng: m.Lng}
}

// Represents a meeting point the user computed earlier.
type HistoryEntry struct {
	ID        string
	Lat       float64
	Lng       float64
	Kind      Kind
	Name      string
	CreatedAt time.Time
}
