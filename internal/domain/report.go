package domain

// Distance from one input location to the meeting point, in kilometers
// rounded to two decimals.
type DistanceEntry struct {
	LocationName string
	DistanceKm   float64
}

// Per-location distance breakdown in input order.
// TotalKm and AverageKm are accumulated from the rounded entries.
type DistanceReport struct {
	Entries   []DistanceEntry
	TotalKm   float64
	AverageKm float64
}

// Estimated travel time from one input location to the meeting point.
type TravelTimeEntry struct {
	LocationName string
	Minutes      int
}

// Per-location travel-time breakdown in input order.
// AverageMinutes is rounded to one decimal.
type TravelTimeReport struct {
	Mode           TravelMode
	Entries        []TravelTimeEntry
	AverageMinutes float64
}
