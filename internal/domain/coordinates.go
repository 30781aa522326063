package domain

// Immutable geographic coordinates in signed decimal degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}
