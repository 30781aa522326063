package domain

// TravelMode selects the fixed average speed used for travel-time estimates.
type TravelMode string

const (
	ModeDriving   TravelMode = "driving"
	ModeWalking   TravelMode = "walking"
	ModeBicycling TravelMode = "bicycling"
	ModeTransit   TravelMode = "transit"
)

// Average speeds in km/h.
const (
	drivingSpeedKmh   = 40.0 // average city driving
	walkingSpeedKmh   = 5.0
	bicyclingSpeedKmh = 15.0
	transitSpeedKmh   = 25.0 // average including stops
)

// SpeedKmh returns the average speed for the mode.
// Unrecognized modes use the driving speed.
func (m TravelMode) SpeedKmh() float64 {
	switch m {
	case ModeWalking:
		return walkingSpeedKmh
	case ModeBicycling:
		return bicyclingSpeedKmh
	case ModeTransit:
		return transitSpeedKmh
	default:
		return drivingSpeedKmh
	}
}
