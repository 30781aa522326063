package services

import (
	"fmt"
	"math"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/geomath"
)

// CalculateCentroid returns the arithmetic mean of the latitudes and,
// independently, of the longitudes.
//
// This is a planar average of degree values, not a geodesic centroid. It is a
// good approximation away from the poles and the ±180° meridian only.
func CalculateCentroid(locations []domain.Location) (domain.Coordinates, error) {
	if len(locations) == 0 {
		return domain.Coordinates{}, fmt.Errorf("calculate centroid: no locations: %w", domain.ErrInvalidInput)
	}

	var sumLat, sumLng float64
	for _, loc := range locations {
		sumLat += loc.Lat
		sumLng += loc.Lng
	}

	n := float64(len(locations))
	return domain.Coordinates{Lat: sumLat / n, Lng: sumLng / n}, nil
}

// CalculateDistanceReport measures each location's great-circle distance to
// the centroid, in input order.
//
// Each distance is rounded to two decimals first; total and average are then
// accumulated from the rounded values, so they match what is displayed.
func CalculateDistanceReport(locations []domain.Location, centroid domain.Coordinates) (domain.DistanceReport, error) {
	if len(locations) == 0 {
		return domain.DistanceReport{}, fmt.Errorf("calculate distance report: no locations: %w", domain.ErrInvalidInput)
	}

	entries := make([]domain.DistanceEntry, 0, len(locations))
	total := 0.0
	for _, loc := range locations {
		d := roundTo(geomath.HaversineKm(loc.Lat, loc.Lng, centroid.Lat, centroid.Lng), 2)
		total += d
		entries = append(entries, domain.DistanceEntry{LocationName: loc.Name, DistanceKm: d})
	}

	return domain.DistanceReport{
		Entries:   entries,
		TotalKm:   roundTo(total, 2),
		AverageKm: roundTo(total/float64(len(entries)), 2),
	}, nil
}

// EstimateTravelTimes approximates each location's travel time to the
// meeting point as straight-line distance over the mode's fixed speed.
// No routing service is consulted.
func EstimateTravelTimes(
	locations []domain.Location,
	meetingPoint domain.Coordinates,
	mode domain.TravelMode,
) (domain.TravelTimeReport, error) {
	if len(locations) == 0 {
		return domain.TravelTimeReport{}, fmt.Errorf("estimate travel times: no locations: %w", domain.ErrInvalidInput)
	}

	speed := mode.SpeedKmh()

	entries := make([]domain.TravelTimeEntry, 0, len(locations))
	sum := 0
	for _, loc := range locations {
		km := geomath.HaversineKm(loc.Lat, loc.Lng, meetingPoint.Lat, meetingPoint.Lng)
		minutes := int(math.Round(km / speed * 60))
		sum += minutes
		entries = append(entries, domain.TravelTimeEntry{LocationName: loc.Name, Minutes: minutes})
	}

	return domain.TravelTimeReport{
		Mode:           mode,
		Entries:        entries,
		AverageMinutes: roundTo(float64(sum)/float64(len(entries)), 1),
	}, nil
}

// roundTo rounds half away from zero to the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
