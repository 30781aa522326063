package dto

import "time"

type DistanceRequest struct {
	Locations []LocationRequest `json:"locations" validate:"required,max=100,dive"`
}

type TravelTimeRequest struct {
	Locations []LocationRequest `json:"locations" validate:"required,max=100,dive"`
	Mode      string            `json:"mode" validate:"omitempty,oneof=driving walking bicycling transit"`
	DepartAt  *time.Time        `json:"departAt"`
}

type MeetingPointResponse struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Kind string  `json:"kind"`
}

type DistanceEntryResponse struct {
	LocationName string  `json:"locationName"`
	DistanceKm   float64 `json:"distanceKm"`
}

type DistanceResponse struct {
	MeetingPoint MeetingPointResponse    `json:"meetingPoint"`
	Distances    []DistanceEntryResponse `json:"distances"`
	TotalKm      float64                 `json:"totalKm"`
	AverageKm    float64                 `json:"averageKm"`
}

type TravelTimeEntryResponse struct {
	LocationName string `json:"locationName"`
	Minutes      int    `json:"minutes"`
}

type TravelTimeResponse struct {
	MeetingPoint   MeetingPointResponse      `json:"meetingPoint"`
	Mode           string                    `json:"mode"`
	TravelTimes    []TravelTimeEntryResponse `json:"travelTimes"`
	AverageMinutes float64                   `json:"averageMinutes"`
	DepartAt       *time.Time                `json:"departAt,omitempty"`
}
