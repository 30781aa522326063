package dto

import "time"

type LocationRequest struct {
	Lat  *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng  *float64 `json:"lng" validate:"required,min=-180,max=180"`
	Name string   `json:"name" validate:"max=200"`
}

type LocationResponse struct {
	ID   string  `json:"id"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
}

type GeocodeRequest struct {
	Address string `json:"address" validate:"required,max=500"`
}

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ResolveInput carries either an address or a lat/lng pair.
type ResolveInput struct {
	Address string   `json:"address" validate:"max=500"`
	Lat     *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lng     *float64 `json:"lng" validate:"omitempty,min=-180,max=180"`
	Name    string   `json:"name" validate:"max=200"`
}

type ResolveRequest struct {
	Inputs []ResolveInput `json:"inputs" validate:"required,min=1,max=100,dive"`
}

type ListLocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
}

type HistoryEntryResponse struct {
	ID        string    `json:"id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListHistoryResponse struct {
	Entries []HistoryEntryResponse `json:"entries"`
}

type SuggestionsResponse struct {
	Suggestions []HistoryEntryResponse `json:"suggestions"`
}

type ShareResponse struct {
	MapURL   string `json:"mapUrl"`
	Message  string `json:"message"`
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email"`
	SMS      string `json:"sms"`
}
