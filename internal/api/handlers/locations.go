package handlers

import (
	"meeting-point-service/internal/api/dto"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/ports"
	"meeting-point-service/internal/services"
	"net/http"
)

// LocationHandler turns addresses into coordinates.
type LocationHandler struct {
	Geocoder ports.Geocoder
}

func (h *LocationHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	var req dto.GeocodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.Geocoder.Geocode(r.Context(), req.Address)
	if err != nil {
		writeServiceError(w, r, "geocode", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CoordinatesResponse{Lat: c.Lat, Lng: c.Lng})
}

func (h *LocationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req dto.ResolveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	inputs := make([]services.LocationInput, 0, len(req.Inputs))
	for _, in := range req.Inputs {
		inputs = append(inputs, services.LocationInput{
			Address: in.Address,
			Lat:     in.Lat,
			Lng:     in.Lng,
			Name:    in.Name,
		})
	}

	locs, err := services.ResolveLocations(r.Context(), h.Geocoder, inputs)
	if err != nil {
		writeServiceError(w, r, "resolve locations", err)
		return
	}

	res := dto.ListLocationsResponse{Locations: make([]dto.LocationResponse, 0, len(locs))}
	for _, l := range locs {
		res.Locations = append(res.Locations, toLocationResponse(l))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toLocationResponse(l domain.Location) dto.LocationResponse {
	return dto.LocationResponse{ID: l.ID.String(), Lat: l.Lat, Lng: l.Lng, Name: l.Name}
}
