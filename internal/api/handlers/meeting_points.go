package handlers

import (
	"meeting-point-service/internal/api/dto"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/services"
	"net/http"
	"strings"
)

// MeetingPointHandler computes meeting points for posted locations.
type MeetingPointHandler struct {
	Finder *services.MeetingPointFinder
}

func (h *MeetingPointHandler) ByDistance(w http.ResponseWriter, r *http.Request) {
	var req dto.DistanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.Finder.ByDistance(r.Context(), toLocations(req.Locations))
	if err != nil {
		writeServiceError(w, r, "meeting points by distance", err)
		return
	}

	out := dto.DistanceResponse{
		MeetingPoint: toMeetingPointResponse(res.Point),
		Distances:    make([]dto.DistanceEntryResponse, 0, len(res.Report.Entries)),
		TotalKm:      res.Report.TotalKm,
		AverageKm:    res.Report.AverageKm,
	}
	for _, e := range res.Report.Entries {
		out.Distances = append(out.Distances, dto.DistanceEntryResponse{
			LocationName: e.LocationName,
			DistanceKm:   e.DistanceKm,
		})
	}

	writeJSON(w, r, http.StatusOK, out)
}

// ByTravelTime echoes departAt back untouched; estimates do not depend on it.
func (h *MeetingPointHandler) ByTravelTime(w http.ResponseWriter, r *http.Request) {
	var req dto.TravelTimeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.Finder.ByTravelTime(r.Context(), toLocations(req.Locations), domain.TravelMode(req.Mode))
	if err != nil {
		writeServiceError(w, r, "meeting points by travel time", err)
		return
	}

	out := dto.TravelTimeResponse{
		MeetingPoint:   toMeetingPointResponse(res.Point),
		Mode:           string(res.Report.Mode),
		TravelTimes:    make([]dto.TravelTimeEntryResponse, 0, len(res.Report.Entries)),
		AverageMinutes: res.Report.AverageMinutes,
		DepartAt:       req.DepartAt,
	}
	for _, e := range res.Report.Entries {
		out.TravelTimes = append(out.TravelTimes, dto.TravelTimeEntryResponse{
			LocationName: e.LocationName,
			Minutes:      e.Minutes,
		})
	}

	writeJSON(w, r, http.StatusOK, out)
}

// toLocations assigns IDs and positional names; the request is already
// validated. Blank names get the positional placeholder.
func toLocations(in []dto.LocationRequest) []domain.Location {
	out := make([]domain.Location, 0, len(in))
	for i, l := range in {
		out = append(out, domain.NewLocation(*l.Lat, *l.Lng, strings.TrimSpace(l.Name), i+1))
	}
	return out
}

func toMeetingPointResponse(p domain.MeetingPoint) dto.MeetingPointResponse {
	return dto.MeetingPointResponse{Lat: p.Lat, Lng: p.Lng, Kind: string(p.Kind)}
}
