package handlers

import (
	"meeting-point-service/internal/api/dto"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/services"
	"net/http"
	"strconv"
)

// Share returns share links for the point given by the lat and lng query parameters.
func Share(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		writeError(w, r, http.StatusBadRequest, "lat must be a number between -90 and 90")
		return
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil || lng < -180 || lng > 180 {
		writeError(w, r, http.StatusBadRequest, "lng must be a number between -180 and 180")
		return
	}

	links := services.BuildShareLinks(domain.Coordinates{Lat: lat, Lng: lng})

	writeJSON(w, r, http.StatusOK, dto.ShareResponse{
		MapURL:   links.MapURL,
		Message:  links.Message,
		WhatsApp: links.WhatsApp,
		Email:    links.Email,
		SMS:      links.SMS,
	})
}
