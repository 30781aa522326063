package handlers

import (
	"meeting-point-service/internal/api/dto"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/services"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ExportKeyHeader carries the archive key when the export was stored.
const ExportKeyHeader = "X-Export-Key"

type ExportHandler struct {
	Exports *services.ExportService
}

// Export responds with the export document as a JSON attachment.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req dto.ExportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	locs := make([]domain.Location, 0, len(req.Locations))
	for i, l := range req.Locations {
		loc := domain.NewLocation(*l.Lat, *l.Lng, l.Name, i+1)
		if l.ID != "" {
			loc.ID = uuid.MustParse(l.ID)
		}
		locs = append(locs, loc)
	}

	res, err := h.Exports.Export(r.Context(), locs, toCoordinates(req.MeetingPoints.Distance), toCoordinates(req.MeetingPoints.TravelTime))
	if err != nil {
		writeServiceError(w, r, "export", err)
		return
	}

	if res.StoredKey != "" {
		w.Header().Set(ExportKeyHeader, res.StoredKey)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Export.FileName()+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("write export failed")
	}
}

func toCoordinates(p *dto.PointRequest) *domain.Coordinates {
	if p == nil {
		return nil
	}
	return &domain.Coordinates{Lat: *p.Lat, Lng: *p.Lng}
}
