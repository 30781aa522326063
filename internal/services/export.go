package services

import (
	"context"
	"encoding/json"
	"fmt"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/ports"
	"time"
)

type exportLocation struct {
	ID   string  `json:"id"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
}

type exportPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type exportMeetingPoints struct {
	Distance   *exportPoint `json:"distance"`
	TravelTime *exportPoint `json:"travelTime"`
}

type exportDocument struct {
	Locations     []exportLocation    `json:"locations"`
	MeetingPoints exportMeetingPoints `json:"meetingPoints"`
	ExportDate    time.Time           `json:"exportDate"`
}

// BuildExport snapshots the session. Either meeting point may be nil.
func BuildExport(
	locations []domain.Location,
	byDistance, byTravel *domain.Coordinates,
	at time.Time,
) (domain.Export, error) {
	if len(locations) == 0 {
		return domain.Export{}, fmt.Errorf("build export: no locations to export: %w", domain.ErrInvalidInput)
	}

	locs := make([]domain.Location, len(locations))
	copy(locs, locations)

	return domain.Export{
		Locations:  locs,
		ByDistance: byDistance,
		ByTravel:   byTravel,
		ExportedAt: at.UTC(),
	}, nil
}

// MarshalExport renders the export document as indented JSON.
func MarshalExport(e domain.Export) ([]byte, error) {
	doc := exportDocument{
		Locations:  make([]exportLocation, 0, len(e.Locations)),
		ExportDate: e.ExportedAt.UTC(),
	}
	for _, l := range e.Locations {
		doc.Locations = append(doc.Locations, exportLocation{
			ID:   l.ID.String(),
			Lat:  l.Lat,
			Lng:  l.Lng,
			Name: l.Name,
		})
	}
	if e.ByDistance != nil {
		doc.MeetingPoints.Distance = &exportPoint{Lat: e.ByDistance.Lat, Lng: e.ByDistance.Lng}
	}
	if e.ByTravel != nil {
		doc.MeetingPoints.TravelTime = &exportPoint{Lat: e.ByTravel.Lat, Lng: e.ByTravel.Lng}
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return b, nil
}

// ExportService builds export documents and archives them when a store is
// configured.
type ExportService struct {
	store ports.ExportStore
	now   func() time.Time
}

// NewExportService builds the service. store may be nil.
func NewExportService(store ports.ExportStore) *ExportService {
	return &ExportService{store: store, now: time.Now}
}

type ExportResult struct {
	Export    domain.Export
	Body      []byte
	StoredKey string
}

func (s *ExportService) Export(
	ctx context.Context,
	locations []domain.Location,
	byDistance, byTravel *domain.Coordinates,
) (ExportResult, error) {
	e, err := BuildExport(locations, byDistance, byTravel, s.now())
	if err != nil {
		return ExportResult{}, err
	}

	body, err := MarshalExport(e)
	if err != nil {
		return ExportResult{}, err
	}

	res := ExportResult{Export: e, Body: body}
	if s.store != nil {
		key, err := s.store.Store(ctx, e, body)
		if err != nil {
			return ExportResult{}, fmt.Errorf("export: store: %w", err)
		}
		res.StoredKey = key
	}
	return res, nil
}
