package services

import (
	"context"
	"fmt"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/ports"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MinLocations is the fewest locations a meeting point is computed for.
const MinLocations = 2

// DefaultHistoryLimit is how many history entries are kept when unset.
const DefaultHistoryLimit = 10

// sideEffectTimeout bounds each history save and event publish so a slow
// store or unreachable broker cannot hold up the response.
const sideEffectTimeout = 3 * time.Second

type DistanceResult struct {
	Point  domain.MeetingPoint
	Report domain.DistanceReport
}

type TravelTimeResult struct {
	Point  domain.MeetingPoint
	Report domain.TravelTimeReport
}

// MeetingPointFinder computes meeting points, then records each one in the
// history and announces it to the event publisher. Neither side effect can
// fail a computation; failures are logged.
type MeetingPointFinder struct {
	history      ports.HistoryRepository
	publisher    ports.EventPublisher
	historyLimit int
	timeout      time.Duration
	now          func() time.Time
}

func NewMeetingPointFinder(
	history ports.HistoryRepository,
	publisher ports.EventPublisher,
	historyLimit int,
) *MeetingPointFinder {
	if historyLimit < 1 {
		historyLimit = DefaultHistoryLimit
	}
	return &MeetingPointFinder{
		history:      history,
		publisher:    publisher,
		historyLimit: historyLimit,
		timeout:      sideEffectTimeout,
		now:          time.Now,
	}
}

// ByDistance returns the centroid of locations and each location's distance to it.
func (f *MeetingPointFinder) ByDistance(ctx context.Context, locations []domain.Location) (DistanceResult, error) {
	if err := requireLocations(locations); err != nil {
		return DistanceResult{}, fmt.Errorf("find by distance: %w", err)
	}

	centroid, err := CalculateCentroid(locations)
	if err != nil {
		return DistanceResult{}, fmt.Errorf("find by distance: %w", err)
	}

	report, err := CalculateDistanceReport(locations, centroid)
	if err != nil {
		return DistanceResult{}, fmt.Errorf("find by distance: %w", err)
	}

	point := domain.MeetingPoint{Lat: centroid.Lat, Lng: centroid.Lng, Kind: domain.KindByDistance}
	f.record(ctx, point, len(locations), "")

	return DistanceResult{Point: point, Report: report}, nil
}

// ByTravelTime returns the centroid of locations with per-location travel
// time estimates for mode. An empty mode means driving.
func (f *MeetingPointFinder) ByTravelTime(
	ctx context.Context,
	locations []domain.Location,
	mode domain.TravelMode,
) (TravelTimeResult, error) {
	if err := requireLocations(locations); err != nil {
		return TravelTimeResult{}, fmt.Errorf("find by travel time: %w", err)
	}
	if mode == "" {
		mode = domain.ModeDriving
	}

	centroid, err := CalculateCentroid(locations)
	if err != nil {
		return TravelTimeResult{}, fmt.Errorf("find by travel time: %w", err)
	}

	report, err := EstimateTravelTimes(locations, centroid, mode)
	if err != nil {
		return TravelTimeResult{}, fmt.Errorf("find by travel time: %w", err)
	}

	point := domain.MeetingPoint{Lat: centroid.Lat, Lng: centroid.Lng, Kind: domain.KindByTravelTime}
	f.record(ctx, point, len(locations), mode)

	return TravelTimeResult{Point: point, Report: report}, nil
}

func requireLocations(locations []domain.Location) error {
	if len(locations) < MinLocations {
		return fmt.Errorf(
			"need at least %d locations, got %d: %w",
			MinLocations, len(locations), domain.ErrInvalidInput,
		)
	}
	return nil
}

func (f *MeetingPointFinder) record(
	ctx context.Context,
	point domain.MeetingPoint,
	locationCount int,
	mode domain.TravelMode,
) {
	logger := zerolog.Ctx(ctx)
	now := f.now().UTC()

	if f.history != nil {
		entry := NewHistoryEntry(point, now)
		saveCtx, cancel := context.WithTimeout(ctx, f.timeout)
		err := f.history.Save(saveCtx, entry, f.historyLimit)
		cancel()
		if err != nil {
			logger.Warn().Err(err).Str("kind", string(point.Kind)).Msg("history save failed")
		}
	}

	if f.publisher != nil {
		event := ports.MeetingPointComputed{
			Kind:          point.Kind,
			Lat:           point.Lat,
			Lng:           point.Lng,
			LocationCount: locationCount,
			Mode:          mode,
			ComputedAt:    now,
		}
		pubCtx, cancel := context.WithTimeout(ctx, f.timeout)
		err := f.publisher.Publish(pubCtx, event)
		cancel()
		if err != nil {
			logger.Warn().Err(err).Str("kind", string(point.Kind)).Msg("event publish failed")
		}
	}
}

// NewHistoryEntry labels point with its kind and the UTC date it was computed.
func NewHistoryEntry(point domain.MeetingPoint, at time.Time) domain.HistoryEntry {
	at = at.UTC()
	return domain.HistoryEntry{
		ID:        uuid.NewString(),
		Lat:       point.Lat,
		Lng:       point.Lng,
		Kind:      point.Kind,
		Name:      fmt.Sprintf("%s (%s)", point.Kind.Label(), at.Format("2006-01-02")),
		CreatedAt: at,
	}
}
