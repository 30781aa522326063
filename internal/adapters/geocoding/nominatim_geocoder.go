package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/platform/obs"
	"meeting-point-service/internal/ports"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// NominatimGeocoder implements Geocoder against the Nominatim search API.
//
// Lookups are keyed by the whitespace-normalized address. When a cache is
// configured it is consulted before the network and filled after a
// successful lookup.
//
// The geocoder is safe for concurrent use.
type NominatimGeocoder struct {
	session   *http.Client
	baseURL   string
	userAgent string
	cache     ports.GeocodeCache
	backoff   time.Duration
}

// searchResult is one element of the Nominatim JSON array. Coordinates are
// returned as strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewNominatimGeocoder builds a geocoder. cache may be nil.
func NewNominatimGeocoder(baseURL, userAgent string, cache ports.GeocodeCache) (*NominatimGeocoder, error) {
	if strings.TrimSpace(userAgent) == "" {
		return nil, errors.New("nominatim user agent is empty")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &NominatimGeocoder{
		session:   &http.Client{Timeout: 10 * time.Second},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		cache:     cache,
		backoff:   200 * time.Millisecond,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Geocode resolves a free-form address to coordinates.
func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	norm := normalize(address)
	if norm == "" {
		return domain.Coordinates{}, fmt.Errorf("geocode: address must be non-empty: %w", domain.ErrInvalidInput)
	}

	if g.cache != nil {
		hits, err := g.cache.GetMany(ctx, []string{norm})
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode: get geocode cache: %w", err)
		}
		if c, ok := hits[norm]; ok {
			return c, nil
		}
	}

	coords, err := g.search(ctx, norm)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", norm, err)
	}

	if g.cache != nil {
		if err := g.cache.PutMany(ctx, map[string]domain.Coordinates{norm: coords}); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("address", norm).Msg("geocode cache write failed")
		}
	}

	return coords, nil
}

func (g *NominatimGeocoder) search(ctx context.Context, norm string) (domain.Coordinates, error) {
	endpoint := g.baseURL + "/search"

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.newRequest(ctx, http.MethodGet, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("format", "json")
		q.Set("q", norm)
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode search response: %w", err)
	}

	if len(decoded) == 0 {
		return domain.Coordinates{}, domain.ErrLocationNotFound
	}

	lat, err := strconv.ParseFloat(decoded[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse lat %q: %w", decoded[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(decoded[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse lon %q: %w", decoded[0].Lon, err)
	}

	return domain.Coordinates{Lat: lat, Lng: lng}, nil
}
