package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"meeting-point-service/internal/adapters/events"
	"meeting-point-service/internal/adapters/geocoding"
	"meeting-point-service/internal/adapters/repositories"
	"meeting-point-service/internal/api"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/services"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memExportStore struct{ keys []string }

func (s *memExportStore) Store(_ context.Context, e domain.Export, _ []byte) (string, error) {
	key := "exports/test/" + e.FileName()
	s.keys = append(s.keys, key)
	return key, nil
}

type testServer struct {
	handler http.Handler
	history *repositories.MemoryHistoryRepository
	store   *memExportStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	history := repositories.NewMemoryHistoryRepository()
	store := &memExportStore{}
	geo := geocoding.NewMockGeocoder(map[string]domain.Coordinates{
		"Eiffel Tower": {Lat: 48.8584, Lng: 2.2945},
		"Louvre":       {Lat: 48.8606, Lng: 2.3376},
	})

	h := api.NewRouter(api.Deps{
		Finder:      services.NewMeetingPointFinder(history, events.NoopPublisher{}, 10),
		History:     services.NewHistoryService(history, 10),
		Exports:     services.NewExportService(store),
		Geocoder:    geo,
		Logger:      zerolog.Nop(),
		CORSOrigins: []string{"*"},
	})
	return &testServer{handler: h, history: history, store: store}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(v), w.Body.String())
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestMeetingPointByDistance(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/meeting-points/distance",
		`{"locations":[{"lat":0,"lng":0,"name":"A"},{"lat":0,"lng":2}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		MeetingPoint struct {
			Lat  float64 `json:"lat"`
			Lng  float64 `json:"lng"`
			Kind string  `json:"kind"`
		} `json:"meetingPoint"`
		Distances []struct {
			LocationName string  `json:"locationName"`
			DistanceKm   float64 `json:"distanceKm"`
		} `json:"distances"`
		TotalKm   float64 `json:"totalKm"`
		AverageKm float64 `json:"averageKm"`
	}
	decode(t, w, &res)

	assert.Equal(t, 1.0, res.MeetingPoint.Lng)
	assert.Equal(t, "byDistance", res.MeetingPoint.Kind)
	require.Len(t, res.Distances, 2)
	assert.Equal(t, "A", res.Distances[0].LocationName)
	assert.Equal(t, "Location 2", res.Distances[1].LocationName)
	assert.Equal(t, 111.19, res.Distances[1].DistanceKm)
	assert.Equal(t, 222.38, res.TotalKm)
	assert.Equal(t, 111.19, res.AverageKm)

	entries, err := s.history.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMeetingPointBlankNameGetsPlaceholder(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/meeting-points/distance",
		`{"locations":[{"lat":0,"lng":0,"name":"  Home  "},{"lat":0,"lng":2,"name":"   "}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		Distances []struct {
			LocationName string `json:"locationName"`
		} `json:"distances"`
	}
	decode(t, w, &res)

	require.Len(t, res.Distances, 2)
	assert.Equal(t, "Home", res.Distances[0].LocationName)
	assert.Equal(t, "Location 2", res.Distances[1].LocationName)
}

func TestMeetingPointByTravelTime(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/meeting-points/travel-time",
		`{"locations":[{"lat":0,"lng":0},{"lat":0,"lng":2}],"mode":"bicycling","departAt":"2025-05-01T08:00:00Z"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		MeetingPoint struct {
			Kind string `json:"kind"`
		} `json:"meetingPoint"`
		Mode        string `json:"mode"`
		TravelTimes []struct {
			Minutes int `json:"minutes"`
		} `json:"travelTimes"`
		AverageMinutes float64 `json:"averageMinutes"`
		DepartAt       string  `json:"departAt"`
	}
	decode(t, w, &res)

	assert.Equal(t, "byTravelTime", res.MeetingPoint.Kind)
	assert.Equal(t, "bicycling", res.Mode)
	require.Len(t, res.TravelTimes, 2)
	assert.Equal(t, 445, res.TravelTimes[0].Minutes)
	assert.Equal(t, 445.0, res.AverageMinutes)
	assert.Equal(t, "2025-05-01T08:00:00Z", res.DepartAt)
}

func TestMeetingPointValidation(t *testing.T) {
	s := newTestServer(t)

	cases := map[string]struct {
		path string
		body string
		want string
	}{
		"latitude out of range": {
			"/meeting-points/distance",
			`{"locations":[{"lat":91,"lng":0},{"lat":0,"lng":0}]}`,
			"lat",
		},
		"missing lng": {
			"/meeting-points/distance",
			`{"locations":[{"lat":1},{"lat":0,"lng":0}]}`,
			"lng",
		},
		"single location": {
			"/meeting-points/distance",
			`{"locations":[{"lat":1,"lng":1}]}`,
			"at least 2 locations",
		},
		"unknown mode": {
			"/meeting-points/travel-time",
			`{"locations":[{"lat":1,"lng":1},{"lat":0,"lng":0}],"mode":"teleport"}`,
			"mode",
		},
		"unknown field": {
			"/meeting-points/distance",
			`{"locations":[],"extra":true}`,
			"invalid json body",
		},
		"two objects": {
			"/meeting-points/distance",
			`{"locations":[]}{}`,
			"only one JSON object",
		},
		"missing locations": {
			"/meeting-points/distance",
			`{}`,
			"locations",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var res map[string]string
			decode(t, w, &res)
			assert.Contains(t, res["error"], tc.want)
		})
	}
}

func TestGeocode(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/geocode", `{"address":"Eiffel  Tower"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"lat":48.8584,"lng":2.2945}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/geocode", `{"address":"Atlantis"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Location not found")

	w = s.do(t, http.MethodPost, "/geocode", `{"address":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveLocations(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/locations/resolve",
		`{"inputs":[{"address":"Louvre"},{"lat":1,"lng":2},{"address":"Eiffel Tower","name":"Tower"}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		Locations []struct {
			ID   string  `json:"id"`
			Lat  float64 `json:"lat"`
			Name string  `json:"name"`
		} `json:"locations"`
	}
	decode(t, w, &res)

	require.Len(t, res.Locations, 3)
	assert.Equal(t, "Louvre", res.Locations[0].Name)
	assert.Equal(t, "Location 2", res.Locations[1].Name)
	assert.Equal(t, "Tower", res.Locations[2].Name)
	assert.Equal(t, 48.8584, res.Locations[2].Lat)
	assert.Len(t, res.Locations[0].ID, 36)

	w = s.do(t, http.MethodPost, "/locations/resolve", `{"inputs":[{"lat":1}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/locations/resolve", `{"inputs":[{"address":"Atlantis"}]}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistoryEndpoints(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 3; i++ {
		w := s.do(t, http.MethodPost, "/meeting-points/distance",
			`{"locations":[{"lat":0,"lng":0},{"lat":0,"lng":2}]}`)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := s.do(t, http.MethodPost, "/meeting-points/travel-time",
		`{"locations":[{"lat":0,"lng":0},{"lat":0,"lng":2}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	type entry struct {
		ID   string `json:"id"`
		Kind string `json:"kind"`
		Name string `json:"name"`
	}

	w = s.do(t, http.MethodGet, "/history?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Entries []entry `json:"entries"`
	}
	decode(t, w, &list)
	require.Len(t, list.Entries, 2)
	assert.Equal(t, "byTravelTime", list.Entries[0].Kind)
	assert.True(t, strings.HasPrefix(list.Entries[0].Name, "Travel Time Point ("))

	w = s.do(t, http.MethodGet, "/history?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/history/"+list.Entries[1].ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var one entry
	decode(t, w, &one)
	assert.Equal(t, list.Entries[1].ID, one.ID)

	w = s.do(t, http.MethodGet, "/history/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/history/suggest?q=center", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sugg struct {
		Suggestions []entry `json:"suggestions"`
	}
	decode(t, w, &sugg)
	assert.Len(t, sugg.Suggestions, 3)

	w = s.do(t, http.MethodDelete, "/history", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"entries":[]}`, w.Body.String())
}

func TestShare(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/share?lat=51.5&lng=-0.12", "")
	require.Equal(t, http.StatusOK, w.Code)

	var res map[string]string
	decode(t, w, &res)
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=51.5,-0.12", res["mapUrl"])
	assert.True(t, strings.HasPrefix(res["whatsapp"], "https://wa.me/?text=Check%20out"))
	assert.True(t, strings.HasPrefix(res["email"], "mailto:?subject=Meeting%20Point&body="))
	assert.True(t, strings.HasPrefix(res["sms"], "sms:?body="))

	w = s.do(t, http.MethodGet, "/share?lat=100&lng=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/share?lat=1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExport(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/export",
		`{"locations":[{"id":"0b5e0f0e-9f53-4c8e-9d52-1f0b3e6e0a11","lat":1,"lng":2,"name":"A"}],`+
			`"meetingPoints":{"distance":{"lat":1,"lng":2}}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="meeting-points-`)
	require.Len(t, s.store.keys, 1)
	assert.Equal(t, s.store.keys[0], w.Header().Get("X-Export-Key"))

	var doc struct {
		Locations []struct {
			ID string `json:"id"`
		} `json:"locations"`
		MeetingPoints struct {
			Distance   *struct{ Lat float64 } `json:"distance"`
			TravelTime *struct{ Lat float64 } `json:"travelTime"`
		} `json:"meetingPoints"`
		ExportDate string `json:"exportDate"`
	}
	decode(t, w, &doc)
	assert.Equal(t, "0b5e0f0e-9f53-4c8e-9d52-1f0b3e6e0a11", doc.Locations[0].ID)
	assert.NotNil(t, doc.MeetingPoints.Distance)
	assert.Nil(t, doc.MeetingPoints.TravelTime)
	assert.NotEmpty(t, doc.ExportDate)

	w = s.do(t, http.MethodPost, "/export", `{"locations":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no locations to export")
}

func TestRequestIDAndCORS(t *testing.T) {
	s := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
