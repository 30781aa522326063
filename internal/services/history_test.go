package services

import (
	"context"
	"fmt"
	"meeting-point-service/internal/adapters/repositories"
	"meeting-point-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory(t *testing.T, names ...string) *repositories.MemoryHistoryRepository {
	t.Helper()

	repo := repositories.NewMemoryHistoryRepository()
	for i, n := range names {
		require.NoError(t, repo.Save(context.Background(), domain.HistoryEntry{
			ID:        fmt.Sprintf("id-%d", i),
			Name:      n,
			Kind:      domain.KindByDistance,
			CreatedAt: time.Unix(int64(i), 0),
		}, 10))
	}
	return repo
}

func TestHistorySuggest(t *testing.T) {
	svc := NewHistoryService(seedHistory(t,
		"Center Point (2025-01-01)",
		"Travel Time Point (2025-01-02)",
		"Center Point (2025-01-03)",
	), 10)
	ctx := context.Background()

	got, err := svc.Suggest(ctx, "  CENTER ")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Center Point (2025-01-03)", got[0].Name)
	assert.Equal(t, "Center Point (2025-01-01)", got[1].Name)

	got, err = svc.Suggest(ctx, "c")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = svc.Suggest(ctx, "nothing like it")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHistorySuggestCapsResults(t *testing.T) {
	names := make([]string, 8)
	for i := range names {
		names[i] = fmt.Sprintf("Center Point (2025-01-%02d)", i+1)
	}
	svc := NewHistoryService(seedHistory(t, names...), 10)

	got, err := svc.Suggest(context.Background(), "point")
	require.NoError(t, err)
	assert.Len(t, got, MaxSuggestions)
	assert.Equal(t, "Center Point (2025-01-08)", got[0].Name)
}

func TestHistoryRecentClampsLimit(t *testing.T) {
	svc := NewHistoryService(seedHistory(t, "a", "b", "c", "d"), 3)
	ctx := context.Background()

	got, err := svc.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = svc.Recent(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = svc.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "d", got[0].Name)
	assert.Len(t, got, 2)
}

func TestHistoryGetAndClear(t *testing.T) {
	svc := NewHistoryService(seedHistory(t, "a", "b"), 10)
	ctx := context.Background()

	e, err := svc.Get(ctx, "id-0")
	require.NoError(t, err)
	assert.Equal(t, "a", e.Name)

	_, err = svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.Clear(ctx))
	got, err := svc.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewHistoryEntryName(t *testing.T) {
	at := time.Date(2024, 12, 31, 23, 0, 0, 0, time.FixedZone("UTC-5", -5*3600))
	e := NewHistoryEntry(domain.MeetingPoint{Lat: 1, Lng: 2, Kind: domain.KindByTravelTime}, at)

	assert.Equal(t, "Travel Time Point (2025-01-01)", e.Name)
	assert.Equal(t, time.UTC, e.CreatedAt.Location())
	assert.Len(t, e.ID, 36)
}
