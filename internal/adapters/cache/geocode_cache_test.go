package cache_test

import (
	"context"
	"meeting-point-service/internal/adapters/cache"
	"meeting-point-service/internal/adapters/repositories"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/platform/db"
	"meeting-point-service/internal/ports"
	"meeting-point-service/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodeCaches(t *testing.T) {
	backends := map[string]func(t *testing.T) ports.GeocodeCache{
		"sqlite": func(t *testing.T) ports.GeocodeCache {
			sqlDB, err := db.OpenSqlite(":memory:")
			require.NoError(t, err)
			t.Cleanup(func() { sqlDB.Close() })
			require.NoError(t, repositories.InitSchema(context.Background(), sqlDB))
			return cache.NewSqliteGeocodeCache(sqlDB)
		},
		"postgres": func(t *testing.T) ports.GeocodeCache {
			sqlDB := testutil.NewMigratedSQLDB(t)
			_, err := sqlDB.Exec(`DELETE FROM geocode_cache`)
			require.NoError(t, err)
			return cache.NewSQLGeocodeCache(sqlDB)
		},
	}

	for name, newCache := range backends {
		t.Run(name, func(t *testing.T) {
			c := newCache(t)
			ctx := context.Background()

			got, err := c.GetMany(ctx, []string{"paris"})
			require.NoError(t, err)
			assert.Empty(t, got)

			require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinates{
				"paris":  {Lat: 48.8566, Lng: 2.3522},
				"berlin": {Lat: 52.52, Lng: 13.405},
			}))

			got, err = c.GetMany(ctx, []string{"paris", "berlin", "paris", " ", "rome"})
			require.NoError(t, err)
			assert.Len(t, got, 2)
			assert.Equal(t, domain.Coordinates{Lat: 48.8566, Lng: 2.3522}, got["paris"])

			require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinates{
				"paris": {Lat: 1, Lng: 2},
			}))
			got, err = c.GetMany(ctx, []string{"paris"})
			require.NoError(t, err)
			assert.Equal(t, domain.Coordinates{Lat: 1, Lng: 2}, got["paris"])

			assert.Error(t, c.PutMany(ctx, map[string]domain.Coordinates{"  ": {}}))
		})
	}
}
