package services

import (
	"context"
	"errors"
	"fmt"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/ports"
	"strings"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentGeocodes bounds in-flight geocoder calls per request.
const maxConcurrentGeocodes = 5

// LocationInput is either an address to geocode or explicit coordinates.
// Lat and Lng are ignored when Address is set.
type LocationInput struct {
	Address string
	Lat     *float64
	Lng     *float64
	Name    string
}

// ResolveLocations turns inputs into locations in the same order.
//
// Addresses are geocoded concurrently; the first failure cancels the rest.
// A geocoded location without a name is named after its address, any other
// unnamed location gets its positional placeholder.
func ResolveLocations(
	ctx context.Context,
	geocoder ports.Geocoder,
	inputs []LocationInput,
) ([]domain.Location, error) {
	for i, in := range inputs {
		if strings.TrimSpace(in.Address) == "" && (in.Lat == nil || in.Lng == nil) {
			return nil, fmt.Errorf(
				"resolve locations: input #%d needs an address or both lat and lng: %w",
				i+1, domain.ErrInvalidInput,
			)
		}
		if strings.TrimSpace(in.Address) != "" && geocoder == nil {
			return nil, errors.New("resolve locations: geocoder is nil")
		}
	}

	out := make([]domain.Location, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentGeocodes)

	for i, in := range inputs {
		position := i + 1
		name := strings.TrimSpace(in.Name)
		address := strings.TrimSpace(in.Address)

		if address == "" {
			out[i] = domain.NewLocation(*in.Lat, *in.Lng, name, position)
			continue
		}
		if name == "" {
			name = address
		}

		g.Go(func() error {
			c, err := geocoder.Geocode(gctx, address)
			if err != nil {
				return fmt.Errorf("resolve locations: input #%d %q: %w", position, address, err)
			}
			out[i] = domain.NewLocation(c.Lat, c.Lng, name, position)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
