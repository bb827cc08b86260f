package maps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"farely/internal/geo"
)

var ErrNoRoute = errors.New("no route found")

// DrivingEstimate is the first leg of the best driving route.
type DrivingEstimate struct {
	DistanceKm float64
	Duration   time.Duration
}

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API Key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// DrivingDistance asks the Directions API for a driving route between two coordinates.
func (s *RouteService) DrivingDistance(ctx context.Context, origin, destination geo.Point) (DrivingEstimate, error) {
	r := &maps.DirectionsRequest{
		Origin:      latLng(origin),
		Destination: latLng(destination),
		Mode:        maps.TravelModeDriving,
		Region:      "MY",
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return DrivingEstimate{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return DrivingEstimate{}, ErrNoRoute
	}

	leg := routes[0].Legs[0]
	return DrivingEstimate{
		DistanceKm: float64(leg.Distance.Meters) / 1000.0,
		Duration:   leg.Duration,
	}, nil
}

func latLng(p geo.Point) string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lon)
}
