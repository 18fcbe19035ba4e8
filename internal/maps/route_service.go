// README: Google Maps directions client used for travel legs between booked slots.
package maps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"googlemaps.github.io/maps"
)

var ErrNoRoute = errors.New("no route found")

// Leg is the travel estimate between two places.
type Leg struct {
	From     string        `json:"from"`
	To       string        `json:"to"`
	Mode     string        `json:"mode"`
	Duration time.Duration `json:"duration"`
	Distance string        `json:"distance"`
}

// directions is the part of *maps.Client the service calls.
type directions interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client directions
	mode   maps.Mode
}

// NewRouteService creates a RouteService. mode is "walking", "transit" or "driving";
// anything else means walking.
func NewRouteService(apiKey, mode string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client, mode: parseMode(mode)}, nil
}

func parseMode(mode string) maps.Mode {
	switch mode {
	case "transit":
		return maps.TravelModeTransit
	case "driving":
		return maps.TravelModeDriving
	default:
		return maps.TravelModeWalking
	}
}

// EstimateLeg returns the first route leg between two free-text locations.
func (s *RouteService) EstimateLeg(ctx context.Context, origin, destination string) (Leg, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        s.mode,
		Language:    "en",
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return Leg{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return Leg{}, ErrNoRoute
	}

	leg := routes[0].Legs[0]
	return Leg{
		From:     origin,
		To:       destination,
		Mode:     string(s.mode),
		Duration: leg.Duration,
		Distance: leg.Distance.HumanReadable,
	}, nil
}
