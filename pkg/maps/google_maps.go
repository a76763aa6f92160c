package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

type GoogleMapsClient struct {
	client *maps.Client
	region string
}

func NewGoogleMapsClient(apiKey, region string) (*GoogleMapsClient, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create google maps client: %w", err)
	}

	return &GoogleMapsClient{
		client: client,
		region: region,
	}, nil
}

func (g *GoogleMapsClient) EstimateRoute(ctx context.Context, origin, destination string) (*RouteEstimate, error) {
	request := &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Units:        maps.UnitsMetric,
	}

	response, err := g.client.DistanceMatrix(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("distance matrix request failed: %w", err)
	}

	if len(response.Rows) == 0 || len(response.Rows[0].Elements) == 0 {
		return nil, fmt.Errorf("no route between %q and %q", origin, destination)
	}

	element := response.Rows[0].Elements[0]
	if element.Status != "OK" {
		return nil, fmt.Errorf("route lookup failed: %s", element.Status)
	}

	return &RouteEstimate{
		DistanceKM:      float64(element.Distance.Meters) / 1000.0,
		DurationMinutes: element.Duration.Minutes(),
		Origin:          origin,
		Destination:     destination,
	}, nil
}
