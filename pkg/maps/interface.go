package maps

import "context"

// RouteEstimate is the distance/duration quote used to prefill a booking's
// distance when the operator types only the addresses.
type RouteEstimate struct {
	DistanceKM      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
}

type DistanceEstimator interface {
	EstimateRoute(ctx context.Context, origin, destination string) (*RouteEstimate, error)
}
