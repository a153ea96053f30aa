package ports

import (
	"context"
	"facility-distance-service/internal/domain"
)

// Contract for retrieving driving distance and duration between two coordinates.
//
// Failures are reported as *domain.ResolveError so callers can tell element,
// matrix and transport failures apart.
type DistanceProvider interface {
	// Return travel distance and estimated duration from origin to destination.
	GetDistance(ctx context.Context, origin, destination domain.Coordinates) (domain.DistanceResult, error)
}
