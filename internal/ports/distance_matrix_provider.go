package ports

import (
	"context"
	"facility-distance-service/internal/domain"
)

// Optional extension of DistanceProvider that supports batched lookups.
type DistanceMatrixProvider interface {
	DistanceProvider
	// Return distances from one origin to many destinations, in destination order.
	// Any failed destination fails the whole call.
	GetDistances(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates) ([]domain.DistanceResult, error)
}
