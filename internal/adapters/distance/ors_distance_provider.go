package distance

import (
	"context"
	"errors"
	"facility-distance-service/internal/domain"
	"facility-distance-service/internal/platform/obs"
	"net/http"
	"strings"
	"time"
)

const orsDefaultBaseURL = "https://api.openrouteservice.org"

// ORSDistanceProvider implements DistanceProvider and DistanceMatrixProvider
// using the OpenRouteService matrix API with the driving-car profile.
//
// Requests are sent once; there is no caching and no retry.
type ORSDistanceProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
}

// NewORSDistanceProvider builds a provider. An empty baseURL selects the public ORS API.
func NewORSDistanceProvider(apiKey, baseURL string) (*ORSDistanceProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if baseURL == "" {
		baseURL = orsDefaultBaseURL
	}

	provider := &ORSDistanceProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: "driving-car",
	}

	return provider, nil
}

// Delegate to the matrix path with a single destination.
func (o *ORSDistanceProvider) GetDistance(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ domain.DistanceResult, err error) {
	defer obs.Time(ctx, "ors.GetDistance")(&err)

	results, err := o.fetchMatrixRow(ctx, origin, []domain.Coordinates{destination})
	if err != nil {
		return domain.DistanceResult{}, err
	}

	return results[0], nil
}

// Compute distances from a single origin to many destinations in one request.
func (o *ORSDistanceProvider) GetDistances(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (_ []domain.DistanceResult, err error) {
	defer obs.Time(ctx, "ors.GetDistances")(&err)

	return o.fetchMatrixRow(ctx, origin, destinations)
}
