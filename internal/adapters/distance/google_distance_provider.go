package distance

import (
	"context"
	"encoding/json"
	"errors"
	"facility-distance-service/internal/domain"
	"facility-distance-service/internal/platform/obs"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	log "github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"
)

// The Distance Matrix API accepts at most 25 destinations per request.
const googleMaxDestinations = 25

const statusOK = "OK"

// maps.Client reports a non-OK request status as "maps: STATUS - message".
var googleStatusErr = regexp.MustCompile(`^maps: ([A-Z_]+) - `)

// GoogleDistanceProvider implements DistanceProvider and DistanceMatrixProvider
// using the Google Maps Distance Matrix API in driving mode.
//
// A fresh maps.Client is built for every call; nothing is cached and
// failed requests are not retried.
type GoogleDistanceProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type GoogleOption func(*GoogleDistanceProvider)

// WithGoogleBaseURL points the client at another host, e.g. a test server.
func WithGoogleBaseURL(baseURL string) GoogleOption {
	return func(g *GoogleDistanceProvider) { g.baseURL = baseURL }
}

func WithGoogleHTTPClient(c *http.Client) GoogleOption {
	return func(g *GoogleDistanceProvider) { g.httpClient = c }
}

// NewGoogleDistanceProvider accepts an empty apiKey; the first lookup then
// fails with a transport error.
func NewGoogleDistanceProvider(apiKey string, opts ...GoogleOption) *GoogleDistanceProvider {
	g := &GoogleDistanceProvider{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *GoogleDistanceProvider) newClient() (*maps.Client, error) {
	opts := []maps.ClientOption{
		maps.WithAPIKey(g.apiKey),
		maps.WithHTTPClient(g.httpClient),
	}
	if g.baseURL != "" {
		opts = append(opts, maps.WithBaseURL(g.baseURL))
	}
	return maps.NewClient(opts...)
}

// GetDistance issues a single 1x1 driving distance request.
func (g *GoogleDistanceProvider) GetDistance(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ domain.DistanceResult, err error) {
	defer obs.Time(ctx, "google.GetDistance")(&err)

	results, err := g.query(ctx, origin, []domain.Coordinates{destination}, 0)
	if err != nil {
		return domain.DistanceResult{}, err
	}
	return results[0], nil
}

// GetDistances resolves one origin against many destinations. Destinations
// beyond the per-request limit are sent in further sequential requests.
func (g *GoogleDistanceProvider) GetDistances(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (_ []domain.DistanceResult, err error) {
	defer obs.Time(ctx, "google.GetDistances")(&err)

	out := make([]domain.DistanceResult, 0, len(destinations))
	for start := 0; start < len(destinations); start += googleMaxDestinations {
		end := min(start+googleMaxDestinations, len(destinations))

		results, err := g.query(ctx, origin, destinations[start:end], start)
		if err != nil {
			return nil, err
		}
		out = append(out, results...)
	}

	return out, nil
}

// query sends one request. offset is the position of destinations[0] in the
// caller's list.
func (g *GoogleDistanceProvider) query(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
	offset int,
) ([]domain.DistanceResult, error) {
	logger := log.WithFields(log.Fields{
		"prefix": "distance",
		"req_id": obs.RequestID(ctx),
		"origin": origin.String(),
	})

	client, err := g.newClient()
	if err != nil {
		logger.WithError(err).Error("google maps client unavailable")
		return nil, &domain.ResolveError{Kind: domain.FailureTransport, Err: fmt.Errorf("google client: %w", err)}
	}

	req := &maps.DistanceMatrixRequest{
		Origins:      []string{origin.String()},
		Destinations: make([]string, 0, len(destinations)),
		Mode:         maps.TravelModeDriving,
	}
	for _, d := range destinations {
		req.Destinations = append(req.Destinations, d.String())
	}

	resp, err := client.DistanceMatrix(ctx, req)
	if err != nil {
		if m := googleStatusErr.FindStringSubmatch(err.Error()); m != nil {
			logger.WithField("status", m[1]).Error("distance matrix request rejected")
			return nil, &domain.ResolveError{Kind: domain.FailureMatrix, Status: m[1], Err: err}
		}
		if isMalformedReply(err) {
			logger.WithError(err).Error("unexpected distance matrix reply")
			return nil, &domain.ResolveError{Kind: domain.FailureUnexpected, Err: fmt.Errorf("decode distance matrix reply: %w", err)}
		}
		logger.WithError(err).Error("distance matrix request failed")
		return nil, &domain.ResolveError{Kind: domain.FailureTransport, Err: err}
	}

	if len(resp.Rows) != 1 || len(resp.Rows[0].Elements) != len(destinations) {
		err := fmt.Errorf("expected 1 row with %d elements, got %d rows", len(destinations), len(resp.Rows))
		logger.WithError(err).Error("unexpected distance matrix reply")
		return nil, &domain.ResolveError{Kind: domain.FailureUnexpected, Err: err}
	}

	out := make([]domain.DistanceResult, 0, len(destinations))
	for i, el := range resp.Rows[0].Elements {
		if el == nil {
			err := fmt.Errorf("element %d is missing", i)
			logger.WithError(err).Error("unexpected distance matrix reply")
			return nil, &domain.ResolveError{Kind: domain.FailureUnexpected, Err: err}
		}

		if el.Status != statusOK {
			logger.WithFields(log.Fields{
				"status":      el.Status,
				"destination": destinations[i].String(),
			}).Error("distance element failed")
			return nil, &domain.ResolveError{
				Kind:   domain.FailureElement,
				Status: el.Status,
				Index:  i + offset,
				Err:    fmt.Errorf("destination %d (%s)", i+offset, destinations[i]),
			}
		}

		if el.Distance.HumanReadable == "" {
			err := fmt.Errorf("element %d has status OK but no distance", i+offset)
			logger.WithField("destination", destinations[i].String()).WithError(err).Error("unexpected distance matrix reply")
			return nil, &domain.ResolveError{Kind: domain.FailureUnexpected, Index: i + offset, Err: err}
		}

		seconds := int(el.Duration / time.Second)
		out = append(out, domain.DistanceResult{
			Distance:        el.Distance.HumanReadable,
			Duration:        domain.FormatDuration(seconds),
			DistanceMeters:  el.Distance.Meters,
			DurationSeconds: seconds,
		})
	}

	return out, nil
}

// isMalformedReply reports whether err came from decoding the reply body
// rather than from reaching the service.
func isMalformedReply(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.EOF)
}
