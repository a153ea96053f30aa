package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"facility-distance-service/internal/domain"
	"facility-distance-service/internal/platform/obs"
	"fmt"
	"math"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// ORS reports unroutable pairs as null matrix cells.
const orsStatusNoRoute = "ZERO_RESULTS"

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// fetchMatrixRow retrieves distance and duration from one origin to many destinations
// using the OpenRouteService matrix endpoint. Results follow destination order.
func (o *ORSDistanceProvider) fetchMatrixRow(
	ctx context.Context,
	originCoord domain.Coordinates,
	destinationCoords []domain.Coordinates,
) ([]domain.DistanceResult, error) {
	if len(destinationCoords) == 0 {
		return []domain.DistanceResult{}, nil
	}

	logger := log.WithFields(log.Fields{
		"prefix": "distance",
		"req_id": obs.RequestID(ctx),
		"origin": originCoord.String(),
	})

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	locations := make([][]float64, 0, 1+len(destinationCoords))
	locations = append(locations, originCoord.CoordsToList())
	for _, c := range destinationCoords {
		locations = append(locations, c.CoordsToList())
	}

	destIdx := make([]int, 0, len(destinationCoords))
	for i := 1; i < len(locations); i++ {
		destIdx = append(destIdx, i)
	}

	bodyObj := matrixRequest{
		Locations:    locations,
		Destinations: destIdx,
		Metrics:      []string{"distance", "duration"},
		Sources:      []int{0},
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return nil, &domain.ResolveError{Kind: domain.FailureUnexpected, Err: fmt.Errorf("marshal matrix request: %w", err)}
	}

	req, err := o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &domain.ResolveError{Kind: domain.FailureTransport, Err: err}
	}

	resp, err := o.do(req)
	if err != nil {
		re := classifyORSError(fmt.Errorf("matrix request failed: %w", err))
		logger.WithField("status", re.Status).WithError(err).Error("distance matrix request failed")
		return nil, re
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		logger.WithError(err).Error("unexpected distance matrix reply")
		return nil, &domain.ResolveError{Kind: domain.FailureUnexpected, Err: fmt.Errorf("decode matrix response: %w", err)}
	}

	if len(mr.Distances) != 1 || len(mr.Durations) != 1 {
		err := fmt.Errorf(
			"expected 1 source row; got distances=%d durations=%d",
			len(mr.Distances), len(mr.Durations),
		)
		logger.WithError(err).Error("unexpected distance matrix reply")
		return nil, &domain.ResolveError{Kind: domain.FailureUnexpected, Err: err}
	}

	rowDistances := mr.Distances[0]
	rowDurations := mr.Durations[0]

	if len(rowDistances) != len(destinationCoords) || len(rowDurations) != len(destinationCoords) {
		err := fmt.Errorf(
			"row lengths do not match destinations: distances=%d durations=%d destinations=%d",
			len(rowDistances), len(rowDurations), len(destinationCoords),
		)
		logger.WithError(err).Error("unexpected distance matrix reply")
		return nil, &domain.ResolveError{Kind: domain.FailureUnexpected, Err: err}
	}

	out := make([]domain.DistanceResult, 0, len(destinationCoords))
	for i, dest := range destinationCoords {
		metersPtr := rowDistances[i]
		secondsPtr := rowDurations[i]

		if metersPtr == nil || secondsPtr == nil {
			logger.WithFields(log.Fields{
				"status":      orsStatusNoRoute,
				"destination": dest.String(),
			}).Error("distance element failed")
			return nil, &domain.ResolveError{
				Kind:   domain.FailureElement,
				Status: orsStatusNoRoute,
				Index:  i,
				Err:    fmt.Errorf("destination %d (%s)", i, dest),
			}
		}

		// ORS returns float metrics; round to nearest integer for domain consistency.
		meters := int(math.Round(*metersPtr))
		seconds := int(math.Round(*secondsPtr))

		out = append(out, domain.DistanceResult{
			Distance:        domain.FormatDistance(meters),
			Duration:        domain.FormatDuration(seconds),
			DistanceMeters:  meters,
			DurationSeconds: seconds,
		})
	}

	return out, nil
}
