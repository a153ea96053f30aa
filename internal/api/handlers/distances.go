package handlers

import (
	"context"
	"errors"
	"facility-distance-service/internal/api/dto"
	"facility-distance-service/internal/domain"
	"net/http"
)

// DistanceResolver is the service surface the distance endpoints depend on.
type DistanceResolver interface {
	Resolve(ctx context.Context, origin domain.Coordinates, requestType string) (*domain.ResultAggregate, error)
	Lookup(ctx context.Context, origin, destination domain.Coordinates) (domain.DistanceResult, error)
}

type DistanceHandler struct {
	Resolver DistanceResolver
}

// Batch serves GET /distances?lat=&lng=&category= with the ordered facility aggregate.
func (h *DistanceHandler) Batch(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	origin, err := parseCoordinates(r, "lat", "lng")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	agg, err := h.Resolver.Resolve(r.Context(), origin, r.URL.Query().Get("category"))
	if err != nil {
		writeResolveError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, agg)
}

// Single serves GET /distance?origin_lat=&origin_lng=&dest_lat=&dest_lng=.
func (h *DistanceHandler) Single(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	origin, err := parseCoordinates(r, "origin_lat", "origin_lng")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	dest, err := parseCoordinates(r, "dest_lat", "dest_lng")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.Resolver.Lookup(r.Context(), origin, dest)
	if err != nil {
		writeResolveError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{
		Distance:         res.Distance,
		Duration:         res.Duration,
		RawDistanceValue: res.DistanceMeters,
		RawDurationValue: res.DurationSeconds,
	})
}

func parseCoordinates(r *http.Request, latKey, lngKey string) (domain.Coordinates, error) {
	lat, err := parseFloatParam(r, latKey)
	if err != nil {
		return domain.Coordinates{}, err
	}
	lng, err := parseFloatParam(r, lngKey)
	if err != nil {
		return domain.Coordinates{}, err
	}
	return domain.Coordinates{Lat: lat, Lng: lng}, nil
}

// writeResolveError maps routing failures to 502 and local failures to 500.
func writeResolveError(w http.ResponseWriter, r *http.Request, err error) {
	var re *domain.ResolveError
	if !errors.As(err, &re) {
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	status := http.StatusInternalServerError
	msg := "internal server error"
	switch re.Kind {
	case domain.FailureElement, domain.FailureMatrix, domain.FailureTransport:
		status = http.StatusBadGateway
		msg = "routing service failure"
	case domain.FailureCatalogLoad, domain.FailureCatalogKeyMissing:
		msg = "facility catalog unavailable"
	}

	writeJSON(w, r, status, dto.ErrorResponse{
		Error:    msg,
		Kind:     re.Kind.String(),
		Facility: re.Facility,
		Status:   re.Status,
	})
}
