package services

import (
	"context"
	"encoding/json"
	"errors"
	"facility-distance-service/internal/domain"
	"facility-distance-service/internal/platform/obs"
	"facility-distance-service/internal/ports"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Mode selects how a category batch is sent to the routing service.
type Mode string

const (
	// ModeSequential issues one 1x1 request per facility, in list order.
	ModeSequential Mode = "sequential"
	// ModeMatrix issues a single 1xN request when the provider supports it.
	ModeMatrix Mode = "matrix"
)

// ProgressFunc is called after each facility has been resolved.
type ProgressFunc func(done, total int, facility string)

// Resolver computes driving distances from an origin to every facility of a category.
//
// Resolution is all-or-nothing: the first failure aborts the batch and no
// partial aggregate is returned. Nothing is cached between calls.
type Resolver struct {
	catalog  ports.CatalogSource
	provider ports.DistanceProvider
	mode     Mode
	progress ProgressFunc
}

type ResolverOption func(*Resolver)

func WithMode(m Mode) ResolverOption {
	return func(r *Resolver) { r.mode = m }
}

func WithProgress(fn ProgressFunc) ResolverOption {
	return func(r *Resolver) { r.progress = fn }
}

func NewResolver(catalog ports.CatalogSource, provider ports.DistanceProvider, opts ...ResolverOption) (*Resolver, error) {
	if catalog == nil {
		return nil, errors.New("new resolver: catalog source must be non-nil")
	}
	if provider == nil {
		return nil, errors.New("new resolver: distance provider must be non-nil")
	}

	r := &Resolver{
		catalog:  catalog,
		provider: provider,
		mode:     ModeSequential,
	}
	for _, opt := range opts {
		opt(r)
	}

	switch r.mode {
	case ModeSequential, ModeMatrix:
	default:
		return nil, fmt.Errorf("new resolver: unknown mode %q", r.mode)
	}

	return r, nil
}

// Lookup returns the driving distance between two coordinates, including raw
// metres and seconds.
func (r *Resolver) Lookup(ctx context.Context, origin, destination domain.Coordinates) (_ domain.DistanceResult, err error) {
	defer obs.Time(ctx, "resolver.Lookup")(&err)

	res, err := r.provider.GetDistance(ctx, origin, destination)
	if err != nil {
		return domain.DistanceResult{}, asResolveError(err)
	}
	return res, nil
}

// Resolve computes distances from origin to every facility of the category
// selected by requestType (see domain.ParseCategory).
func (r *Resolver) Resolve(ctx context.Context, origin domain.Coordinates, requestType string) (_ *domain.ResultAggregate, err error) {
	defer obs.Time(ctx, "resolver.Resolve")(&err)

	cat := domain.ParseCategory(requestType)
	names := domain.FacilityNames(cat)

	logger := log.WithFields(log.Fields{
		"prefix":   "resolver",
		"req_id":   obs.RequestID(ctx),
		"category": string(cat),
		"origin":   origin.String(),
		"mode":     string(r.mode),
	})

	catalog, err := r.catalog.LoadCatalog(ctx)
	if err != nil {
		re := asResolveError(err)
		if re.Kind == domain.FailureUnexpected {
			re.Kind = domain.FailureCatalogLoad
		}
		logger.WithFields(log.Fields{
			"kind":     re.Kind.String(),
			"facility": re.Facility,
			"status":   re.Status,
		}).WithError(re.Err).Error("facility catalog could not be loaded")
		return nil, re
	}

	var agg *domain.ResultAggregate
	if mp, ok := r.provider.(ports.DistanceMatrixProvider); ok && r.mode == ModeMatrix {
		agg, err = r.resolveMatrix(ctx, mp, catalog, cat, origin, names)
	} else {
		agg, err = r.resolveSequential(ctx, catalog, cat, origin, names)
	}
	if err != nil {
		re := asResolveError(err)
		logger.WithFields(log.Fields{
			"kind":     re.Kind.String(),
			"facility": re.Facility,
			"status":   re.Status,
		}).WithError(re.Err).Error("batch resolution aborted")
		return nil, re
	}

	logger.WithField("facilities", agg.Len()).Info("batch resolved")
	return agg, nil
}

// ResolveJSON is Resolve followed by indented JSON serialization of the aggregate.
func (r *Resolver) ResolveJSON(ctx context.Context, origin domain.Coordinates, requestType string) ([]byte, error) {
	agg, err := r.Resolve(ctx, origin, requestType)
	if err != nil {
		return nil, err
	}

	return EncodeAggregate(agg)
}

// EncodeAggregate serializes agg as indented JSON in facility order.
// Encoding failures are reported as unexpected failures.
func EncodeAggregate(agg *domain.ResultAggregate) ([]byte, error) {
	if agg == nil {
		re := &domain.ResolveError{Kind: domain.FailureUnexpected, Err: errors.New("serialize aggregate: aggregate is nil")}
		log.WithField("prefix", "resolver").WithError(re).Error("batch serialization failed")
		return nil, re
	}

	payload, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		re := &domain.ResolveError{Kind: domain.FailureUnexpected, Err: fmt.Errorf("serialize aggregate: %w", err)}
		log.WithField("prefix", "resolver").WithError(re).Error("batch serialization failed")
		return nil, re
	}
	return payload, nil
}

// resolveSequential queries facilities one at a time. Catalog lookups happen
// inside the loop, so a missing entry aborts after earlier queries were sent.
func (r *Resolver) resolveSequential(
	ctx context.Context,
	catalog domain.Catalog,
	cat domain.Category,
	origin domain.Coordinates,
	names []string,
) (*domain.ResultAggregate, error) {
	agg := domain.NewResultAggregate(len(names))

	for i, name := range names {
		dest, ok := catalog.Lookup(cat, name)
		if !ok {
			return nil, missingFacility(cat, name)
		}

		res, err := r.provider.GetDistance(ctx, origin, dest)
		if err != nil {
			re := asResolveError(err)
			re.Facility = name
			return nil, re
		}

		agg.Set(name, domain.DistanceResult{Distance: res.Distance, Duration: res.Duration})
		r.report(i+1, len(names), name)
	}

	return agg, nil
}

// resolveMatrix sends every facility of the category in one batched request.
// Identical coordinates are not deduplicated.
func (r *Resolver) resolveMatrix(
	ctx context.Context,
	mp ports.DistanceMatrixProvider,
	catalog domain.Catalog,
	cat domain.Category,
	origin domain.Coordinates,
	names []string,
) (*domain.ResultAggregate, error) {
	dests := make([]domain.Coordinates, 0, len(names))
	for _, name := range names {
		dest, ok := catalog.Lookup(cat, name)
		if !ok {
			return nil, missingFacility(cat, name)
		}
		dests = append(dests, dest)
	}

	results, err := mp.GetDistances(ctx, origin, dests)
	if err != nil {
		re := asResolveError(err)
		if re.Kind == domain.FailureElement && re.Index >= 0 && re.Index < len(names) {
			re.Facility = names[re.Index]
		}
		return nil, re
	}

	if len(results) != len(names) {
		return nil, &domain.ResolveError{
			Kind: domain.FailureUnexpected,
			Err:  fmt.Errorf("matrix returned %d results for %d facilities", len(results), len(names)),
		}
	}

	agg := domain.NewResultAggregate(len(names))
	for i, name := range names {
		agg.Set(name, domain.DistanceResult{Distance: results[i].Distance, Duration: results[i].Duration})
		r.report(i+1, len(names), name)
	}

	return agg, nil
}

func (r *Resolver) report(done, total int, facility string) {
	if r.progress != nil {
		r.progress(done, total, facility)
	}
}

func missingFacility(cat domain.Category, name string) *domain.ResolveError {
	return &domain.ResolveError{
		Kind:     domain.FailureCatalogKeyMissing,
		Facility: name,
		Err:      fmt.Errorf("facility not present in %s catalog", cat),
	}
}

// asResolveError returns a copy of the ResolveError carried by err, or wraps
// err as an unexpected failure.
func asResolveError(err error) *domain.ResolveError {
	var re *domain.ResolveError
	if errors.As(err, &re) {
		cp := *re
		return &cp
	}
	return &domain.ResolveError{Kind: domain.FailureUnexpected, Err: err}
}
