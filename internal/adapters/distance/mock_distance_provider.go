package distance

import (
	"context"
	"errors"
	"facility-distance-service/internal/domain"
	"fmt"
	"sync"
)

type MockPair struct {
	From, To domain.Coordinates
	Meters   int
	Seconds  int
}

type mockKey struct {
	from, to domain.Coordinates
}

// MockDistanceProvider serves canned results and records every call.
// Unknown pairs fail with an element failure of status NOT_FOUND.
type MockDistanceProvider struct {
	mu          sync.Mutex
	m           map[mockKey]domain.DistanceResult
	failures    map[domain.Coordinates]error
	calls       []domain.Coordinates
	matrixCalls int
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[mockKey]domain.DistanceResult, len(pairs))
	for _, p := range pairs {
		m[mockKey{from: p.From, to: p.To}] = domain.DistanceResult{
			Distance:        domain.FormatDistance(p.Meters),
			Duration:        domain.FormatDuration(p.Seconds),
			DistanceMeters:  p.Meters,
			DurationSeconds: p.Seconds,
		}
	}
	return &MockDistanceProvider{m: m, failures: map[domain.Coordinates]error{}}
}

// FailOn makes every lookup towards destination return err.
func (p *MockDistanceProvider) FailOn(destination domain.Coordinates, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures[destination] = err
}

// Calls returns the destinations queried so far, in call order.
func (p *MockDistanceProvider) Calls() []domain.Coordinates {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Coordinates, len(p.calls))
	copy(out, p.calls)
	return out
}

// MatrixCalls returns how many batched requests were made.
func (p *MockDistanceProvider) MatrixCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.matrixCalls
}

func (p *MockDistanceProvider) GetDistance(ctx context.Context, origin, destination domain.Coordinates) (domain.DistanceResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lookup(origin, destination)
}

func (p *MockDistanceProvider) GetDistances(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates) ([]domain.DistanceResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.matrixCalls++

	out := make([]domain.DistanceResult, 0, len(destinations))
	for i, d := range destinations {
		r, err := p.lookup(origin, d)
		if err != nil {
			var re *domain.ResolveError
			if errors.As(err, &re) {
				cp := *re
				cp.Index = i
				return nil, &cp
			}
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (p *MockDistanceProvider) lookup(origin, destination domain.Coordinates) (domain.DistanceResult, error) {
	p.calls = append(p.calls, destination)

	if err, ok := p.failures[destination]; ok {
		return domain.DistanceResult{}, err
	}

	r, ok := p.m[mockKey{from: origin, to: destination}]
	if !ok {
		return domain.DistanceResult{}, &domain.ResolveError{
			Kind:   domain.FailureElement,
			Status: "NOT_FOUND",
			Err:    fmt.Errorf("missing pair %s -> %s", origin, destination),
		}
	}

	return r, nil
}
