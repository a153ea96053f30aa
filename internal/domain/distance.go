package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Distance and travel duration between two coordinates.
// Text fields are human readable ("12.3 km", "18 mins"); raw values are metres and seconds.
type DistanceResult struct {
	Distance        string `json:"distance"`
	Duration        string `json:"duration"`
	DistanceMeters  int    `json:"raw_distance_value"`
	DurationSeconds int    `json:"raw_duration_value"`
}

// ResultAggregate maps facility names to distance results, remembering the
// order in which facilities were added.
type ResultAggregate struct {
	names   []string
	results map[string]DistanceResult
}

func NewResultAggregate(capacity int) *ResultAggregate {
	return &ResultAggregate{
		names:   make([]string, 0, capacity),
		results: make(map[string]DistanceResult, capacity),
	}
}

// Set records r for name. Re-setting an existing name keeps its original position.
func (a *ResultAggregate) Set(name string, r DistanceResult) {
	if _, ok := a.results[name]; !ok {
		a.names = append(a.names, name)
	}
	a.results[name] = r
}

func (a *ResultAggregate) Get(name string) (DistanceResult, bool) {
	r, ok := a.results[name]
	return r, ok
}

// Names returns facility names in insertion order.
func (a *ResultAggregate) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

func (a *ResultAggregate) Len() int { return len(a.names) }

type aggregateEntry struct {
	Distance string `json:"distance"`
	Duration string `json:"duration"`
}

// MarshalJSON encodes the aggregate as an object whose keys follow insertion order.
// Only the text forms are emitted.
func (a *ResultAggregate) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range a.names {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(name)
		if err != nil {
			return nil, fmt.Errorf("marshal aggregate key %q: %w", name, err)
		}
		r := a.results[name]
		val, err := json.Marshal(aggregateEntry{Distance: r.Distance, Duration: r.Duration})
		if err != nil {
			return nil, fmt.Errorf("marshal aggregate value %q: %w", name, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
