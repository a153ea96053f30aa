package distance

import (
	"context"
	"encoding/json"
	"facility-distance-service/internal/domain"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newORSStub(t *testing.T, status int, body string) (*ORSDistanceProvider, *matrixRequest) {
	t.Helper()
	var got matrixRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/matrix/driving-car", r.URL.Path)
		assert.Equal(t, "ors-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)

	provider, err := NewORSDistanceProvider("ors-key", srv.URL+"/")
	require.NoError(t, err)
	return provider, &got
}

func TestNewORSDistanceProviderRequiresKey(t *testing.T) {
	_, err := NewORSDistanceProvider(" ", "")
	assert.Error(t, err)

	p, err := NewORSDistanceProvider("k", "")
	require.NoError(t, err)
	assert.Equal(t, orsDefaultBaseURL, p.baseURL)
}

func TestORSGetDistances(t *testing.T) {
	provider, req := newORSStub(t, http.StatusOK,
		`{"distances":[[14100.4,150400]],"durations":[[959.6,5400]]}`)

	got, err := provider.GetDistances(context.Background(), origin, []domain.Coordinates{destA, destB})
	require.NoError(t, err)

	assert.Equal(t, []domain.DistanceResult{
		{Distance: "14.1 km", Duration: "16 mins", DistanceMeters: 14100, DurationSeconds: 960},
		{Distance: "150 km", Duration: "1 hour 30 mins", DistanceMeters: 150400, DurationSeconds: 5400},
	}, got)

	assert.Equal(t, [][]float64{{55.4172, 25.1308}, {55.3045, 25.2435}, {55.2005, 25.1074}}, req.Locations)
	assert.Equal(t, []int{0}, req.Sources)
	assert.Equal(t, []int{1, 2}, req.Destinations)
	assert.Equal(t, []string{"distance", "duration"}, req.Metrics)
}

func TestORSGetDistance(t *testing.T) {
	provider, _ := newORSStub(t, http.StatusOK, `{"distances":[[850]],"durations":[[61]]}`)

	got, err := provider.GetDistance(context.Background(), origin, destA)
	require.NoError(t, err)
	assert.Equal(t, domain.DistanceResult{Distance: "850 m", Duration: "1 min", DistanceMeters: 850, DurationSeconds: 61}, got)
}

func TestORSFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   domain.FailureKind
		code   string
	}{
		{"unroutable cell", http.StatusOK, `{"distances":[[null]],"durations":[[null]]}`, domain.FailureElement, "ZERO_RESULTS"},
		{"bad request", http.StatusBadRequest, `{"error":{"code":6003,"message":"bad"}}`, domain.FailureMatrix, "HTTP_400"},
		{"unauthorized", http.StatusUnauthorized, `{"error":"Access denied"}`, domain.FailureTransport, "HTTP_401"},
		{"server error", http.StatusBadGateway, `oops`, domain.FailureTransport, "HTTP_502"},
		{"garbled", http.StatusOK, `not json`, domain.FailureUnexpected, ""},
		{"empty body", http.StatusOK, ``, domain.FailureUnexpected, ""},
		{"missing row", http.StatusOK, `{"distances":[],"durations":[]}`, domain.FailureUnexpected, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, _ := newORSStub(t, tt.status, tt.body)

			_, err := provider.GetDistance(context.Background(), origin, destA)
			var re *domain.ResolveError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.kind, re.Kind)
			assert.Equal(t, tt.code, re.Status)
		})
	}
}
