package api

import (
	"context"
	"encoding/json"
	"errors"
	"facility-distance-service/internal/adapters/distance"
	"facility-distance-service/internal/api/dto"
	"facility-distance-service/internal/domain"
	"facility-distance-service/internal/services"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var origin = domain.Coordinates{Lat: 25.1308, Lng: 55.4172}

type memCatalog struct {
	catalog domain.Catalog
	err     error
}

func (m memCatalog) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	return m.catalog, m.err
}

func fixture() (domain.Catalog, *distance.MockDistanceProvider) {
	catalog := domain.Catalog{}
	var pairs []distance.MockPair
	for ci, cat := range domain.Categories {
		for i, name := range domain.FacilityNames(cat) {
			c := domain.Coordinates{Lat: 25 + float64(ci)/10 + float64(i)/1000, Lng: 55 + float64(i)/1000}
			catalog.Add(cat, name, c)
			pairs = append(pairs, distance.MockPair{From: origin, To: c, Meters: 500 + i*1000, Seconds: 90 + i*60})
		}
	}
	return catalog, distance.NewMockDistanceProvider(pairs)
}

func newTestRouter(t *testing.T, catalog memCatalog, provider *distance.MockDistanceProvider) http.Handler {
	t.Helper()
	resolver, err := services.NewResolver(catalog, provider)
	require.NoError(t, err)
	return NewRouter(resolver)
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	catalog, provider := fixture()
	h := newTestRouter(t, memCatalog{catalog: catalog}, provider)

	rec := serve(h, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = serve(h, http.MethodPost, "/health")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	catalog, provider := fixture()
	h := newTestRouter(t, memCatalog{catalog: catalog}, provider)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestDistancesReturnsOrderedAggregate(t *testing.T) {
	catalog, provider := fixture()
	h := newTestRouter(t, memCatalog{catalog: catalog}, provider)

	rec := serve(h, http.MethodGet, "/distances?lat=25.1308&lng=55.4172&category=fire")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	names := domain.FacilityNames(domain.CategoryFire)
	last := -1
	for _, name := range names {
		idx := strings.Index(body, `"`+name+`"`)
		require.GreaterOrEqual(t, idx, 0, name)
		assert.Greater(t, idx, last, "%s out of order", name)
		last = idx
	}

	var decoded map[string]map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, map[string]string{"distance": "500 m", "duration": "2 mins"}, decoded[names[0]])
}

func TestDistancesDefaultsToPolice(t *testing.T) {
	catalog, provider := fixture()
	h := newTestRouter(t, memCatalog{catalog: catalog}, provider)

	rec := serve(h, http.MethodGet, "/distances?lat=25.1308&lng=55.4172")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Al Barsha Police Station")
}

func TestDistancesBadRequest(t *testing.T) {
	catalog, provider := fixture()
	h := newTestRouter(t, memCatalog{catalog: catalog}, provider)

	for _, target := range []string{
		"/distances",
		"/distances?lat=25.1",
		"/distances?lat=north&lng=55",
		"/distances?lat=NaN&lng=55",
	} {
		rec := serve(h, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
	assert.Empty(t, provider.Calls())
}

func TestDistancesFailureStatus(t *testing.T) {
	t.Run("routing failure", func(t *testing.T) {
		catalog, provider := fixture()
		failing := domain.FacilityNames(domain.CategoryFire)[3]
		coords, _ := catalog.Lookup(domain.CategoryFire, failing)
		provider.FailOn(coords, &domain.ResolveError{Kind: domain.FailureElement, Status: "ZERO_RESULTS", Err: errors.New("no route")})
		h := newTestRouter(t, memCatalog{catalog: catalog}, provider)

		rec := serve(h, http.MethodGet, "/distances?lat=25.1308&lng=55.4172&category=fire")
		assert.Equal(t, http.StatusBadGateway, rec.Code)

		var res dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "element_failure", res.Kind)
		assert.Equal(t, failing, res.Facility)
		assert.Equal(t, "ZERO_RESULTS", res.Status)
	})

	t.Run("catalog failure", func(t *testing.T) {
		_, provider := fixture()
		h := newTestRouter(t, memCatalog{err: errors.New("missing file")}, provider)

		rec := serve(h, http.MethodGet, "/distances?lat=25.1308&lng=55.4172&category=hospital")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var res dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "catalog_load", res.Kind)
		assert.Empty(t, provider.Calls())
	})
}

func TestSingleDistance(t *testing.T) {
	catalog, provider := fixture()
	h := newTestRouter(t, memCatalog{catalog: catalog}, provider)

	dest, _ := catalog.Lookup(domain.CategoryPolice, domain.FacilityNames(domain.CategoryPolice)[1])
	target := "/distance?origin_lat=25.1308&origin_lng=55.4172&dest_lat=" + ftoa(dest.Lat) + "&dest_lng=" + ftoa(dest.Lng)

	rec := serve(h, http.MethodGet, target)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.DistanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, dto.DistanceResponse{
		Distance:         "1.5 km",
		Duration:         "3 mins",
		RawDistanceValue: 1500,
		RawDurationValue: 150,
	}, res)

	rec = serve(h, http.MethodGet, "/distance?origin_lat=25.1308&origin_lng=55.4172&dest_lat=1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, http.MethodGet, "/distance?origin_lat=0&origin_lng=0&dest_lat=1&dest_lng=1")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
