package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{in: "", want: CategoryPolice},
		{in: "police", want: CategoryPolice},
		{in: "fire", want: CategoryFire},
		{in: "hospital", want: CategoryHospital},
		{in: "unknown_category", want: CategoryHospital},
		{in: "Police", want: CategoryHospital},
		{in: " fire", want: CategoryHospital},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCategory(tt.in))
		})
	}
}

func TestFacilityNamesPerCategory(t *testing.T) {
	for _, cat := range Categories {
		names := FacilityNames(cat)
		assert.Len(t, names, 15, "category %s", cat)

		seen := make(map[string]struct{}, len(names))
		for _, n := range names {
			_, dup := seen[n]
			assert.False(t, dup, "duplicate name %q in %s", n, cat)
			seen[n] = struct{}{}
		}
	}

	assert.Equal(t, "Al Karama Civil Defence Station", FacilityNames(CategoryFire)[0])
	assert.Equal(t, "Rashid Hospital", FacilityNames(CategoryHospital)[0])
	assert.Equal(t, FacilityNames(CategoryHospital), FacilityNames(Category("bogus")))
}

func TestFacilityNamesReturnsCopy(t *testing.T) {
	names := FacilityNames(CategoryPolice)
	names[0] = "mutated"

	assert.Equal(t, "Al Barsha Police Station", FacilityNames(CategoryPolice)[0])
}

func TestCatalogLookup(t *testing.T) {
	c := Catalog{}
	c.Add(CategoryFire, "Station A", Coordinates{Lat: 25.1, Lng: 55.2})

	got, ok := c.Lookup(CategoryFire, "Station A")
	assert.True(t, ok)
	assert.Equal(t, Coordinates{Lat: 25.1, Lng: 55.2}, got)

	_, ok = c.Lookup(CategoryFire, "Station B")
	assert.False(t, ok)
	_, ok = c.Lookup(CategoryPolice, "Station A")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestCoordinatesString(t *testing.T) {
	assert.Equal(t, "25.1308,55.4172", Coordinates{Lat: 25.1308, Lng: 55.4172}.String())
	assert.Equal(t, "-91,200", Coordinates{Lat: -91, Lng: 200}.String())
	assert.Equal(t, []float64{55.4172, 25.1308}, Coordinates{Lat: 25.1308, Lng: 55.4172}.CoordsToList())
}

func TestCatalogLookupNormalizesNames(t *testing.T) {
	c := Catalog{}
	c.Add(CategoryHospital, "Cafe\u0301 Clinic", Coordinates{Lat: 1, Lng: 2})

	got, ok := c.Lookup(CategoryHospital, "Caf\u00e9 Clinic")
	assert.True(t, ok)
	assert.Equal(t, Coordinates{Lat: 1, Lng: 2}, got)
}
