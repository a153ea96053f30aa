package domain

import "strconv"

// Immutable geographic coordinates (latitude, longitude).
// Values are not range-checked; the routing service decides validity.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Return coordinates as [lon, lat] for GeoJSON-style APIs.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lng, c.Lat} }

// String renders "lat,lng" as expected by the routing service query parameters.
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}
