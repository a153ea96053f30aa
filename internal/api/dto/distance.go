package dto

// DistanceResponse is the single-lookup payload, raw values included.
type DistanceResponse struct {
	Distance         string `json:"distance"`
	Duration         string `json:"duration"`
	RawDistanceValue int    `json:"raw_distance_value"`
	RawDurationValue int    `json:"raw_duration_value"`
}

type ErrorResponse struct {
	Error    string `json:"error"`
	Kind     string `json:"kind,omitempty"`
	Facility string `json:"facility,omitempty"`
	Status   string `json:"status,omitempty"`
}
