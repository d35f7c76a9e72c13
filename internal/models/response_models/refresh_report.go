package response_models

type RefreshFailure struct {
	PlaceID       string `json:"place_id"`
	GooglePlaceID string `json:"google_place_id"`
	Reason        string `json:"reason"`
}

type RefreshReport struct {
	Scanned   int              `json:"scanned"`
	Refreshed int              `json:"refreshed"`
	Failed    int              `json:"failed"`
	Failures  []RefreshFailure `json:"failures,omitempty"`
}
