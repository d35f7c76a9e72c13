package response_models

type PinResult struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	PinID    *string `json:"pin_id,omitempty"`
	PlaceID  *string `json:"place_id,omitempty"`
	Error    string  `json:"error,omitempty"`
}

type EnrichContentResponse struct {
	Message string      `json:"message"`
	Pinned  int         `json:"pinned"`
	Total   int         `json:"total"`
	Results []PinResult `json:"results"`
}
