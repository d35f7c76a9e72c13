package request_models

// ExtractedLocationPayload mirrors what the language-model extractor
// returns for one mention. Lat/Long stay nil when the model decided the
// mention has no specific place behind it.
type ExtractedLocationPayload struct {
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	Classification string   `json:"classification"`
	Title          string   `json:"title"`
	AdditionalInfo string   `json:"additional_info"`
	Lat            *float64 `json:"lat"`
	Long           *float64 `json:"long"`
}

// EnrichContentRequest either carries pre-extracted locations or a raw
// caption to run through the extractor first.
type EnrichContentRequest struct {
	Caption   string                     `json:"caption"`
	Locations []ExtractedLocationPayload `json:"locations"`
}
