package response_models

type Place struct {
	ID               string   `json:"id"`
	GooglePlaceID    string   `json:"google_place_id"`
	Name             string   `json:"name"`
	Rating           *int     `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	FormattedAddress string   `json:"formatted_address"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	MapsURL          string   `json:"maps_url"`
	Images           []string `json:"images"`
	BusinessStatus   string   `json:"business_status"`
	PriceLevel       *int     `json:"price_level"`
	Types            []string `json:"types"`
	LastCachedAt     string   `json:"last_cached_at"`
}
