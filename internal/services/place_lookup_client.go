package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"triplog/pkg/utils"
)

type PlaceCandidate struct {
	PlaceID string
	Name    string
}

type PlacePhoto struct {
	PhotoReference string
}

type PlaceDetails struct {
	PlaceID          string
	Name             string
	FormattedAddress string
	MapsURL          string
	BusinessStatus   string
	UserRatingsTotal int
	Latitude         float64
	Longitude        float64
	UTCOffsetMinutes int
	PriceLevel       *int
	Types            []string
	Photos           []PlacePhoto
}

// PlaceDirectoryClient talks to the Google Places web service. Detail
// calls carry a per-user session token so that search+detail pairs are
// billed as one session.
type PlaceDirectoryClient interface {
	TextSearch(ctx context.Context, query string) ([]PlaceCandidate, error)
	FetchDetails(ctx context.Context, placeID, sessionToken string) (*PlaceDetails, error)

	// FetchPhotos requests only the photo list, billed as a cheaper
	// atom-level detail call. Used by the stale refresher, which never
	// needs the full record.
	FetchPhotos(ctx context.Context, placeID string) ([]PlacePhoto, error)

	FetchPhotoURL(ctx context.Context, photoReference string) (string, error)
}

// detailFieldMask lists exactly the attributes the cache stores. Kept
// fixed so every detail call bills the same SKU.
const detailFieldMask = "place_id,name,formatted_address,geometry/location,url,utc_offset,business_status,price_level,types,photos,user_ratings_total"

type GooglePlacesClient struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string // override in tests
}

func NewGooglePlacesClient() *GooglePlacesClient {
	key := os.Getenv("GOOGLE_PLACES_API_KEY")
	if key == "" {
		panic("GOOGLE_PLACES_API_KEY is empty")
	}
	return &GooglePlacesClient{
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		APIKey:  key,
		BaseURL: "https://maps.googleapis.com/maps/api/place",
	}
}

func (c *GooglePlacesClient) TextSearch(ctx context.Context, query string) ([]PlaceCandidate, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("key", c.APIKey)

	var payload struct {
		Status  string `json:"status"`
		Results []struct {
			PlaceID string `json:"place_id"`
			Name    string `json:"name"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, "/textsearch/json", q, &payload); err != nil {
		return nil, err
	}

	if payload.Status == "ZERO_RESULTS" || len(payload.Results) == 0 {
		return nil, utils.ErrNoCandidateFound
	}
	if payload.Status != "OK" {
		return nil, fmt.Errorf("%w: text search status %s", utils.ErrUpstreamUnavailable, payload.Status)
	}

	candidates := make([]PlaceCandidate, 0, len(payload.Results))
	for _, r := range payload.Results {
		candidates = append(candidates, PlaceCandidate{PlaceID: r.PlaceID, Name: r.Name})
	}
	return candidates, nil
}

func (c *GooglePlacesClient) FetchDetails(ctx context.Context, placeID, sessionToken string) (*PlaceDetails, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", detailFieldMask)
	q.Set("key", c.APIKey)
	if sessionToken != "" {
		q.Set("sessiontoken", sessionToken)
	}

	var payload struct {
		Status string `json:"status"`
		Result struct {
			PlaceID          string   `json:"place_id"`
			Name             string   `json:"name"`
			FormattedAddress string   `json:"formatted_address"`
			URL              string   `json:"url"`
			UTCOffset        int      `json:"utc_offset"`
			BusinessStatus   string   `json:"business_status"`
			UserRatingsTotal int      `json:"user_ratings_total"`
			PriceLevel       *int     `json:"price_level"`
			Types            []string `json:"types"`
			Geometry         struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
			Photos []struct {
				PhotoReference string `json:"photo_reference"`
			} `json:"photos"`
		} `json:"result"`
	}
	if err := c.getJSON(ctx, "/details/json", q, &payload); err != nil {
		return nil, err
	}

	if payload.Status != "OK" {
		return nil, fmt.Errorf("%w: details status %s", utils.ErrUpstreamUnavailable, payload.Status)
	}

	details := &PlaceDetails{
		PlaceID:          payload.Result.PlaceID,
		Name:             payload.Result.Name,
		FormattedAddress: payload.Result.FormattedAddress,
		MapsURL:          payload.Result.URL,
		BusinessStatus:   payload.Result.BusinessStatus,
		UserRatingsTotal: payload.Result.UserRatingsTotal,
		Latitude:         payload.Result.Geometry.Location.Lat,
		Longitude:        payload.Result.Geometry.Location.Lng,
		UTCOffsetMinutes: payload.Result.UTCOffset,
		PriceLevel:       payload.Result.PriceLevel,
		Types:            payload.Result.Types,
	}
	for _, p := range payload.Result.Photos {
		details.Photos = append(details.Photos, PlacePhoto{PhotoReference: p.PhotoReference})
	}
	return details, nil
}

func (c *GooglePlacesClient) FetchPhotos(ctx context.Context, placeID string) ([]PlacePhoto, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", "photos")
	q.Set("key", c.APIKey)

	var payload struct {
		Status string `json:"status"`
		Result struct {
			Photos []struct {
				PhotoReference string `json:"photo_reference"`
			} `json:"photos"`
		} `json:"result"`
	}
	if err := c.getJSON(ctx, "/details/json", q, &payload); err != nil {
		return nil, err
	}

	if payload.Status != "OK" {
		return nil, fmt.Errorf("%w: photos status %s", utils.ErrUpstreamUnavailable, payload.Status)
	}

	photos := make([]PlacePhoto, 0, len(payload.Result.Photos))
	for _, p := range payload.Result.Photos {
		photos = append(photos, PlacePhoto{PhotoReference: p.PhotoReference})
	}
	return photos, nil
}

// FetchPhotoURL follows the photo endpoint's redirect and returns the
// temporary CDN URL it lands on.
func (c *GooglePlacesClient) FetchPhotoURL(ctx context.Context, photoReference string) (string, error) {
	q := url.Values{}
	q.Set("photo_reference", photoReference)
	q.Set("maxwidth", "800")
	q.Set("key", c.APIKey)

	req, _ := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/photo?"+q.Encode(), nil)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: photo fetch: %v", utils.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("%w: photo bad status %s", utils.ErrUpstreamUnavailable, resp.Status)
	}
	return resp.Request.URL.String(), nil
}

func (c *GooglePlacesClient) getJSON(ctx context.Context, path string, q url.Values, out interface{}) error {
	req, _ := http.NewRequestWithContext(ctx, "GET", c.BaseURL+path+"?"+q.Encode(), nil)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: bad status %s", utils.ErrUpstreamUnavailable, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", utils.ErrUpstreamUnavailable, err)
	}
	return nil
}
