package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"triplog/pkg/utils"
)

func placesTestClient(srv *httptest.Server) *GooglePlacesClient {
	return &GooglePlacesClient{
		HTTP:    srv.Client(),
		APIKey:  "test-key",
		BaseURL: srv.URL,
	}
}

func TestTextSearch_ReturnsCandidatesInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/textsearch/json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "sushi dai tokyo" {
			t.Errorf("query = %q", got)
		}
		fmt.Fprint(w, `{"status":"OK","results":[
			{"place_id":"p1","name":"Sushi Dai"},
			{"place_id":"p2","name":"Sushi Dai Annex"}
		]}`)
	}))
	defer srv.Close()

	candidates, err := placesTestClient(srv).TextSearch(context.Background(), "sushi dai tokyo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 2 || candidates[0].PlaceID != "p1" {
		t.Errorf("candidates = %+v, want p1 first", candidates)
	}
}

func TestTextSearch_ZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status":"ZERO_RESULTS","results":[]}`)
	}))
	defer srv.Close()

	_, err := placesTestClient(srv).TextSearch(context.Background(), "nowhere at all")
	if !errors.Is(err, utils.ErrNoCandidateFound) {
		t.Fatalf("error = %v, want ErrNoCandidateFound", err)
	}
}

func TestTextSearch_UpstreamStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status":"OVER_QUERY_LIMIT","results":[{"place_id":"p1","name":"x"}]}`)
	}))
	defer srv.Close()

	_, err := placesTestClient(srv).TextSearch(context.Background(), "sushi")
	if !errors.Is(err, utils.ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestFetchDetails_SendsSessionTokenAndFieldMask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("sessiontoken"); got != "tok-42" {
			t.Errorf("sessiontoken = %q, want tok-42", got)
		}
		if got := q.Get("fields"); got != detailFieldMask {
			t.Errorf("fields = %q", got)
		}
		fmt.Fprint(w, `{"status":"OK","result":{
			"place_id":"p1","name":"Sushi Dai",
			"formatted_address":"Tsukiji, Tokyo",
			"url":"https://maps.example.com/p1",
			"utc_offset":540,
			"business_status":"OPERATIONAL",
			"price_level":2,
			"types":["restaurant","food"],
			"geometry":{"location":{"lat":35.66,"lng":139.77}},
			"photos":[{"photo_reference":"ref-1"}]
		}}`)
	}))
	defer srv.Close()

	details, err := placesTestClient(srv).FetchDetails(context.Background(), "p1", "tok-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.Name != "Sushi Dai" || details.MapsURL != "https://maps.example.com/p1" {
		t.Errorf("details = %+v", details)
	}
	if details.UTCOffsetMinutes != 540 {
		t.Errorf("utc offset = %d, want 540", details.UTCOffsetMinutes)
	}
	if details.PriceLevel == nil || *details.PriceLevel != 2 {
		t.Errorf("price level = %v, want 2", details.PriceLevel)
	}
	if len(details.Photos) != 1 || details.Photos[0].PhotoReference != "ref-1" {
		t.Errorf("photos = %+v", details.Photos)
	}
}

func TestFetchDetails_OmitsEmptySessionToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, present := r.URL.Query()["sessiontoken"]; present {
			t.Errorf("sessiontoken must be absent when empty")
		}
		fmt.Fprint(w, `{"status":"OK","result":{"place_id":"p1","name":"x"}}`)
	}))
	defer srv.Close()

	if _, err := placesTestClient(srv).FetchDetails(context.Background(), "p1", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchPhotos_RequestsPhotosFieldOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("fields"); got != "photos" {
			t.Errorf("fields = %q, want photos only", got)
		}
		fmt.Fprint(w, `{"status":"OK","result":{"photos":[
			{"photo_reference":"ref-1"},{"photo_reference":"ref-2"}
		]}}`)
	}))
	defer srv.Close()

	photos, err := placesTestClient(srv).FetchPhotos(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(photos) != 2 || photos[0].PhotoReference != "ref-1" {
		t.Errorf("photos = %+v", photos)
	}
}

func TestFetchPhotoURL_ReturnsRedirectTarget(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/photo", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("photo_reference"); got != "ref-1" {
			t.Errorf("photo_reference = %q", got)
		}
		http.Redirect(w, r, srv.URL+"/cdn/final.jpg", http.StatusFound)
	})
	mux.HandleFunc("/cdn/final.jpg", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("jpeg bytes"))
	})

	url, err := placesTestClient(srv).FetchPhotoURL(context.Background(), "ref-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != srv.URL+"/cdn/final.jpg" {
		t.Errorf("url = %q, want the post-redirect location", url)
	}
}

func TestFetchPhotoURL_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := placesTestClient(srv).FetchPhotoURL(context.Background(), "ref-1")
	if !errors.Is(err, utils.ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
	}
}
