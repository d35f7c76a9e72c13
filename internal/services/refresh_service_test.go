package services

import (
	"context"
	"testing"
	"time"

	"triplog/internal/models/db_models"
	"triplog/pkg/utils"

	"github.com/lib/pq"
)

func seedPlace(t *testing.T, cache *mockPlaceCache, googleID string, cachedAt time.Time, images ...string) *db_models.PlaceRecord {
	t.Helper()
	record := &db_models.PlaceRecord{
		GooglePlaceID: googleID,
		Name:          googleID,
		Images:        pq.StringArray(images),
		LastCachedAt:  cachedAt,
	}
	if err := cache.Create(context.Background(), record); err != nil {
		t.Fatalf("seeding %s: %v", googleID, err)
	}
	return record
}

func TestRefreshStalePlaces_FreshRowsUntouched(t *testing.T) {
	cache := newMockPlaceCache()
	now := time.Now().UTC()
	seedPlace(t, cache, "fresh", now.Add(-24*time.Hour), "https://cdn.example.com/fresh.jpg")
	stale := seedPlace(t, cache, "stale", now.Add(-40*24*time.Hour), "https://cdn.example.com/old.jpg")

	directory := &mockDirectoryClient{
		photosFn: func(_ context.Context, _ string) ([]PlacePhoto, error) {
			return []PlacePhoto{{PhotoReference: "new-ref"}}, nil
		},
		photoFn: func(_ context.Context, ref string) (string, error) {
			return "https://cdn.example.com/" + ref, nil
		},
	}
	svc := NewRefreshService(cache, directory, DefaultStaleAfter, 0)

	report, err := svc.RefreshStalePlaces(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Scanned != 1 || report.Refreshed != 1 || report.Failed != 0 {
		t.Errorf("report = %+v, want 1 scanned, 1 refreshed", report)
	}
	if _, ok := cache.replaced[stale.ID]; !ok {
		t.Errorf("stale row was not refreshed")
	}
	if len(cache.replaced) != 1 {
		t.Errorf("replaced %d rows, want only the stale one", len(cache.replaced))
	}
}

func TestRefreshStalePlaces_ImageListStaysSingle(t *testing.T) {
	cache := newMockPlaceCache()
	old := time.Now().UTC().Add(-60 * 24 * time.Hour)
	record := seedPlace(t, cache, "place-a", old, "https://cdn.example.com/a1.jpg")

	directory := &mockDirectoryClient{
		photosFn: func(_ context.Context, _ string) ([]PlacePhoto, error) {
			return []PlacePhoto{{PhotoReference: "a2"}}, nil
		},
		photoFn: func(_ context.Context, ref string) (string, error) {
			return "https://cdn.example.com/" + ref + ".jpg", nil
		},
	}
	svc := NewRefreshService(cache, directory, DefaultStaleAfter, 0)

	if _, err := svc.RefreshStalePlaces(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := cache.GetByGooglePlaceID(context.Background(), "place-a")
	if len(got.Images) != 1 || got.Images[0] != "https://cdn.example.com/a2.jpg" {
		t.Errorf("images = %v, want exactly the one new URL", got.Images)
	}
	if directory.detailCalls != 0 {
		t.Errorf("full detail calls = %d, want 0 (refresher fetches photos only)", directory.detailCalls)
	}
	if !got.LastCachedAt.After(record.LastCachedAt) {
		t.Errorf("last_cached_at was not advanced")
	}
}

func TestRefreshStalePlaces_BatchContinuesPastFailures(t *testing.T) {
	cache := newMockPlaceCache()
	old := time.Now().UTC().Add(-60 * 24 * time.Hour)
	seedPlace(t, cache, "gone", old, "https://cdn.example.com/gone.jpg")
	seedPlace(t, cache, "alive", old, "https://cdn.example.com/alive.jpg")

	directory := &mockDirectoryClient{
		photosFn: func(_ context.Context, placeID string) ([]PlacePhoto, error) {
			if placeID == "gone" {
				return nil, utils.ErrUpstreamUnavailable
			}
			return []PlacePhoto{{PhotoReference: "ref"}}, nil
		},
		photoFn: func(_ context.Context, ref string) (string, error) {
			return "https://cdn.example.com/" + ref, nil
		},
	}
	svc := NewRefreshService(cache, directory, DefaultStaleAfter, 0)

	report, err := svc.RefreshStalePlaces(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Scanned != 2 || report.Refreshed != 1 || report.Failed != 1 {
		t.Errorf("report = %+v, want 2 scanned, 1 refreshed, 1 failed", report)
	}
	if len(report.Failures) != 1 || report.Failures[0].GooglePlaceID != "gone" {
		t.Errorf("failures = %+v, want the unreachable place", report.Failures)
	}
}

func TestRefreshStalePlaces_NoPhotoCountsAsFailure(t *testing.T) {
	cache := newMockPlaceCache()
	old := time.Now().UTC().Add(-60 * 24 * time.Hour)
	seedPlace(t, cache, "photoless", old, "https://cdn.example.com/old.jpg")

	directory := &mockDirectoryClient{
		photosFn: func(_ context.Context, _ string) ([]PlacePhoto, error) {
			return nil, nil
		},
	}
	svc := NewRefreshService(cache, directory, DefaultStaleAfter, 0)

	report, err := svc.RefreshStalePlaces(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Failed != 1 {
		t.Errorf("failed = %d, want 1", report.Failed)
	}
	if len(cache.replaced) != 0 {
		t.Errorf("image was replaced despite no photo being available")
	}

	// The old image must survive a failed refresh.
	got, _ := cache.GetByGooglePlaceID(context.Background(), "photoless")
	if len(got.Images) != 1 || got.Images[0] != "https://cdn.example.com/old.jpg" {
		t.Errorf("images = %v, want the previous URL kept", got.Images)
	}
}

func TestRefreshStalePlaces_ImagelessRowsAreSkipped(t *testing.T) {
	cache := newMockPlaceCache()
	old := time.Now().UTC().Add(-60 * 24 * time.Hour)
	seedPlace(t, cache, "no-image", old)

	directory := &mockDirectoryClient{}
	svc := NewRefreshService(cache, directory, DefaultStaleAfter, 0)

	report, err := svc.RefreshStalePlaces(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Scanned != 0 {
		t.Errorf("scanned = %d, want 0 (rows without images never refresh)", report.Scanned)
	}
	if directory.photosCalls != 0 {
		t.Errorf("photo-list calls = %d, want 0", directory.photosCalls)
	}
}
