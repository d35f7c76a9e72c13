package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"triplog/pkg/utils"
)

type MediaMetadata struct {
	ImageURL string
	Stars    int
}

// MediaMetadataResolver scrapes a place's deep-link page for one image
// URL and a star rating, both carried in <meta> tags. Missing tags are
// not errors; only an unreachable page is.
type MediaMetadataResolver interface {
	ResolveMedia(ctx context.Context, mapsURL string) (MediaMetadata, error)
}

// Both attribute orders show up in the wild, so each tag gets two
// patterns tried in sequence.
var (
	imageMetaPatterns = []*regexp.Regexp{
		regexp.MustCompile(`<meta[^>]+itemprop="image"[^>]+content="([^"]+)"`),
		regexp.MustCompile(`<meta[^>]+content="([^"]+)"[^>]+itemprop="image"`),
	}
	descMetaPatterns = []*regexp.Regexp{
		regexp.MustCompile(`<meta[^>]+name="description"[^>]+content="([^"]+)"`),
		regexp.MustCompile(`<meta[^>]+content="([^"]+)"[^>]+name="description"`),
	}
)

type PageMetadataResolver struct {
	HTTP *http.Client
}

func NewPageMetadataResolver() *PageMetadataResolver {
	return &PageMetadataResolver{
		HTTP: &http.Client{Timeout: 15 * time.Second},
	}
}

func (r *PageMetadataResolver) ResolveMedia(ctx context.Context, mapsURL string) (MediaMetadata, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", mapsURL, nil)
	resp, err := r.HTTP.Do(req)
	if err != nil {
		return MediaMetadata{}, fmt.Errorf("%w: metadata page: %v", utils.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return MediaMetadata{}, fmt.Errorf("%w: metadata page status %s", utils.ErrUpstreamUnavailable, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return MediaMetadata{}, fmt.Errorf("%w: metadata page read: %v", utils.ErrUpstreamUnavailable, err)
	}
	page := string(body)

	meta := MediaMetadata{
		ImageURL: firstSubmatch(imageMetaPatterns, page),
	}
	// The description meta leads with the rating as repeated star
	// glyphs, e.g. "★★★★☆ · Sushi restaurant".
	if desc := firstSubmatch(descMetaPatterns, page); desc != "" {
		meta.Stars = strings.Count(desc, "★")
	}
	return meta, nil
}

func firstSubmatch(patterns []*regexp.Regexp, page string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(page); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}
