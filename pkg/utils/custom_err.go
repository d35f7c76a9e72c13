package utils

import (
	"errors"
	"fmt"
)

var (
	ErrDatabaseError       = errors.New("database error")
	ErrContentNotFound     = errors.New("content not found")
	ErrPlaceNotFound       = errors.New("place not found")
	ErrNoCandidateFound    = errors.New("no candidate found for query")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrExtractorFailure    = errors.New("location extractor failure")
	ErrEmbeddingFailure    = errors.New("embedding generation failure")
	ErrInvalidLimit        = errors.New("invalid limit parameter")
)

// PlaceResolutionError marks the failure of one mention's resolution.
// Sibling resolutions of the same content item keep running; the caller
// surfaces this per mention.
type PlaceResolutionError struct {
	Query string
	Err   error
}

func (e *PlaceResolutionError) Error() string {
	return fmt.Sprintf("resolving %q: %v", e.Query, e.Err)
}

func (e *PlaceResolutionError) Unwrap() error {
	return e.Err
}
