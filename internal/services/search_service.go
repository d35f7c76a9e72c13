package services

import (
	"context"
	"log"
	"sort"

	"triplog/internal/models/response_models"
	"triplog/internal/repositories"
	"triplog/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// hybridBoost is added when a content row is selected by both signals.
// Scores are relevance weights, not probabilities; boosted scores may
// exceed 1 and are not clamped here.
const hybridBoost = 0.1

type SearchServiceInterface interface {
	Search(ctx context.Context, query string, scope repositories.SearchScope, limit int) ([]response_models.SearchResult, error)
}

type SearchService struct {
	embedder utils.EmbeddingClientInterface
	semantic repositories.SemanticSearchRepository
	pins     repositories.PinRepository
}

func NewSearchService(
	embedder utils.EmbeddingClientInterface,
	semantic repositories.SemanticSearchRepository,
	pins repositories.PinRepository,
) SearchServiceInterface {
	return &SearchService{
		embedder: embedder,
		semantic: semantic,
		pins:     pins,
	}
}

func (s *SearchService) Search(ctx context.Context, query string, scope repositories.SearchScope, limit int) ([]response_models.SearchResult, error) {
	if limit < 1 || limit > 100 {
		return nil, utils.ErrInvalidLimit
	}

	vector, err := s.embedder.GetEmbedding(ctx, query)
	if err != nil {
		log.Printf("Error embedding search query: %v", err)
		return nil, utils.ErrEmbeddingFailure
	}

	var semanticMatches []repositories.SemanticMatch
	var lexicalMatches []repositories.PinNameMatch

	// Both signal arms run concurrently; neither depends on the other.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		matches, err := s.semantic.SearchByVector(gctx, vector, scope, limit)
		if err != nil {
			log.Printf("Error in semantic search: %v", err)
			return utils.ErrDatabaseError
		}
		semanticMatches = matches
		return nil
	})
	g.Go(func() error {
		matches, err := s.pins.SearchNamesInScope(gctx, query, scope, limit)
		if err != nil {
			// pg_trgm missing or erroring. The ILIKE-only path still
			// covers every substring-matchable query, so this degrades
			// quietly instead of failing the search.
			log.Printf("Pin name similarity unavailable, using fallback: %v", err)
			matches, err = s.pins.SearchNamesInScopeFallback(gctx, query, scope, limit)
			if err != nil {
				log.Printf("Error in pin name fallback search: %v", err)
				return utils.ErrDatabaseError
			}
		}
		lexicalMatches = matches
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return mergeSearchResults(semanticMatches, lexicalMatches, limit), nil
}

type mergedResult struct {
	contentID     uuid.UUID
	semanticScore float64
	lexicalScore  float64
	matchedPin    string
	hasSemantic   bool
	hasLexical    bool
	createdAt     int64
}

// mergeSearchResults folds both signal sets into one ranked list. A row
// present in both is reported once as hybrid with a boosted score.
// Lexical and hybrid rows always outrank pure semantic rows; ties fall
// to score, then recency.
func mergeSearchResults(semantic []repositories.SemanticMatch, lexical []repositories.PinNameMatch, limit int) []response_models.SearchResult {
	byID := make(map[uuid.UUID]*mergedResult)

	for _, m := range semantic {
		byID[m.ContentID] = &mergedResult{
			contentID:     m.ContentID,
			semanticScore: m.Score,
			hasSemantic:   true,
			createdAt:     m.CreatedAt,
		}
	}
	for _, m := range lexical {
		entry, ok := byID[m.ContentID]
		if !ok {
			entry = &mergedResult{contentID: m.ContentID, createdAt: m.CreatedAt}
			byID[m.ContentID] = entry
		}
		if !entry.hasLexical || m.Score > entry.lexicalScore {
			entry.lexicalScore = m.Score
			entry.matchedPin = m.PinName
		}
		entry.hasLexical = true
	}

	results := make([]response_models.SearchResult, 0, len(byID))
	for _, entry := range byID {
		r := response_models.SearchResult{
			ContentID:     entry.contentID.String(),
			SemanticScore: entry.semanticScore,
			LexicalScore:  entry.lexicalScore,
			MatchedPin:    entry.matchedPin,
			CreatedAt:     entry.createdAt,
		}
		switch {
		case entry.hasSemantic && entry.hasLexical:
			r.MatchType = response_models.MatchTypeHybrid
			r.Score = maxFloat(entry.semanticScore, entry.lexicalScore) + hybridBoost
		case entry.hasLexical:
			r.MatchType = response_models.MatchTypePinName
			r.Score = entry.lexicalScore
		default:
			r.MatchType = response_models.MatchTypeSemantic
			r.Score = entry.semanticScore
		}
		results = append(results, r)
	}

	sort.Slice(results, func(i, j int) bool {
		pi, pj := matchPriority(results[i].MatchType), matchPriority(results[j].MatchType)
		if pi != pj {
			return pi > pj
		}
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].CreatedAt > results[j].CreatedAt
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func matchPriority(matchType string) int {
	if matchType == response_models.MatchTypeSemantic {
		return 0
	}
	return 1
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
