package response_models

const (
	MatchTypeSemantic = "semantic"
	MatchTypePinName  = "pin_name"
	MatchTypeHybrid   = "hybrid"
)

// SearchResult carries one ranked content row. Score is a relevance
// weight, not a probability: hybrid rows get a +0.1 boost on top of the
// best single-signal score and may exceed 1.
type SearchResult struct {
	ContentID     string  `json:"content_id"`
	Score         float64 `json:"score"`
	SemanticScore float64 `json:"semantic_score"`
	LexicalScore  float64 `json:"lexical_score"`
	MatchType     string  `json:"match_type"`
	MatchedPin    string  `json:"matched_pin,omitempty"`
	CreatedAt     int64   `json:"created_at"`
}
