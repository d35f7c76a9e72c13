package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"triplog/internal/models/request_models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type LocationExtractorInterface interface {
	ExtractLocations(ctx context.Context, freeText string) ([]request_models.ExtractedLocationPayload, error)
}

// GeminiLocationExtractor pulls named places out of free-form travel
// captions. Best-effort contract: the model may return zero entries, and
// entries with null lat/long mean "no specific place".
type GeminiLocationExtractor struct {
	client *genai.Client
	model  string
}

func NewGeminiLocationExtractor(apiKey, model string) (*GeminiLocationExtractor, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiLocationExtractor{
		client: client,
		model:  model,
	}, nil
}

func (e *GeminiLocationExtractor) ExtractLocations(ctx context.Context, freeText string) ([]request_models.ExtractedLocationPayload, error) {
	if strings.TrimSpace(freeText) == "" {
		return []request_models.ExtractedLocationPayload{}, nil
	}

	m := e.client.GenerativeModel(e.model)
	// Force JSON-only output so no brace-matching cleanup is needed.
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)
	m.SetTopP(0.5)
	m.SetTopK(20)

	schema := `
[
  {
    "name": "string, the place name as mentioned",
    "location": "string, city/region context for disambiguation",
    "classification": "string, e.g. restaurant, museum, beach",
    "title": "string, short display title",
    "additional_info": "string, anything useful the text says about it",
    "lat": null,
    "long": null
  }
]`

	prompt := fmt.Sprintf(`
Extract every concrete place mentioned in the travel text below.
Return **JSON only**, an array matching the schema exactly. Return [] when
no place is mentioned. Leave lat/long null unless the text states them.
A country or region alone is not a concrete place: include it with lat and
long null so it stays unpinned.

Schema (match keys exactly):
%s

Text:
%s
`, schema, freeText)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	content, err := candidateText(resp)
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(content)) {
		return nil, fmt.Errorf("gemini: not valid json")
	}

	var locations []request_models.ExtractedLocationPayload
	if err := json.Unmarshal([]byte(content), &locations); err != nil {
		return nil, fmt.Errorf("gemini: unmarshal: %w", err)
	}
	return locations, nil
}

// candidateText pulls the first candidate's text. Safety-blocked
// responses carry a candidate with nil Content, so both the slice and
// the Content pointer need checking.
func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini: no candidates")
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty candidate content")
	}
	return fmt.Sprintf("%v", content.Parts[0]), nil
}

func (e *GeminiLocationExtractor) Close() error {
	return e.client.Close()
}
