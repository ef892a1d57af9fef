// Package extraction turns raw page markdown into structured job listings via
// a schema-constrained Gemini call, and enforces the skill cleaning policy on
// the result.
package extraction

import (
	"context"
	"encoding/json"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"

	"github.com/dimasramdhani/jobscrape/internal/llm"
	"github.com/dimasramdhani/jobscrape/internal/prompts"
	"github.com/dimasramdhani/jobscrape/internal/schemas"
)

// maxContentLength caps the markdown passed to the model.
const maxContentLength = 100000

// Listing is one candidate job listing as emitted by the extractor. Field
// names match the persisted wire format.
type Listing struct {
	JobTitle         string `json:"job_title"`
	Company          string `json:"company"`
	Location         string `json:"location"`
	RequirementsText string `json:"requirements_text"`
	LabelSkill       string `json:"label_skill,omitempty"`
	URLLowongan      string `json:"url_lowongan,omitempty"`
}

type listingsPayload struct {
	Listings []Listing `json:"listings"`
}

// Extractor produces candidate listings from raw markdown. Zero listings is a
// valid, non-error outcome.
type Extractor interface {
	Extract(ctx context.Context, markdown string) ([]Listing, error)
}

// GeminiExtractor implements Extractor on top of an llm.Client.
type GeminiExtractor struct {
	client llm.Client
	log    zerolog.Logger
}

// NewGeminiExtractor creates an extractor using the given client.
func NewGeminiExtractor(client llm.Client, logger zerolog.Logger) *GeminiExtractor {
	return &GeminiExtractor{client: client, log: logger}
}

// Extract runs the schema-constrained extraction and validates the response
// at the boundary before returning it.
func (e *GeminiExtractor) Extract(ctx context.Context, markdown string) ([]Listing, error) {
	if len(markdown) > maxContentLength {
		markdown = markdown[:maxContentLength]
	}

	template := prompts.MustGet("extraction.json", "extract-listings")
	prompt := prompts.Format(template, map[string]string{"Markdown": markdown})

	raw, err := e.client.GenerateJSON(ctx, prompt, responseSchema())
	if err != nil {
		return nil, &APICallError{Message: "model call failed", Cause: err}
	}

	if err := schemas.ValidateListings([]byte(raw)); err != nil {
		return nil, &ParseError{Message: "response does not conform to listings schema", Cause: err}
	}

	var payload listingsPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &ParseError{Message: "failed to decode listings JSON", Cause: err}
	}

	// The prompt instructs the model to clean skills; enforce the policy
	// again locally so a sloppy response cannot leak brackets or blacklisted
	// tokens into the dataset.
	for i := range payload.Listings {
		payload.Listings[i].LabelSkill = CleanSkills(payload.Listings[i].LabelSkill)
	}

	e.log.Info().Int("listings", len(payload.Listings)).Msg("extraction complete")

	return payload.Listings, nil
}

// responseSchema constrains the Gemini response to the listings shape.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"listings"},
		Properties: map[string]*genai.Schema{
			"listings": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type:     genai.TypeObject,
					Required: []string{"job_title", "company", "location", "requirements_text"},
					Properties: map[string]*genai.Schema{
						"job_title":         {Type: genai.TypeString},
						"company":           {Type: genai.TypeString},
						"location":          {Type: genai.TypeString},
						"requirements_text": {Type: genai.TypeString},
						"label_skill":       {Type: genai.TypeString},
						"url_lowongan":      {Type: genai.TypeString},
					},
				},
			},
		},
	}
}
