package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/takara45/ai-seo-homepage/internal/ai/prompts"
	"github.com/takara45/ai-seo-homepage/internal/template"
	"github.com/takara45/ai-seo-homepage/internal/types"
)

const suggestSystemPrompt = "You are a web design consultant. Answer strictly in the requested JSON schema."

// SuggestTemplate asks the model to pick the catalog template that best fits
// the interview answers. The response is schema-constrained: templateKey must
// be one of the catalog keys and reason is required free text.
func (g *Generator) SuggestTemplate(ctx context.Context, profile types.Profile) (types.TemplateSuggestion, error) {
	schema := &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"templateKey": {
				Type: jsonschema.String,
				Enum: template.Keys(),
			},
			"reason": {
				Type: jsonschema.String,
			},
		},
		Required:             []string{"templateKey", "reason"},
		AdditionalProperties: false,
	}

	userPrompt := prompts.BuildSuggestionPrompt(profile, template.All())

	raw, err := g.structuredCompletion(ctx, "template suggestion", "template_suggestion", schema, suggestSystemPrompt, userPrompt)
	if err != nil {
		return types.TemplateSuggestion{}, err
	}

	var suggestion types.TemplateSuggestion
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &suggestion); err != nil {
		log.Printf("Failed to parse template suggestion output: %v. Raw: %s", err, raw)
		return types.TemplateSuggestion{}, &GenerationError{Op: "template suggestion", Err: fmt.Errorf("parse output: %w", err)}
	}
	if _, ok := template.Get(suggestion.TemplateKey); !ok {
		return types.TemplateSuggestion{}, &GenerationError{Op: "template suggestion", Err: fmt.Errorf("model picked unknown template %q", suggestion.TemplateKey)}
	}
	if suggestion.Reason == "" {
		return types.TemplateSuggestion{}, &GenerationError{Op: "template suggestion", Err: fmt.Errorf("model omitted the reason")}
	}
	return suggestion, nil
}
