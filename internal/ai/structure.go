package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/takara45/ai-seo-homepage/internal/ai/prompts"
	"github.com/takara45/ai-seo-homepage/internal/template"
	"github.com/takara45/ai-seo-homepage/internal/types"
)

const structureSystemPrompt = "You are a world-class front-end engineer and SEO specialist. Answer strictly in the requested JSON schema."

// GenerateStructure asks the model for a complete single-page HTML document
// styled to the chosen template, with image slots marked by numbered
// placeholder tokens and a matching ordered list of image prompts. Failures
// here are fatal for the assembly; no partial document is returned.
func (g *Generator) GenerateStructure(ctx context.Context, profile types.Profile, tmpl template.Descriptor) (types.StructuredDraft, error) {
	schema := &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"htmlDocument": {
				Type: jsonschema.String,
			},
			"imagePrompts": {
				Type:  jsonschema.Array,
				Items: &jsonschema.Definition{Type: jsonschema.String},
			},
		},
		Required:             []string{"htmlDocument", "imagePrompts"},
		AdditionalProperties: false,
	}

	userPrompt := prompts.BuildSitePrompt(profile, tmpl)

	raw, err := g.structuredCompletion(ctx, "site structure", "site_structure", schema, structureSystemPrompt, userPrompt)
	if err != nil {
		return types.StructuredDraft{}, err
	}

	var draft types.StructuredDraft
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &draft); err != nil {
		log.Printf("Failed to parse site structure output: %v. Raw length: %d", err, len(raw))
		return types.StructuredDraft{}, &GenerationError{Op: "site structure", Err: fmt.Errorf("parse output: %w", err)}
	}
	if strings.TrimSpace(draft.HTMLDocument) == "" {
		return types.StructuredDraft{}, &GenerationError{Op: "site structure", Err: fmt.Errorf("model returned empty htmlDocument")}
	}
	return draft, nil
}
