package ai

import (
	"context"
	"log"

	openai "github.com/sashabaranov/go-openai"

	"github.com/takara45/ai-seo-homepage/internal/ai/prompts"
	"github.com/takara45/ai-seo-homepage/internal/types"
)

// FailedImageDataURI is the fixed placeholder shown when image synthesis
// fails: a neutral-gray SVG reading "Image Generation Failed".
const FailedImageDataURI = "data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' width='800' height='600' viewBox='0 0 800 600'%3E%3Crect width='100%25' height='100%25' fill='%23cccccc'/%3E%3Ctext x='50%25' y='50%25' font-family='sans-serif' font-size='30' fill='%23555555' dominant-baseline='middle' text-anchor='middle'%3EImage Generation Failed%3C/text%3E%3C/svg%3E"

// SynthesizeImage converts one text prompt into a displayable image asset.
// Failures never propagate: one bad image must not abort a whole assembly, so
// every error path yields the fixed placeholder instead. Logged for
// diagnostics only.
func (g *Generator) SynthesizeImage(ctx context.Context, prompt string) types.ImageAsset {
	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompts.WrapImagePrompt(prompt),
		Model:          g.imageModel,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		log.Printf("Image synthesis failed for prompt %q: %v", prompt, err)
		return failedAsset(prompt)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		log.Printf("Image synthesis returned no payload for prompt %q", prompt)
		return failedAsset(prompt)
	}
	return types.ImageAsset{
		DataURI: "data:image/png;base64," + resp.Data[0].B64JSON,
		Prompt:  prompt,
	}
}

func failedAsset(prompt string) types.ImageAsset {
	return types.ImageAsset{DataURI: FailedImageDataURI, Prompt: prompt, Failed: true}
}
