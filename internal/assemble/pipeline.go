// Package assemble orchestrates structure generation, parallel image
// synthesis, and placeholder substitution into one final document.
package assemble

import (
	"context"
	"fmt"
	"html"
	"log"
	"regexp"
	"strings"
	"sync"

	"github.com/takara45/ai-seo-homepage/internal/template"
	"github.com/takara45/ai-seo-homepage/internal/types"
)

// StructureProvider produces the structured draft: a complete HTML document
// with numbered placeholder tokens plus the matching image prompts.
type StructureProvider interface {
	GenerateStructure(ctx context.Context, profile types.Profile, tmpl template.Descriptor) (types.StructuredDraft, error)
}

// ImageSynthesizer converts one prompt into a displayable asset. It never
// fails; synthesis errors surface as the placeholder asset.
type ImageSynthesizer interface {
	SynthesizeImage(ctx context.Context, prompt string) types.ImageAsset
}

// placeholderRe matches any placeholder-shaped token left in the document
// after indexed substitution.
var placeholderRe = regexp.MustCompile(`\[IMAGE_PLACEHOLDER_\d+\]`)

// PlaceholderToken returns the literal token for a 1-based image position.
func PlaceholderToken(n int) string {
	return fmt.Sprintf("[IMAGE_PLACEHOLDER_%d]", n)
}

// Pipeline assembles a publishable document from interview answers and a
// chosen template.
type Pipeline struct {
	structure StructureProvider
	images    ImageSynthesizer
}

func NewPipeline(structure StructureProvider, images ImageSynthesizer) *Pipeline {
	return &Pipeline{structure: structure, images: images}
}

// Assemble runs the three-phase protocol: one structure call, a concurrent
// fan-out over every image prompt, and in-document placeholder substitution.
// A structure failure is fatal and propagates; image failures degrade to
// per-asset placeholders and never abort the assembly.
func (p *Pipeline) Assemble(ctx context.Context, profile types.Profile, tmpl template.Descriptor) (string, error) {
	draft, err := p.structure.GenerateStructure(ctx, profile, tmpl)
	if err != nil {
		return "", err
	}
	if len(draft.ImagePrompts) == 0 {
		return draft.HTMLDocument, nil
	}

	assets := p.synthesizeAll(ctx, draft.ImagePrompts)
	return substitute(draft.HTMLDocument, assets), nil
}

// synthesizeAll fans out one goroutine per prompt and waits for all of them
// to settle. The result slice preserves the prompt order regardless of
// completion order; there is no early cancellation since no unit can fail.
func (p *Pipeline) synthesizeAll(ctx context.Context, imagePrompts []string) []types.ImageAsset {
	assets := make([]types.ImageAsset, len(imagePrompts))
	var wg sync.WaitGroup
	for i, prompt := range imagePrompts {
		wg.Add(1)
		go func(i int, prompt string) {
			defer wg.Done()
			assets[i] = p.images.SynthesizeImage(ctx, prompt)
		}(i, prompt)
	}
	wg.Wait()

	failed := 0
	for _, a := range assets {
		if a.Failed {
			failed++
		}
	}
	if failed > 0 {
		log.Printf("Image phase settled with %d/%d placeholder fallbacks", failed, len(assets))
	}
	return assets
}

// substitute replaces each indexed placeholder with an image element bound to
// the corresponding asset, then deletes any placeholder-shaped token the
// model declared no prompt for. A prompt/token count mismatch is healed
// silently rather than raised.
func substitute(doc string, assets []types.ImageAsset) string {
	for i, asset := range assets {
		tag := fmt.Sprintf(`<img src="%s" alt="%s" class="w-full h-full object-cover">`,
			asset.DataURI, html.EscapeString(asset.Prompt))
		doc = strings.Replace(doc, PlaceholderToken(i+1), tag, 1)
	}
	return placeholderRe.ReplaceAllString(doc, "")
}
