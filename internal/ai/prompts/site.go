package prompts

import (
	"fmt"

	"github.com/takara45/ai-seo-homepage/internal/template"
	"github.com/takara45/ai-seo-homepage/internal/types"
)

// BuildSitePrompt asks the model for a complete single-page HTML document plus
// an ordered list of image prompts, with image slots marked by numbered
// placeholder tokens instead of real <img> tags.
func BuildSitePrompt(p types.Profile, tmpl template.Descriptor) string {
	return fmt.Sprintf(`You are a world-class front-end engineer and SEO specialist.
Following the requirements below, produce a single-page responsive website's HTML structure and the list of image prompts the site needs, as JSON.

# Requirements
1. Framework / styling:
   - Style exclusively with Tailwind CSS utility classes.
   - No JavaScript.
   - Strictly mobile-first responsive design.
2. SEO:
   - Generate an effective <title> and <meta name="description">.
   - Use <h1>, <h2>, <h3> tags appropriately.
   - Embed JSON-LD structured data inside <head>.
3. Content:
   - Reflect the user-provided information below strongly in the site content.
   - Always include a hero section, a business introduction, service or product highlights, a company overview, and a contact section.
   - For the site purpose, target audience, concrete services, address, and phone number, invent plausible fictional details consistent with the user-provided information wherever it is marked %s.
   - Wherever an image is needed, insert a uniquely numbered placeholder string such as [IMAGE_PLACEHOLDER_1], [IMAGE_PLACEHOLDER_2]. Do not emit real <img> tags yet.
   - Where a logo is needed, render the company name as styled text or use an appropriate inline SVG icon.
4. Design:
   - Strongly reflect the selected design template %q (%s) in the visual design.
   - Make it modern, polished, and professional.

# User-provided information
%s
# Output format
- Follow the JSON schema exactly.
- htmlDocument: the complete HTML string from <!DOCTYPE html> through </html>.
- imagePrompts: an array of concrete, vivid image-generation prompts matching the placeholders in the HTML. Array order must match the placeholder numbers.`,
		UnsetMarker, tmpl.Key, tmpl.Description, ProfileLines(p))
}
