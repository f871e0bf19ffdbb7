package prompts

import (
	"fmt"
	"strings"

	"github.com/takara45/ai-seo-homepage/internal/template"
	"github.com/takara45/ai-seo-homepage/internal/types"
)

// UnsetMarker renders a profile field the user never answered. An answered
// field is never blank (the hearing flow rejects blank input), so the marker
// keeps "unanswered" distinguishable in every prompt.
const UnsetMarker = "(not provided)"

func fieldOrUnset(v string) string {
	if strings.TrimSpace(v) == "" {
		return UnsetMarker
	}
	return v
}

// ProfileLines renders every profile field as a labelled line, substituting
// the unset marker for missing values.
func ProfileLines(p types.Profile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "- Business description: %s\n", fieldOrUnset(p.BusinessDescription))
	fmt.Fprintf(&sb, "- Company name: %s\n", fieldOrUnset(p.CompanyName))
	fmt.Fprintf(&sb, "- Desired atmosphere: %s\n", fieldOrUnset(p.Atmosphere))
	fmt.Fprintf(&sb, "- Site purpose: %s\n", fieldOrUnset(p.SitePurpose))
	fmt.Fprintf(&sb, "- Target audience: %s\n", fieldOrUnset(p.TargetAudience))
	fmt.Fprintf(&sb, "- Address: %s\n", fieldOrUnset(p.Address))
	fmt.Fprintf(&sb, "- Phone: %s\n", fieldOrUnset(p.Phone))
	return sb.String()
}

// BuildSuggestionPrompt asks the model to pick one template from the catalog
// that best fits the interview answers.
func BuildSuggestionPrompt(p types.Profile, catalog []template.Descriptor) string {
	var options strings.Builder
	for i, d := range catalog {
		fmt.Fprintf(&options, "%d. %q: %s\n", i+1, d.Key, d.Description)
	}

	return fmt.Sprintf(`Based on the user interview below, pick the single best-suited website design template from the %d options. Briefly explain why you chose it.

# User interview
%s
# Template options
%s`, len(catalog), ProfileLines(p), options.String())
}
