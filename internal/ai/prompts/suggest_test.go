package prompts

import (
	"strings"
	"testing"

	"github.com/takara45/ai-seo-homepage/internal/template"
	"github.com/takara45/ai-seo-homepage/internal/types"
)

func TestProfileLinesRendersUnsetMarkers(t *testing.T) {
	cases := []struct {
		name    string
		profile types.Profile
		unset   int
	}{
		{"all unset", types.Profile{}, 7},
		{
			"required only",
			types.Profile{BusinessDescription: "a cafe", CompanyName: "ABC", Atmosphere: "warm"},
			4,
		},
		{
			"all set",
			types.Profile{
				BusinessDescription: "a cafe", CompanyName: "ABC", Atmosphere: "warm",
				SitePurpose: "bookings", TargetAudience: "locals", Address: "1 Main St", Phone: "555-0100",
			},
			0,
		},
		{
			"whitespace counts as unset",
			types.Profile{BusinessDescription: "  ", CompanyName: "ABC", Atmosphere: "warm"},
			5,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lines := ProfileLines(tc.profile)
			if got := strings.Count(lines, UnsetMarker); got != tc.unset {
				t.Errorf("expected %d unset markers, got %d:\n%s", tc.unset, got, lines)
			}
			// Every field label appears regardless of whether it was answered.
			for _, label := range []string{
				"Business description:", "Company name:", "Desired atmosphere:",
				"Site purpose:", "Target audience:", "Address:", "Phone:",
			} {
				if !strings.Contains(lines, label) {
					t.Errorf("missing field label %q", label)
				}
			}
		})
	}
}

func TestBuildSuggestionPromptListsAllTemplates(t *testing.T) {
	p := types.Profile{BusinessDescription: "a cafe", CompanyName: "ABC", Atmosphere: "warm"}
	prompt := BuildSuggestionPrompt(p, template.All())
	for _, key := range template.Keys() {
		if !strings.Contains(prompt, `"`+key+`"`) {
			t.Errorf("prompt missing template option %q", key)
		}
	}
	if !strings.Contains(prompt, "a cafe") {
		t.Error("prompt missing profile content")
	}
}

func TestBuildSitePromptMentionsPlaceholdersAndTemplate(t *testing.T) {
	tmpl, _ := template.Get("Luxury")
	p := types.Profile{BusinessDescription: "jeweler", CompanyName: "Aurum", Atmosphere: "exclusive"}
	prompt := BuildSitePrompt(p, tmpl)

	for _, want := range []string{"[IMAGE_PLACEHOLDER_1]", `"Luxury"`, tmpl.Description, "htmlDocument", "imagePrompts"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("site prompt missing %q", want)
		}
	}
}

func TestWrapImagePromptForbidsText(t *testing.T) {
	wrapped := WrapImagePrompt("a sunny office interior")
	if !strings.Contains(wrapped, "a sunny office interior") {
		t.Error("wrapped prompt lost the original prompt")
	}
	if !strings.Contains(wrapped, "no letters, text, numbers, logos, or symbols") {
		t.Error("wrapped prompt missing the no-embedded-text instruction")
	}
}
