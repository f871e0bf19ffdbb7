package types

// Profile is the structured record of interview answers. Fields left empty
// were never answered; the hearing flow rejects blank submissions, so an
// empty string always means "unset".
type Profile struct {
	BusinessDescription string `json:"businessDescription"`
	CompanyName         string `json:"companyName"`
	Atmosphere          string `json:"atmosphere"`
	SitePurpose         string `json:"sitePurpose,omitempty"`
	TargetAudience      string `json:"targetAudience,omitempty"`
	Address             string `json:"address,omitempty"`
	Phone               string `json:"phone,omitempty"`
}

// TemplateSuggestion is the structure expected from the LLM for the
// template-suggestion call. TemplateKey is constrained to the catalog keys.
type TemplateSuggestion struct {
	TemplateKey string `json:"templateKey"`
	Reason      string `json:"reason"`
}

// StructuredDraft is the structure expected from the LLM for the
// site-structure call. HTMLDocument contains [IMAGE_PLACEHOLDER_N] tokens,
// numbered from 1, whose order matches ImagePrompts.
type StructuredDraft struct {
	HTMLDocument string   `json:"htmlDocument"`
	ImagePrompts []string `json:"imagePrompts"`
}

// ImageAsset is a displayable image resource: a data URI, or the fixed
// failure placeholder when synthesis failed.
type ImageAsset struct {
	DataURI string `json:"dataUri"`
	Prompt  string `json:"prompt"`
	Failed  bool   `json:"failed"`
}

// PublishState tracks whether the current document is live.
type PublishState struct {
	IsPublished bool   `json:"isPublished"`
	SiteName    string `json:"siteName,omitempty"`
	URL         string `json:"url,omitempty"`
}
