package template

// Descriptor is a named design template with a human-readable description
// used to steer document generation.
type Descriptor struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

// catalog is the fixed set of design templates. Keys are stable identifiers
// the model must pick from; descriptions feed the generation prompts.
var catalog = []Descriptor{
	{
		Key:         "Corporate",
		DisplayName: "Corporate",
		Description: "A clean, professional design emphasizing trust and integrity. Suited to B2B companies and professional practices.",
	},
	{
		Key:         "Modern",
		DisplayName: "Modern",
		Description: "A stylish, visual design highlighting innovation and creativity. Suited to startups and design studios.",
	},
	{
		Key:         "Friendly",
		DisplayName: "Friendly",
		Description: "A casual, bright design conveying warmth and approachability. Suited to shops, personal services, and nonprofits.",
	},
	{
		Key:         "Tech",
		DisplayName: "Tech",
		Description: "Cutting-edge and innovative, featuring dark themes, neon accents, and geometric layouts. Suited to SaaS and technology companies.",
	},
	{
		Key:         "Natural",
		DisplayName: "Natural",
		Description: "An organic, calm atmosphere with earth tones, natural textures, and clean layouts. Suited to wellness and eco-focused businesses.",
	},
	{
		Key:         "Retro",
		DisplayName: "Retro",
		Description: "Nostalgic and distinctive, with period-evoking typography and color palettes. Suited to cafes, apparel, and specialty shops.",
	},
	{
		Key:         "Bold",
		DisplayName: "Bold",
		Description: "Energetic and striking, grabbing attention with vivid colors and bold typography. Suited to events and youth-oriented brands.",
	},
	{
		Key:         "Luxury",
		DisplayName: "Luxury",
		Description: "An upscale, exclusive feel with rich colors, high-quality photography, and refined detail. Suited to premium brands and real estate.",
	},
}

// All returns every template descriptor in catalog order.
func All() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

// Keys returns the catalog keys in order.
func Keys() []string {
	keys := make([]string, len(catalog))
	for i, d := range catalog {
		keys[i] = d.Key
	}
	return keys
}

// Get looks up a descriptor by key.
func Get(key string) (Descriptor, bool) {
	for _, d := range catalog {
		if d.Key == key {
			return d, true
		}
	}
	return Descriptor{}, false
}
