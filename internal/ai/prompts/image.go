package prompts

import "fmt"

// WrapImagePrompt wraps a raw image prompt with the fixed synthesis
// instructions. Generated text inside images is typically garbled, so any
// lettering, logos, or symbols are forbidden outright.
func WrapImagePrompt(prompt string) string {
	return fmt.Sprintf(`Generate a professional, high-quality, high-resolution photograph of the following:
"%s"

IMPORTANT: the generated image must contain absolutely no letters, text, numbers, logos, or symbols of any kind. Pure visuals only.`, prompt)
}
