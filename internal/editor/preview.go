package editor

import "fmt"

// PreviewMode is one of the fixed viewport-width presets. It only controls
// the preview container width; the document itself never changes.
type PreviewMode string

const (
	PreviewDesktop PreviewMode = "desktop"
	PreviewTablet  PreviewMode = "tablet"
	PreviewMobile  PreviewMode = "mobile"
)

// Width returns the container width in pixels, or 0 for full width.
func (m PreviewMode) Width() int {
	switch m {
	case PreviewTablet:
		return 768
	case PreviewMobile:
		return 375
	default:
		return 0
	}
}

// ParsePreviewMode validates a mode name.
func ParsePreviewMode(s string) (PreviewMode, error) {
	switch PreviewMode(s) {
	case PreviewDesktop, PreviewTablet, PreviewMobile:
		return PreviewMode(s), nil
	}
	return "", fmt.Errorf("editor: unknown preview mode %q", s)
}
