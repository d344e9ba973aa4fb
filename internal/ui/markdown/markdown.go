// Package markdown renders the campaign's markdown copy (consent terms,
// pickup conditions) for embedding inside bordered form sections.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"ruleta/internal/ui/styles"
)

// DefaultWidth is the inner width of the registration form sections.
const DefaultWidth = 40

// kioskStyle strips document margins so the copy sits flush against a
// section border, and keys headings to the campaign accent. The accent hex
// is interpolated at construction time so themed configs carry through.
const kioskStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	},
	"heading": {
		"bold": true,
		"color": "%s"
	},
	"link": {
		"underline": false
	}
}`

// Renderer wraps glamour for the kiosk's legal and promotional copy.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a markdown renderer wrapping at the given width.
// Non-positive widths fall back to DefaultWidth.
func New(width int) (*Renderer, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	style := fmt.Sprintf(kioskStyle, styles.AccentColor.Dark)
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithStylesFromJSONBytes([]byte(style)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output. Trailing newlines
// are trimmed so the copy never pushes a section border down a row.
func (r *Renderer) Render(markdown string) (string, error) {
	out, err := r.renderer.Render(markdown)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
