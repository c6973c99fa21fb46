package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/pkg/errors"
)

// Renderer turns blocks into styled terminal output.
type Renderer struct {
	glamour *glamour.TermRenderer
	width   int
	// Keyed by entry id. Entries never change once appended, so a hit is always valid.
	cache map[string]string
}

// NewRenderer instantiates and returns a renderer wrapping at the given width.
func NewRenderer(width int) (*Renderer, error) {
	termRenderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating glamour renderer")
	}
	return &Renderer{
		glamour: termRenderer,
		width:   width,
		cache:   map[string]string{},
	}, nil
}

// Render renders blocks, caching the result under key. An empty key is never cached.
func (r *Renderer) Render(key string, blocks ...Block) string {
	if rendered, ok := r.cache[key]; ok {
		return rendered
	}
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		parts = append(parts, r.renderMarkdown(block.Markdown()))
	}
	rendered := strings.Join(parts, "\n")
	if key != "" {
		r.cache[key] = rendered
	}
	return rendered
}

// Forget drops the cached rendering of key.
func (r *Renderer) Forget(key string) {
	delete(r.cache, key)
}

// SetWidth changes the wrap width. The cache is reset when the width changes.
func (r *Renderer) SetWidth(width int) error {
	if r.width == width {
		return nil
	}
	renderer, err := NewRenderer(width)
	if err != nil {
		return err
	}
	*r = *renderer
	return nil
}

func (r *Renderer) renderMarkdown(content string) string {
	rendered, err := r.glamour.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}

func style() ansi.StyleConfig {
	config := styles.DarkStyleConfig
	zero := uint(0)
	config.Document.Margin = &zero
	config.Document.BlockPrefix = ""
	config.Document.BlockSuffix = ""
	config.CodeBlock.Margin = &zero
	config.CodeBlock.Indent = &zero
	config.Code.Prefix = ""
	config.Code.Suffix = ""
	config.Paragraph.BlockPrefix = ""
	config.Paragraph.BlockSuffix = ""
	return config
}
