package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

const defaultWordWrap = 80

type Options struct {
	// Width is the markdown word wrap. Zero means 80 columns.
	Width int
	// Plain disables ANSI styling of the markdown, for pipes and tests.
	Plain bool
}

func renderMarkdown(markdown string, opts Options) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}

	width := opts.Width
	if width <= 0 {
		width = defaultWordWrap
	}

	style := glamour.WithAutoStyle()
	if opts.Plain {
		style = glamour.WithStylePath("notty")
	}

	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render roadmap: %w", err)
	}

	return out, nil
}
