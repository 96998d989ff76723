package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour, sized
// to the terminal when stdout is one.
func NewRenderer() func(string) (string, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	}
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil && width > 0 {
			opts = append(opts, glamour.WithWordWrap(width))
		}
	}

	r, _ := glamour.NewTermRenderer(opts...)
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
