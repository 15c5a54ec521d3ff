package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// It detects the terminal background, so replies look right on light
// and dark themes alike.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
