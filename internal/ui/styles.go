// Package ui provides terminal styles for user-facing diagnostics: the
// dry-run command rendering and the verbose configuration report. Log output
// is styled separately by the logging package.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"spssrun/internal/config"
)

// Styles contains pre-built lipgloss styles for diagnostic output.
type Styles struct {
	// Label styles section labels such as "Command:".
	Label lipgloss.Style
	// Value styles resolved configuration values.
	Value lipgloss.Style
	// Source styles the provenance annotation next to a value.
	Source lipgloss.Style
	// Command styles the assembled launcher command line.
	Command lipgloss.Style
}

// DefaultStyles returns the default diagnostic styles. When stdout is not a
// terminal lipgloss degrades these to plain text on its own.
func DefaultStyles() Styles {
	return Styles{
		Label:   lipgloss.NewStyle().Bold(true),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Source:  lipgloss.NewStyle().Faint(true),
		Command: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

// DisableColor forces plain output regardless of terminal capabilities.
// Honors the NO_COLOR convention when called by the frontend.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// RenderCommand renders the assembled argument vector as a single launchable
// command line.
func (s Styles) RenderCommand(argv []string) string {
	return s.Label.Render("Command:") + " " + s.Command.Render(strings.Join(argv, " "))
}

// RenderConfig renders the resolved configuration with the layer each value
// came from, one field per line.
func (s Styles) RenderConfig(cfg *config.Config) string {
	var b strings.Builder
	b.WriteString(s.Label.Render("Configuration:"))
	b.WriteString("\n")
	for _, f := range config.Fields() {
		b.WriteString(fmt.Sprintf("  %-16s %s %s\n",
			string(f),
			s.Value.Render(cfg.Value(f)),
			s.Source.Render("("+cfg.SourceOf(f).String()+")"),
		))
	}
	return strings.TrimRight(b.String(), "\n")
}
