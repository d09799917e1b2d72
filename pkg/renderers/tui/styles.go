package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultBarWidth = 30

type styles struct {
	header   lipgloss.Style
	group    lipgloss.Style
	missing  lipgloss.Style
	filled   lipgloss.Style
	empty    lipgloss.Style
	hint     lipgloss.Style
	barWidth int
}

func defaultStyles() styles {
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2a4d7c")),
		group:    lipgloss.NewStyle().Bold(true).Underline(true),
		missing:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F44336")),
		filled:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")),
		empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")),
		hint:     lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true),
		barWidth: defaultBarWidth,
	}
}

// bar renders percent (0..100) as a fixed-width bar followed by the number.
func (s styles) bar(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	width := s.barWidth
	if width <= 0 {
		width = defaultBarWidth
	}
	cells := percent * width / 100
	return s.filled.Render(strings.Repeat("█", cells)) +
		s.empty.Render(strings.Repeat("░", width-cells)) +
		fmt.Sprintf(" %3d%%", percent)
}
