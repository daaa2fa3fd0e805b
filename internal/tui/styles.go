package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/preston-bernstein/nba-scoreboard/internal/navigation"
)

type palette struct {
	foreground lipgloss.Color
	muted      lipgloss.Color
	accent     lipgloss.Color
	live       lipgloss.Color
	winner     lipgloss.Color
	err        lipgloss.Color
	selection  lipgloss.Color
}

// Dracula for dark, a GitHub-like scheme for light.
var palettes = map[string]palette{
	navigation.ThemeDark: {
		foreground: lipgloss.Color("#f8f8f2"),
		muted:      lipgloss.Color("#6272a4"),
		accent:     lipgloss.Color("#bd93f9"),
		live:       lipgloss.Color("#ff5555"),
		winner:     lipgloss.Color("#50fa7b"),
		err:        lipgloss.Color("#ff5555"),
		selection:  lipgloss.Color("#44475a"),
	},
	navigation.ThemeLight: {
		foreground: lipgloss.Color("#24292f"),
		muted:      lipgloss.Color("#8c959f"),
		accent:     lipgloss.Color("#0969da"),
		live:       lipgloss.Color("#cf222e"),
		winner:     lipgloss.Color("#1a7f37"),
		err:        lipgloss.Color("#cf222e"),
		selection:  lipgloss.Color("#ddf4ff"),
	},
}

type styles struct {
	title    lipgloss.Style
	text     lipgloss.Style
	muted    lipgloss.Style
	dimmed   lipgloss.Style
	winner   lipgloss.Style
	live     lipgloss.Style
	selected lipgloss.Style
	err      lipgloss.Style
	input    lipgloss.Style
	help     lipgloss.Style
}

func newStyles(theme string) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[navigation.ThemeLight]
	}
	return styles{
		title:    lipgloss.NewStyle().Foreground(p.accent).Bold(true).Padding(0, 1),
		text:     lipgloss.NewStyle().Foreground(p.foreground),
		muted:    lipgloss.NewStyle().Foreground(p.muted),
		dimmed:   lipgloss.NewStyle().Foreground(p.muted).Faint(true),
		winner:   lipgloss.NewStyle().Foreground(p.winner).Bold(true),
		live:     lipgloss.NewStyle().Foreground(p.live).Bold(true),
		selected: lipgloss.NewStyle().Background(p.selection).Foreground(p.foreground),
		err:      lipgloss.NewStyle().Foreground(p.err),
		input:    lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(p.muted).Padding(0, 1),
		help:     lipgloss.NewStyle().Foreground(p.muted),
	}
}
