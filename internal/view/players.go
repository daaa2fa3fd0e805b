package view

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/players"
)

// PlayerRow is a formatted box score line.
type PlayerRow struct {
	PlayerID int    `json:"playerId"`
	Name     string `json:"name"`
	Min      string `json:"min"`
	Pts      string `json:"pts"`
	Reb      string `json:"reb"`
	Ast      string `json:"ast"`
	FG       string `json:"fg"`
	FGPct    string `json:"fgPct"`
}

// NewPlayerRow formats s for display.
func NewPlayerRow(s players.StatLine) PlayerRow {
	minutes := strings.TrimSpace(s.Min)
	if minutes == "" {
		minutes = Placeholder
	}
	return PlayerRow{
		PlayerID: s.Player.ID,
		Name:     PlayerName(s.Player),
		Min:      minutes,
		Pts:      intOrPlaceholder(s.Pts),
		Reb:      intOrPlaceholder(s.Reb),
		Ast:      intOrPlaceholder(s.Ast),
		FG:       intOrPlaceholder(s.Fgm) + "-" + intOrPlaceholder(s.Fga),
		FGPct:    Percent(s.FgPct),
	}
}

// PlayerRows formats a table.
func PlayerRows(lines []players.StatLine) []PlayerRow {
	out := make([]PlayerRow, 0, len(lines))
	for _, l := range lines {
		out = append(out, NewPlayerRow(l))
	}
	return out
}

// PlayerName renders "F. Last"; a missing last name reads Unknown.
func PlayerName(p players.Player) string {
	last := strings.TrimSpace(p.LastName)
	if last == "" {
		last = "Unknown"
	}
	first := []rune(strings.TrimSpace(p.FirstName))
	if len(first) == 0 {
		return last
	}
	return string(first[0]) + ". " + last
}

// Percent renders a 0..1 fraction as a one-decimal percentage.
func Percent(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}
